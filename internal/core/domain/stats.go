package domain

type HabitStatistics struct {
	HabitID          string `json:"habit_id"`
	Date             Date   `json:"date"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	CompletionRate   int    `json:"completion_rate"`
	WindowDays       int    `json:"window_days"`
	IsDueToday       bool   `json:"is_due_today"`
	IsCompletedToday bool   `json:"is_completed_today"`
	NeedsAction      bool   `json:"needs_action"`
	NextMilestone    *int   `json:"next_milestone,omitempty"`
}

type DailySummary struct {
	Date                 Date `json:"date"`
	TotalHabits          int  `json:"total_habits"`
	DueToday             int  `json:"due_today"`
	CompletedToday       int  `json:"completed_today"`
	CompletionPercentage int  `json:"completion_percentage"`
	MaxStreak            int  `json:"max_streak"`
	AverageStreak        int  `json:"average_streak"`
}

type DayRollup struct {
	Date      Date `json:"date"`
	TotalDue  int  `json:"total_due"`
	Completed int  `json:"completed"`
	Rate      int  `json:"rate"`
}

type Dashboard struct {
	Summary DailySummary      `json:"summary"`
	Trend   []DayRollup       `json:"trend"`
	Habits  []HabitStatistics `json:"habits"`
}

type NotificationItem struct {
	HabitID       string `json:"habit_id"`
	Name          string `json:"name"`
	IsDue         bool   `json:"is_due"`
	IsCompleted   bool   `json:"is_completed"`
	NeedsAction   bool   `json:"needs_action"`
	CurrentStreak int    `json:"current_streak"`
}

type NotificationPreview struct {
	Date       Date               `json:"date"`
	ShouldSend bool               `json:"should_send"`
	Summary    DailySummary       `json:"summary"`
	Habits     []NotificationItem `json:"habits"`
}
