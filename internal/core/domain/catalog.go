package domain

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type Difficulty struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

var Categories = []Category{
	{ID: "health", Name: "Health", Icon: "heart", Color: "#10B981"},
	{ID: "fitness", Name: "Fitness", Icon: "dumbbell", Color: "#EF4444"},
	{ID: "mindfulness", Name: "Mindfulness", Icon: "lotus", Color: "#8B5CF6"},
	{ID: "learning", Name: "Learning", Icon: "book", Color: "#3B82F6"},
	{ID: "productivity", Name: "Productivity", Icon: "target", Color: "#F59E0B"},
	{ID: "social", Name: "Social", Icon: "users", Color: "#EC4899"},
	{ID: "creativity", Name: "Creativity", Icon: "palette", Color: "#14B8A6"},
	{ID: "finance", Name: "Finance", Icon: "wallet", Color: "#6366F1"},
}

var Difficulties = []Difficulty{
	{ID: "easy", Name: "Easy", Points: 1},
	{ID: "medium", Name: "Medium", Points: 2},
	{ID: "hard", Name: "Hard", Points: 3},
}

var DefaultMilestones = []int{3, 7, 14, 30, 60, 100, 365}

// LookupCategory falls back to the first category for unknown ids.
func LookupCategory(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[0]
}

// LookupDifficulty falls back to the first difficulty for unknown ids.
func LookupDifficulty(id string) Difficulty {
	for _, d := range Difficulties {
		if d.ID == id {
			return d
		}
	}
	return Difficulties[0]
}
