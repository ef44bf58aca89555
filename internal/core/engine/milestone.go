package engine

// NextMilestone returns the smallest milestone strictly greater than streak.
// milestones must be ascending; ok is false once the streak passed them all.
func NextMilestone(streak int, milestones []int) (int, bool) {
	for _, m := range milestones {
		if m > streak {
			return m, true
		}
	}
	return 0, false
}

// IsMilestone reports whether streak lands exactly on a milestone.
func IsMilestone(streak int, milestones []int) bool {
	for _, m := range milestones {
		if m == streak {
			return true
		}
	}
	return false
}
