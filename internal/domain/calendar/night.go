package calendar

// IsNightOccupied reports whether the night starting on night falls in [start, end).
func IsNightOccupied(night, start, end Date) bool {
	return !night.Before(start) && night.Before(end)
}
