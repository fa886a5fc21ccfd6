package analyzer

import "math"

// pointsOf applies the default weight of 1 to items that never set one.
func pointsOf(item CheckItem) float64 {
	if item.Points <= 0 {
		return 1
	}
	return item.Points
}

// categoryPoints sums a category's earned and total points. Passes earn
// full points, warnings half, failures none; informational items are
// excluded from both sides.
func categoryPoints(cat Category) (earned, total float64) {
	for _, item := range cat.Items {
		if item.Status == StatusInfo {
			continue
		}
		points := pointsOf(item)
		total += points
		switch item.Status {
		case StatusPass:
			earned += points
		case StatusWarning:
			earned += 0.5 * points
		}
	}
	return earned, total
}

// CategoryScore is the 0-100 score of one category. A category with no
// scorable items scores 0; callers should present it as not evaluated
// rather than failed.
func CategoryScore(cat Category) int {
	earned, total := categoryPoints(cat)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * earned / total))
}

// OverallScore pools points across all categories before dividing, so
// heavier categories weigh proportionally more than light ones.
func OverallScore(categories []Category) int {
	var earned, total float64
	for _, cat := range categories {
		e, t := categoryPoints(cat)
		earned += e
		total += t
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * earned / total))
}
