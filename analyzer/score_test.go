package analyzer

import "testing"

// Point values per check are current weighting, adjustable; only the
// pass/warning/fail arithmetic below is contractual.
func TestCategoryScoreFormula(t *testing.T) {
	cat := Category{
		Title: "Sample",
		Items: []CheckItem{
			{Name: "a", Status: StatusPass, Points: 2},
			{Name: "b", Status: StatusWarning, Points: 2},
			{Name: "c", Status: StatusFail, Points: 1},
		},
	}

	earned, total := categoryPoints(cat)
	if total != 5 {
		t.Errorf("total points = %v, want 5", total)
	}
	if earned != 3 {
		t.Errorf("earned points = %v, want 3", earned)
	}
	if score := CategoryScore(cat); score != 60 {
		t.Errorf("category score = %d, want 60", score)
	}
}

func TestCategoryScoreExcludesInfoItems(t *testing.T) {
	cat := Category{
		Items: []CheckItem{
			{Name: "a", Status: StatusPass, Points: 1},
			{Name: "b", Status: StatusInfo, Points: 5},
		},
	}
	if score := CategoryScore(cat); score != 100 {
		t.Errorf("info items must not dilute the score; got %d", score)
	}
}

func TestCategoryScoreAllInformational(t *testing.T) {
	cat := Category{
		Items: []CheckItem{
			{Name: "a", Status: StatusInfo, Points: 1},
			{Name: "b", Status: StatusInfo, Points: 1},
		},
	}
	if score := CategoryScore(cat); score != 0 {
		t.Errorf("a fully informational category scores 0, got %d", score)
	}
}

func TestDefaultPointValue(t *testing.T) {
	cat := Category{
		Items: []CheckItem{
			{Name: "a", Status: StatusPass}, // no points set, defaults to 1
			{Name: "b", Status: StatusFail},
		},
	}
	if score := CategoryScore(cat); score != 50 {
		t.Errorf("unset points should default to 1; got score %d", score)
	}
}

func TestOverallScorePoolsPoints(t *testing.T) {
	categories := []Category{
		{Items: []CheckItem{{Status: StatusPass, Points: 3}}},
		{Items: []CheckItem{{Status: StatusFail, Points: 1}}},
	}
	// 3 of 4 points earned across categories, not the mean of 100 and 0.
	if score := OverallScore(categories); score != 75 {
		t.Errorf("overall score = %d, want 75", score)
	}
}

func TestScoreBounds(t *testing.T) {
	statuses := []Status{StatusPass, StatusWarning, StatusFail, StatusInfo}
	var categories []Category
	for i, s := range statuses {
		categories = append(categories, Category{
			Items: []CheckItem{
				{Status: s, Points: float64(i + 1)},
				{Status: statuses[(i+1)%len(statuses)], Points: 2},
			},
		})
	}

	overall := OverallScore(categories)
	if overall < 0 || overall > 100 {
		t.Errorf("overall score out of bounds: %d", overall)
	}
	for i, cat := range categories {
		if score := CategoryScore(cat); score < 0 || score > 100 {
			t.Errorf("category %d score out of bounds: %d", i, score)
		}
	}
}

func TestOverallScoreEmpty(t *testing.T) {
	if score := OverallScore(nil); score != 0 {
		t.Errorf("no categories should score 0, got %d", score)
	}
}
