package analyzer

import (
	"strings"
	"testing"
)

func TestAnalyzeKeywordInTextExactPhrase(t *testing.T) {
	result := AnalyzeKeywordInText("Our SEO Audit Tool helps with SEO Toronto rankings", "seo toronto")

	if !result.HasExactMatch {
		t.Error("Expected an exact match for the full phrase")
	}
	if result.ExactMatches != 1 {
		t.Errorf("Expected 1 exact match, got %d", result.ExactMatches)
	}
}

func TestAnalyzeKeywordInTextWhitespaceNormalization(t *testing.T) {
	result := AnalyzeKeywordInText("best   seo \t toronto services", "seo toronto")

	if result.ExactMatches != 1 {
		t.Errorf("Keyword spaces should match whitespace runs; got %d exact matches", result.ExactMatches)
	}
}

func TestAnalyzeKeywordInTextVariationsDeduplicated(t *testing.T) {
	// "marketing" recurs but counts once as a variation.
	result := AnalyzeKeywordInText(
		"marketing guides discuss marketing and more marketing",
		"market")

	if result.PartialMatches != 1 {
		t.Errorf("Expected 1 deduplicated variation, got %d", result.PartialMatches)
	}
	if result.HasExactMatch {
		t.Error("Did not expect an exact match of the whole keyword")
	}
}

func TestAnalyzeKeywordInTextEmptyInputs(t *testing.T) {
	for _, tc := range []struct{ text, keyword string }{
		{"", "seo"},
		{"some text here", ""},
		{"", ""},
	} {
		result := AnalyzeKeywordInText(tc.text, tc.keyword)
		if result.HasExactMatch || result.HasPartialMatch ||
			result.ExactMatches != 0 || result.PartialMatches != 0 {
			t.Errorf("Empty input (%q,%q) should yield a zero result, got %+v",
				tc.text, tc.keyword, result)
		}
	}
}

func TestAnalyzeKeywordInTextProximityCountsOnce(t *testing.T) {
	// Both keyword sub-words occur near each other in two separate
	// places, but proximity adds at most one match overall.
	text := "marketing experts in toronto offer marketing plans for toronto firms"
	result := AnalyzeKeywordInText(text, "toronto marketing")

	// Variations: "marketing" and "toronto" (each deduplicated) plus
	// a single proximity match.
	if result.PartialMatches != 3 {
		t.Errorf("Expected 2 variations + 1 proximity match = 3, got %d", result.PartialMatches)
	}
}

func TestAnalyzeKeywordDensityImportanceTiers(t *testing.T) {
	// One "gadget" among short filler words yields exactly 1 exact
	// match plus 1 variation (the word itself), so count is 2.
	textWithTotal := func(total int) string {
		words := make([]string, 0, total)
		words = append(words, "gadget")
		for len(words) < total {
			words = append(words, "foo")
		}
		return strings.Join(words, " ")
	}

	tests := []struct {
		name       string
		content    string
		wantCount  int
		wantTier   Importance
		wantDense  float64
		totalWords int
	}{
		{"none", "foo bar baz qux", 0, ImportanceNone, 0, 4},
		{"low", textWithTotal(500), 2, ImportanceLow, 0.4, 500},
		{"medium lower bound", textWithTotal(400), 2, ImportanceMedium, 0.5, 400},
		{"medium upper bound", textWithTotal(80), 2, ImportanceMedium, 2.5, 80},
		{"high", textWithTotal(50), 2, ImportanceHigh, 4.0, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := AnalyzeKeywordDensity(tc.content, "gadget")
			if result.Count != tc.wantCount {
				t.Errorf("count = %d, want %d", result.Count, tc.wantCount)
			}
			if result.TotalWords != tc.totalWords {
				t.Errorf("totalWords = %d, want %d", result.TotalWords, tc.totalWords)
			}
			if result.Density != tc.wantDense {
				t.Errorf("density = %v, want %v", result.Density, tc.wantDense)
			}
			if result.Importance != tc.wantTier {
				t.Errorf("importance = %q, want %q", result.Importance, tc.wantTier)
			}
		})
	}
}

func TestAnalyzeKeywordDensityBounds(t *testing.T) {
	texts := []string{
		"",
		"<body>word soup with nothing relevant</body>",
		"gadget gadget gadget",
		strings.Repeat("gadget filler ", 100),
	}
	for _, text := range texts {
		result := AnalyzeKeywordDensity(text, "gadget")
		if result.Density < 0 {
			t.Errorf("Density must never be negative, got %v", result.Density)
		}
		if (result.Density == 0) != (result.Count == 0) {
			t.Errorf("Density is zero iff count is zero; got density=%v count=%d",
				result.Density, result.Count)
		}
	}
}

func TestAnalyzeKeywordDensityStripsMarkup(t *testing.T) {
	content := `<html><head><title>ignored title words</title>
		<script>var ignored = "script words everywhere";</script></head>
		<body><style>.ignored { color: red; }</style>
		<h1>gadget reviews</h1><p>one two three four five six</p></body></html>`

	result := AnalyzeKeywordDensity(content, "gadget")
	// Visible words: gadget reviews one two three four five six.
	if result.TotalWords != 8 {
		t.Errorf("Expected 8 visible words, got %d", result.TotalWords)
	}
	if result.Count == 0 {
		t.Error("Expected the keyword to be counted in visible text")
	}
}

func TestAnalyzeKeywordInTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		keyword string
		want    TitleMatch
	}{
		{
			name:    "partial when phrase is split",
			title:   "The Best SEO Services in Toronto",
			keyword: "seo toronto",
			want:    TitleMatch{Present: true, ExactMatch: false, PartialMatch: true},
		},
		{
			name:    "exact contiguous phrase",
			title:   "SEO Toronto Experts You Can Trust",
			keyword: "seo toronto",
			want:    TitleMatch{Present: true, AtBeginning: true, ExactMatch: true},
		},
		{
			name:    "leading article still counts as beginning",
			title:   "The SEO Toronto Playbook",
			keyword: "seo toronto",
			want:    TitleMatch{Present: true, AtBeginning: true, ExactMatch: true},
		},
		{
			name:    "absent keyword",
			title:   "Cooking With Cast Iron",
			keyword: "seo toronto",
			want:    TitleMatch{},
		},
		{
			name:    "empty title",
			title:   "",
			keyword: "seo",
			want:    TitleMatch{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AnalyzeKeywordInTitle(tc.title, tc.keyword)
			if got != tc.want {
				t.Errorf("AnalyzeKeywordInTitle(%q, %q) = %+v, want %+v",
					tc.title, tc.keyword, got, tc.want)
			}
		})
	}
}
