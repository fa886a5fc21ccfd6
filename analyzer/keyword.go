package analyzer

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// TextMatch is the result of scanning a block of text for a keyword.
type TextMatch struct {
	HasExactMatch   bool     `json:"hasExactMatch"`
	HasPartialMatch bool     `json:"hasPartialMatch"`
	ExactMatches    int      `json:"exactMatches"`
	PartialMatches  int      `json:"partialMatches"`
	Variations      []string `json:"variations"`
}

// DensityResult reports how often a keyword occurs relative to the
// total word count of a page.
type DensityResult struct {
	Density           float64    `json:"density"`
	Count             int        `json:"count"`
	TotalWords        int        `json:"totalWords"`
	ExactMatchCount   int        `json:"exactMatchCount"`
	PartialMatchCount int        `json:"partialMatchCount"`
	Importance        Importance `json:"importance"`
}

// TitleMatch reports keyword placement within a page title.
type TitleMatch struct {
	Present     bool `json:"present"`
	AtBeginning bool `json:"atBeginning"`
	ExactMatch  bool `json:"exactMatch"`
	// PartialMatch is mutually exclusive with ExactMatch; Present is
	// true if either holds.
	PartialMatch bool `json:"partialMatch"`
}

var (
	bodyRe       = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe        = regexp.MustCompile(`(?s)<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// visibleText reduces raw HTML to readable body text: prefer the body
// element, drop script/style blocks wholesale, strip remaining tags,
// collapse whitespace. Plain text passes through unchanged.
func visibleText(content string) string {
	if m := bodyRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	}
	content = scriptRe.ReplaceAllString(content, " ")
	content = styleRe.ReplaceAllString(content, " ")
	content = tagRe.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(content, " "))
}

func trimWord(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// AnalyzeKeywordInText counts exact phrase matches and looser
// word-level variations of keyword inside text. Empty input yields a
// zero result, never an error.
func AnalyzeKeywordInText(text, keyword string) TextMatch {
	result := TextMatch{Variations: []string{}}
	text = strings.TrimSpace(text)
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if text == "" || keyword == "" {
		return result
	}
	lowerText := strings.ToLower(text)

	// Exact match: whole phrase on word boundaries, with the keyword's
	// internal spaces matching any whitespace run.
	kwParts := strings.Fields(keyword)
	quoted := make([]string, len(kwParts))
	for i, p := range kwParts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	exactRe, err := regexp.Compile(`\b` + strings.Join(quoted, `\s+`) + `\b`)
	if err == nil {
		result.ExactMatches = len(exactRe.FindAllStringIndex(lowerText, -1))
	}
	result.HasExactMatch = result.ExactMatches > 0

	// Variations: compare every text word >3 chars against every
	// keyword sub-word >3 chars by containment either way, or by a
	// crude stem (word minus its last two characters). Each unique
	// variation word counts once, regardless of how often it recurs.
	var words []string
	for _, w := range strings.Fields(lowerText) {
		if t := trimWord(w); t != "" {
			words = append(words, t)
		}
	}
	var kwWords []string
	for _, p := range kwParts {
		if len(p) > 3 {
			kwWords = append(kwWords, p)
		}
	}
	seen := make(map[string]bool)
	for _, w := range words {
		if len(w) <= 3 {
			continue
		}
		for _, k := range kwWords {
			if strings.Contains(w, k) || strings.Contains(k, w) || w[:len(w)-2] == k[:len(k)-2] {
				if !seen[w] {
					seen[w] = true
					result.Variations = append(result.Variations, w)
				}
				break
			}
		}
	}
	result.PartialMatches = len(result.Variations)

	// Proximity: for multi-word keywords, scan windows of
	// len(keyword words)+2 consecutive text words; if some window
	// holds all but at most one sub-word, count a single extra match.
	if len(kwParts) > 1 && len(kwWords) >= 2 {
		window := len(kwParts) + 2
		found := false
		for i := 0; i+window <= len(words) && !found; i++ {
			hits := 0
			for _, k := range kwWords {
				for j := i; j < i+window; j++ {
					if strings.Contains(words[j], k) {
						hits++
						break
					}
				}
			}
			if hits >= len(kwWords)-1 {
				found = true
			}
		}
		if found {
			result.PartialMatches++
		}
	}

	result.HasPartialMatch = result.PartialMatches > 0
	return result
}

// AnalyzeKeywordDensity measures keyword frequency against the visible
// word count of content (raw HTML or plain text).
func AnalyzeKeywordDensity(content, keyword string) DensityResult {
	text := visibleText(content)
	result := DensityResult{
		TotalWords: len(strings.Fields(text)),
		Importance: ImportanceNone,
	}
	if result.TotalWords == 0 || strings.TrimSpace(keyword) == "" {
		return result
	}

	match := AnalyzeKeywordInText(text, keyword)
	result.ExactMatchCount = match.ExactMatches
	result.PartialMatchCount = match.PartialMatches
	result.Count = match.ExactMatches + match.PartialMatches
	result.Density = 100 * float64(result.Count) / float64(result.TotalWords)

	switch {
	case result.Density == 0:
		result.Importance = ImportanceNone
	case result.Density < 0.5:
		result.Importance = ImportanceLow
	case result.Density <= 2.5:
		result.Importance = ImportanceMedium
	default:
		result.Importance = ImportanceHigh
	}
	return result
}

// AnalyzeKeywordInTitle reports whether and where a keyword appears in
// a page title.
func AnalyzeKeywordInTitle(title, keyword string) TitleMatch {
	t := strings.ToLower(strings.TrimSpace(title))
	k := strings.ToLower(strings.TrimSpace(keyword))
	if t == "" || k == "" {
		return TitleMatch{}
	}

	match := TitleMatch{}
	match.ExactMatch = strings.Contains(t, k)
	match.AtBeginning = strings.HasPrefix(t, k) ||
		strings.HasPrefix(t, "the "+k) ||
		strings.HasPrefix(t, "a "+k)
	if !match.ExactMatch {
		for _, part := range strings.Fields(k) {
			if len(part) > 3 && strings.Contains(t, part) {
				match.PartialMatch = true
				break
			}
		}
	}
	match.Present = match.ExactMatch || match.PartialMatch
	return match
}
