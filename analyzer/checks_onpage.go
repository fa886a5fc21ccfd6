package analyzer

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

func titleMetaChecks(c *checkContext) []CheckItem {
	f := c.facts
	var items []CheckItem

	if c.hasKeyword() {
		match := AnalyzeKeywordInTitle(f.Title, c.keyword)
		switch {
		case match.ExactMatch && match.AtBeginning:
			items = append(items, c.item("Keyword in Title", 2, StatusPass,
				"Title starts with the target keyword"))
		case match.ExactMatch:
			items = append(items, c.item("Keyword in Title", 2, StatusPass,
				"Title contains the target keyword"))
		case match.PartialMatch:
			items = append(items, c.item("Keyword in Title", 2, StatusWarning,
				"Title only contains part of the target keyword"))
		default:
			items = append(items, c.item("Keyword in Title", 2, StatusFail,
				"Title does not mention the target keyword"))
		}
	}

	titleLen := utf8.RuneCountInString(f.Title)
	switch {
	case !f.HasTitle:
		items = append(items, c.item("Title Tag Length", 1, StatusFail,
			"The page has no title tag"))
	case titleLen > 60:
		items = append(items, c.item("Title Tag Length", 1, StatusFail,
			fmt.Sprintf("Title is %d characters; search results truncate after 60", titleLen)))
	case titleLen < 30:
		items = append(items, c.item("Title Tag Length", 1, StatusWarning,
			fmt.Sprintf("Title is only %d characters; 30-60 is the usual range", titleLen)))
	default:
		items = append(items, c.item("Title Tag Length", 1, StatusPass,
			fmt.Sprintf("Title is %d characters", titleLen)))
	}

	items = append(items, c.item("Meta Description", 2, passFail(f.MetaDescription != ""),
		metaDescriptionMessage(f.MetaDescription)))

	descLen := utf8.RuneCountInString(f.MetaDescription)
	switch {
	case f.MetaDescription == "":
		items = append(items, c.item("Meta Description Length", 1, StatusFail,
			"No meta description to measure"))
	case descLen > 160:
		items = append(items, c.item("Meta Description Length", 1, StatusFail,
			fmt.Sprintf("Meta description is %d characters; keep it under 160", descLen)))
	case descLen < 70:
		items = append(items, c.item("Meta Description Length", 1, StatusWarning,
			fmt.Sprintf("Meta description is only %d characters; 70-160 reads best", descLen)))
	default:
		items = append(items, c.item("Meta Description Length", 1, StatusPass,
			fmt.Sprintf("Meta description is %d characters", descLen)))
	}

	items = append(items, c.item("Open Graph Tags", 1, passWarn(f.Social.OpenGraph.Present),
		openGraphMessage(f)))

	return items
}

func metaDescriptionMessage(desc string) string {
	if desc == "" {
		return "The page has no meta description"
	}
	return "Meta description is present"
}

func openGraphMessage(f *PageFacts) string {
	if f.Social.OpenGraph.Present {
		return fmt.Sprintf("Found %d Open Graph tags", len(f.Social.OpenGraph.Tags))
	}
	return "No Open Graph tags found; shared links will render poorly"
}

func headingChecks(c *checkContext) []CheckItem {
	f := c.facts
	h1s := f.Headings["h1"]
	var items []CheckItem

	items = append(items, c.item("H1 Tag", 2, passFail(len(h1s) > 0),
		h1PresenceMessage(len(h1s))))

	if c.hasKeyword() {
		status := StatusFail
		message := "No H1 mentions the target keyword"
		for _, h1 := range h1s {
			match := AnalyzeKeywordInTitle(h1, c.keyword)
			if match.ExactMatch {
				status = StatusPass
				message = "An H1 contains the target keyword"
				break
			}
			if match.PartialMatch && status == StatusFail {
				status = StatusWarning
				message = "An H1 only partially matches the target keyword"
			}
		}
		items = append(items, c.item("Keyword in H1", 2, status, message))
	}

	switch {
	case len(h1s) == 1:
		items = append(items, c.item("Single H1", 1, StatusPass, "Exactly one H1 on the page"))
	case len(h1s) > 1:
		items = append(items, c.item("Single H1", 1, StatusFail,
			fmt.Sprintf("Found %d H1 tags; keep a single H1 per page", len(h1s))))
	default:
		items = append(items, c.item("Single H1", 1, StatusFail, "No H1 tag found"))
	}

	h2Count := f.headingCount(2)
	h3Count := f.headingCount(3)
	switch {
	case h2Count > 0 && h3Count > 0:
		items = append(items, c.item("Subheadings", 1, StatusPass,
			fmt.Sprintf("Content is structured with %d H2 and %d H3 subheadings", h2Count, h3Count)))
	case h2Count > 0:
		items = append(items, c.item("Subheadings", 1, StatusWarning,
			fmt.Sprintf("Found %d H2 subheadings but no H3s", h2Count)))
	default:
		items = append(items, c.item("Subheadings", 1, StatusFail,
			"No H2 subheadings; break long content into sections"))
	}

	items = append(items, headingHierarchyItem(c))
	return items
}

func h1PresenceMessage(count int) string {
	if count > 0 {
		return "The page has an H1 heading"
	}
	return "The page is missing an H1 heading"
}

// headingHierarchyItem flags levels that jump deeper by more than one
// step in document order, e.g. an H3 appearing before any H2.
func headingHierarchyItem(c *checkContext) CheckItem {
	levels := c.facts.HeadingLevels
	if len(levels) == 0 {
		return c.item("Heading Hierarchy", 1, StatusFail, "No headings found on the page")
	}
	prev := levels[0]
	for _, level := range levels[1:] {
		if level > prev+1 {
			return c.item("Heading Hierarchy", 1, StatusFail,
				fmt.Sprintf("An H%d follows an H%d; heading levels should not skip", level, prev))
		}
		prev = level
	}
	return c.item("Heading Hierarchy", 1, StatusPass, "Heading levels descend in order")
}

func urlChecks(c *checkContext) []CheckItem {
	var items []CheckItem
	u, err := url.Parse(c.pageURL)
	path := ""
	rawQuery := ""
	if err == nil {
		path = u.Path
		rawQuery = u.RawQuery
	}

	urlLen := len(c.pageURL)
	switch {
	case urlLen <= 75:
		items = append(items, c.item("URL Length", 1, StatusPass,
			fmt.Sprintf("URL is %d characters", urlLen)))
	case urlLen <= 100:
		items = append(items, c.item("URL Length", 1, StatusWarning,
			fmt.Sprintf("URL is %d characters; shorter URLs are easier to share", urlLen)))
	default:
		items = append(items, c.item("URL Length", 1, StatusFail,
			fmt.Sprintf("URL is %d characters; keep URLs under 75", urlLen)))
	}

	if c.hasKeyword() {
		slug := strings.ToLower(path)
		for _, sep := range []string{"-", "_", "/", "."} {
			slug = strings.ReplaceAll(slug, sep, " ")
		}
		kw := strings.ToLower(c.keyword)
		switch {
		case strings.Contains(slug, kw):
			items = append(items, c.item("Keyword in URL", 2, StatusPass,
				"URL path contains the target keyword"))
		case urlContainsKeywordPart(slug, kw):
			items = append(items, c.item("Keyword in URL", 2, StatusWarning,
				"URL path contains part of the target keyword"))
		default:
			items = append(items, c.item("Keyword in URL", 2, StatusFail,
				"URL path does not mention the target keyword"))
		}
	}

	items = append(items, descriptiveSlugItem(c, path))

	items = append(items, c.item("Hyphenated Words", 1, passFail(!strings.Contains(path, "_")),
		hyphenMessage(path)))

	if rawQuery == "" {
		items = append(items, c.item("Query Parameters", 1, StatusPass,
			"URL has no dynamic query parameters"))
	} else {
		items = append(items, c.item("Query Parameters", 1, StatusFail,
			fmt.Sprintf("URL carries query parameters (?%s); prefer static paths", rawQuery)))
	}

	return items
}

func urlContainsKeywordPart(slug, keyword string) bool {
	for _, part := range strings.Fields(keyword) {
		if len(part) > 3 && strings.Contains(slug, part) {
			return true
		}
	}
	return false
}

func descriptiveSlugItem(c *checkContext, path string) CheckItem {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return c.item("Descriptive URL", 1, StatusPass, "Root URL")
	}
	last := segments[len(segments)-1]
	if isNumericSlug(last) {
		return c.item("Descriptive URL", 1, StatusWarning,
			fmt.Sprintf("URL ends in the numeric segment %q; descriptive words rank better", last))
	}
	if len(last) > 60 || strings.Contains(last, "%") {
		return c.item("Descriptive URL", 1, StatusWarning,
			"URL slug is long or encoded; keep slugs short and readable")
	}
	return c.item("Descriptive URL", 1, StatusPass, "URL slug is short and descriptive")
}

func isNumericSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hyphenMessage(path string) string {
	if strings.Contains(path, "_") {
		return "URL uses underscores; search engines treat hyphens as word separators"
	}
	return "URL words are separated with hyphens"
}

func contentChecks(c *checkContext) []CheckItem {
	f := c.facts
	var items []CheckItem

	switch {
	case f.WordCount >= 800:
		items = append(items, c.item("Word Count", 2, StatusPass,
			fmt.Sprintf("Page has %d words of visible text", f.WordCount)))
	case f.WordCount >= 300:
		items = append(items, c.item("Word Count", 2, StatusWarning,
			fmt.Sprintf("Page has %d words; competitive pages usually run 800+", f.WordCount)))
	default:
		items = append(items, c.item("Word Count", 2, StatusFail,
			fmt.Sprintf("Page has only %d words of visible text", f.WordCount)))
	}

	// Section length is approximated as words per subheading block; the
	// extractor does not segment text by heading.
	sections := f.headingCount(2) + f.headingCount(3) + 1
	wordsPerSection := f.WordCount / sections
	switch {
	case f.WordCount < 300:
		items = append(items, c.item("Thin Content", 1, StatusFail,
			"Overall content is too thin to section"))
	case wordsPerSection >= 300:
		items = append(items, c.item("Thin Content", 1, StatusPass,
			fmt.Sprintf("Sections average %d words", wordsPerSection)))
	case wordsPerSection >= 150:
		items = append(items, c.item("Thin Content", 1, StatusWarning,
			fmt.Sprintf("Sections average %d words; flesh out the thinner ones", wordsPerSection)))
	default:
		items = append(items, c.item("Thin Content", 1, StatusFail,
			fmt.Sprintf("Sections average only %d words", wordsPerSection)))
	}

	// Snippet readiness is judged from structure alone: a sectioned
	// page with substantial text is the closest static proxy.
	switch {
	case f.headingCount(2) > 0 && f.WordCount >= 300:
		items = append(items, c.item("Featured Snippet Structure", 1, StatusPass,
			"Sectioned content with enough depth to target featured snippets"))
	case f.headingCount(2) > 0:
		items = append(items, c.item("Featured Snippet Structure", 1, StatusWarning,
			"Headings are in place but the content is too short for snippets"))
	default:
		items = append(items, c.item("Featured Snippet Structure", 1, StatusFail,
			"No question-and-answer structure for featured snippets"))
	}

	items = append(items, c.item("FAQ Schema", 1, passWarn(hasSchemaType(f, "FAQPage")),
		faqMessage(f)))

	if c.hasKeyword() {
		density := AnalyzeKeywordDensity(f.BodyText, c.keyword)
		switch density.Importance {
		case ImportanceMedium:
			items = append(items, c.item("Keyword Density", 2, StatusPass,
				fmt.Sprintf("Keyword density is %.1f%% (%d of %d words)",
					density.Density, density.Count, density.TotalWords)))
		case ImportanceLow:
			items = append(items, c.item("Keyword Density", 2, StatusWarning,
				fmt.Sprintf("Keyword density is only %.1f%%; work the keyword in naturally", density.Density)))
		case ImportanceHigh:
			items = append(items, c.item("Keyword Density", 2, StatusFail,
				fmt.Sprintf("Keyword density is %.1f%%; this reads as keyword stuffing", density.Density)))
		default:
			items = append(items, c.item("Keyword Density", 2, StatusFail,
				"The target keyword does not appear in the page text"))
		}

		related := AnalyzeKeywordInText(f.BodyText, c.keyword)
		switch {
		case related.PartialMatches >= 3:
			items = append(items, c.item("Related Keywords", 1, StatusPass,
				fmt.Sprintf("Found %d keyword variations in the text", related.PartialMatches)))
		case related.PartialMatches > 0:
			items = append(items, c.item("Related Keywords", 1, StatusWarning,
				fmt.Sprintf("Only %d keyword variations found; add related phrasing", related.PartialMatches)))
		default:
			items = append(items, c.item("Related Keywords", 1, StatusFail,
				"No keyword variations or related terms found"))
		}
	}

	internal := f.Links.Internal.Count
	switch {
	case internal >= 3:
		items = append(items, c.item("Internal Links", 1, StatusPass,
			fmt.Sprintf("Page links to %d internal pages", internal)))
	case internal > 0:
		items = append(items, c.item("Internal Links", 1, StatusWarning,
			fmt.Sprintf("Only %d internal links; aim for 3-5", internal)))
	default:
		items = append(items, c.item("Internal Links", 1, StatusFail,
			"No internal links found"))
	}

	external := f.Links.External.Count
	switch {
	case external > 50:
		items = append(items, c.item("External Links", 1, StatusWarning,
			fmt.Sprintf("%d external links dilutes the page's focus", external)))
	case external > 0:
		items = append(items, c.item("External Links", 1, StatusPass,
			fmt.Sprintf("Page references %d external sources", external)))
	default:
		items = append(items, c.item("External Links", 1, StatusWarning,
			"No external links; citing authoritative sources builds trust"))
	}

	return items
}

func hasSchemaType(f *PageFacts, want string) bool {
	for _, t := range f.SchemaTypes {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func faqMessage(f *PageFacts) string {
	if hasSchemaType(f, "FAQPage") {
		return "FAQPage structured data is present"
	}
	return "No FAQ schema; question sections are eligible for rich results"
}
