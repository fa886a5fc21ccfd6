package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

const testURL = "https://example.com/seo-toronto-guide"

// fetchedFacts builds a healthy, fully populated snapshot for check
// tests to mutate.
func fetchedFacts() *PageFacts {
	f := DegradedFacts()
	f.ContentFetched = true
	f.Title = "SEO Toronto Guide: Rank Higher in Local Search"
	f.HasTitle = true
	f.MetaDescription = strings.Repeat("A thorough guide to ranking. ", 4)
	f.MetaTags = map[string]string{
		"description": f.MetaDescription,
		"viewport":    "width=device-width, initial-scale=1",
		"og:title":    "SEO Toronto Guide",
		"og:image":    "https://example.com/cover.webp",
	}
	f.Headings = map[string][]string{
		"h1": {"SEO Toronto Guide"},
		"h2": {"Local Rankings", "Technical Basics"},
		"h3": {"Citations", "Reviews"},
		"h4": {}, "h5": {}, "h6": {},
	}
	f.HeadingLevels = []int{1, 2, 3, 2, 3}
	f.Images = ImageFacts{Total: 4, WithAlt: 4, WithDimensions: 4, LazyLoaded: 3, OptimizedFormats: 2}
	f.Links = LinkFacts{
		Internal: LinkGroup{Count: 4, URLs: []string{"/a", "/b", "/c", "/d"}},
		External: LinkGroup{Count: 2, URLs: []string{
			"https://moz.com/learn", "https://facebook.com/example"}},
	}
	f.Canonical = CanonicalFacts{Present: true, URL: testURL}
	f.HasSchemaMarkup = true
	f.SchemaTypes = []string{"LocalBusiness", "FAQPage"}
	f.Social = SocialFacts{
		OpenGraph:    SocialTagGroup{Present: true, Tags: []string{"og:image", "og:title"}},
		TwitterCards: SocialTagGroup{Present: true, Tags: []string{"twitter:card"}},
	}
	f.Mobile = MobileFacts{Viewport: true, ResponsiveMediaQueries: true, TouchIcons: true}
	f.Performance = PerformanceFacts{
		ResourceHints:      true,
		AsyncDeferScripts:  true,
		MinifiedCSS:        true,
		MinifiedJS:         true,
		CompressionEnabled: true,
		CacheHeaders:       true,
	}
	f.IsHTTPS = true
	// Keep keyword frequency in the healthy range: 10 phrase uses across
	// roughly 890 words of copy.
	f.BodyText = strings.TrimSpace(
		strings.Repeat("Our local team covers search rankings reviews citations and practical advice for growing businesses. ", 60) +
			strings.Repeat("We offer seo toronto services. ", 10))
	f.WordCount = len(strings.Fields(f.BodyText))
	return f
}

func findItem(t *testing.T, categories []Category, categoryTitle, itemName string) CheckItem {
	t.Helper()
	for _, cat := range categories {
		if cat.Title != categoryTitle {
			continue
		}
		for _, item := range cat.Items {
			if item.Name == itemName {
				return item
			}
		}
		t.Fatalf("item %q not found in category %q", itemName, categoryTitle)
	}
	t.Fatalf("category %q not found", categoryTitle)
	return CheckItem{}
}

func TestAllTenCategoriesPresent(t *testing.T) {
	categories := BuildCategories(fetchedFacts(), "seo toronto", testURL)
	if len(categories) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(categories))
	}
	for _, cat := range categories {
		if len(cat.Items) == 0 {
			t.Errorf("category %q has no items", cat.Title)
		}
		if cat.Score < 0 || cat.Score > 100 {
			t.Errorf("category %q score out of bounds: %d", cat.Title, cat.Score)
		}
	}
}

func TestTitleLengthBoundary(t *testing.T) {
	facts := fetchedFacts()

	facts.Title = strings.Repeat("a", 60)
	item := findItem(t, BuildCategories(facts, "", testURL), "Title & Meta Tags", "Title Tag Length")
	if item.Status != StatusPass {
		t.Errorf("60-character title should pass, got %q (%s)", item.Status, item.Message)
	}

	facts.Title = strings.Repeat("a", 61)
	item = findItem(t, BuildCategories(facts, "", testURL), "Title & Meta Tags", "Title Tag Length")
	if item.Status != StatusFail {
		t.Errorf("61-character title should fail, got %q (%s)", item.Status, item.Message)
	}
}

func TestHTTPSFailsInBothCategories(t *testing.T) {
	facts := fetchedFacts()
	facts.IsHTTPS = false
	categories := BuildCategories(facts, "", "http://example.com/page")

	if item := findItem(t, categories, "Technical SEO", "HTTPS"); item.Status != StatusFail {
		t.Errorf("Technical SEO HTTPS check should fail, got %q", item.Status)
	}
	if item := findItem(t, categories, "Security & Performance", "HTTPS Implementation"); item.Status != StatusFail {
		t.Errorf("Security HTTPS check should fail, got %q", item.Status)
	}
}

func TestNoKeywordOmitsKeywordChecks(t *testing.T) {
	categories := BuildCategories(fetchedFacts(), "", testURL)
	for _, cat := range categories {
		for _, item := range cat.Items {
			if strings.Contains(item.Name, "Keyword") {
				t.Errorf("category %q contains keyword check %q without a keyword",
					cat.Title, item.Name)
			}
		}
	}
}

func TestKeywordChecksPresentWithKeyword(t *testing.T) {
	categories := BuildCategories(fetchedFacts(), "seo toronto", testURL)
	for _, want := range []struct{ category, item string }{
		{"Title & Meta Tags", "Keyword in Title"},
		{"Headings & Content Structure", "Keyword in H1"},
		{"URL Optimization", "Keyword in URL"},
		{"Content Optimization", "Keyword Density"},
		{"Content Optimization", "Related Keywords"},
		{"Local SEO", "Local Keyword Usage"},
	} {
		item := findItem(t, categories, want.category, want.item)
		if item.Status == StatusInfo {
			t.Errorf("%s/%s should be scored when a keyword is supplied", want.category, want.item)
		}
	}
}

func TestKeywordInURLUsesSlugWords(t *testing.T) {
	item := findItem(t, BuildCategories(fetchedFacts(), "seo toronto", testURL),
		"URL Optimization", "Keyword in URL")
	if item.Status != StatusPass {
		t.Errorf("hyphenated slug containing the keyword should pass, got %q (%s)",
			item.Status, item.Message)
	}
}

func TestFetchFailureAllInformational(t *testing.T) {
	facts := DegradedFacts()
	categories := BuildCategories(facts, "seo toronto", testURL)

	if len(categories) != 10 {
		t.Fatalf("expected all 10 categories even on fetch failure, got %d", len(categories))
	}
	for _, cat := range categories {
		for _, item := range cat.Items {
			if item.Status != StatusInfo {
				t.Errorf("%s/%s should be informational on fetch failure, got %q",
					cat.Title, item.Name, item.Status)
			}
			// Keyword checks stay omitted even though a keyword was given.
			if strings.Contains(item.Name, "Keyword") {
				t.Errorf("keyword check %q should be omitted when content was not fetched", item.Name)
			}
		}
	}
}

func TestHeadingHierarchyDetectsSkips(t *testing.T) {
	facts := fetchedFacts()
	facts.HeadingLevels = []int{1, 3, 2}
	item := findItem(t, BuildCategories(facts, "", testURL),
		"Headings & Content Structure", "Heading Hierarchy")
	if item.Status != StatusFail {
		t.Errorf("an H3 directly after an H1 should fail, got %q", item.Status)
	}

	facts.HeadingLevels = []int{1, 2, 3, 2, 2, 3}
	item = findItem(t, BuildCategories(facts, "", testURL),
		"Headings & Content Structure", "Heading Hierarchy")
	if item.Status != StatusPass {
		t.Errorf("ordered heading levels should pass, got %q", item.Status)
	}
}

func TestMultipleH1Fails(t *testing.T) {
	facts := fetchedFacts()
	facts.Headings["h1"] = []string{"First", "Second"}
	item := findItem(t, BuildCategories(facts, "", testURL),
		"Headings & Content Structure", "Single H1")
	if item.Status != StatusFail {
		t.Errorf("two H1 tags should fail the single-H1 check, got %q", item.Status)
	}
}

func TestURLChecks(t *testing.T) {
	facts := fetchedFacts()

	item := findItem(t, BuildCategories(facts, "", "https://example.com/snake_case_path"),
		"URL Optimization", "Hyphenated Words")
	if item.Status != StatusFail {
		t.Errorf("underscores in the path should fail, got %q", item.Status)
	}

	item = findItem(t, BuildCategories(facts, "", "https://example.com/page?id=42&sort=asc"),
		"URL Optimization", "Query Parameters")
	if item.Status != StatusFail {
		t.Errorf("query parameters should fail, got %q", item.Status)
	}

	long := "https://example.com/" + strings.Repeat("p", 110)
	item = findItem(t, BuildCategories(facts, "", long), "URL Optimization", "URL Length")
	if item.Status != StatusFail {
		t.Errorf("an overlong URL should fail, got %q", item.Status)
	}
}

func TestNoindexBlocksIndexing(t *testing.T) {
	facts := fetchedFacts()
	facts.RobotsMeta = RobotsFacts{Present: true, Content: "noindex, nofollow"}
	item := findItem(t, BuildCategories(facts, "", testURL),
		"Technical SEO", "Search Engine Indexing")
	if item.Status != StatusFail {
		t.Errorf("a noindex robots meta should fail, got %q", item.Status)
	}
}

func TestSitemapAndRobotsAreInformational(t *testing.T) {
	categories := BuildCategories(fetchedFacts(), "", testURL)
	for _, name := range []string{"XML Sitemap", "Robots.txt"} {
		if item := findItem(t, categories, "Technical SEO", name); item.Status != StatusInfo {
			t.Errorf("%s requires extra fetches and must stay informational, got %q", name, item.Status)
		}
	}
}

func TestMixedContentCheck(t *testing.T) {
	facts := fetchedFacts()
	facts.MixedContent = true
	item := findItem(t, BuildCategories(facts, "", testURL),
		"Security & Performance", "Mixed Content")
	if item.Status != StatusFail {
		t.Errorf("mixed content should fail, got %q", item.Status)
	}
}

func TestAnalyzeFactsDeterministic(t *testing.T) {
	facts := fetchedFacts()
	first := AnalyzeFacts(facts, "seo toronto", testURL)
	second := AnalyzeFacts(facts, "seo toronto", testURL)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical results")
	}
	if first.Score < 0 || first.Score > 100 {
		t.Errorf("score out of bounds: %d", first.Score)
	}
}

func TestHealthyPageScoresWell(t *testing.T) {
	result := AnalyzeFacts(fetchedFacts(), "seo toronto", testURL)
	if result.Score < 70 {
		t.Errorf("a well-optimized page should score high, got %d", result.Score)
	}
	if !result.ContentFetched {
		t.Error("ContentFetched should be true for extracted facts")
	}
}

func TestDegradedResultScoresZero(t *testing.T) {
	result := AnalyzeFacts(DegradedFacts(), "", testURL)
	if result.Score != 0 {
		t.Errorf("an all-informational result has no earned points; got score %d", result.Score)
	}
	if result.ContentFetched {
		t.Error("ContentFetched should be false for degraded facts")
	}
}
