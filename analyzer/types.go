package analyzer

// Status is the outcome of a single evaluated check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
	// StatusInfo marks checks that could not be evaluated (page not
	// fetched, signal requires crawling). Info items never contribute
	// points to a score.
	StatusInfo Status = "info"
)

// Importance classifies keyword density into coarse tiers.
type Importance string

const (
	ImportanceNone   Importance = "none"
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// CheckItem is one evaluated rule within a category.
type CheckItem struct {
	Name    string  `json:"name"`
	Status  Status  `json:"status"`
	Message string  `json:"message"`
	Points  float64 `json:"points"`
}

// Category groups related checks. Item order is fixed: foundational
// checks first, refinements after. Score is the category's own 0-100
// aggregate, computed when the category is built.
type Category struct {
	Title string      `json:"title"`
	Score int         `json:"score"`
	Items []CheckItem `json:"items"`
}

// AnalysisResult is the complete outcome of analyzing one URL.
type AnalysisResult struct {
	URL            string     `json:"url"`
	Keyword        string     `json:"keyword,omitempty"`
	ContentFetched bool       `json:"contentFetched"`
	FetchError     string     `json:"fetchError,omitempty"`
	Score          int        `json:"score"`
	Categories     []Category `json:"categories"`
}

// ImageFacts inventories the <img> elements on a page. Every counter
// is bounded by Total.
type ImageFacts struct {
	Total            int `json:"total"`
	WithAlt          int `json:"withAlt"`
	WithDimensions   int `json:"withDimensions"`
	LazyLoaded       int `json:"lazyLoaded"`
	OptimizedFormats int `json:"optimizedFormats"`
}

// LinkGroup holds one side of the internal/external link split.
type LinkGroup struct {
	Count int      `json:"count"`
	URLs  []string `json:"urls"`
}

type LinkFacts struct {
	Internal LinkGroup `json:"internal"`
	External LinkGroup `json:"external"`
}

type CanonicalFacts struct {
	Present bool   `json:"present"`
	URL     string `json:"url,omitempty"`
}

type SocialTagGroup struct {
	Present bool     `json:"present"`
	Tags    []string `json:"tags"`
}

type SocialFacts struct {
	OpenGraph    SocialTagGroup `json:"openGraph"`
	TwitterCards SocialTagGroup `json:"twitterCards"`
}

type RobotsFacts struct {
	Present bool   `json:"present"`
	Content string `json:"content,omitempty"`
}

type HreflangEntry struct {
	Language string `json:"language"`
	URL      string `json:"url"`
}

type MobileFacts struct {
	Viewport               bool `json:"viewport"`
	ResponsiveMediaQueries bool `json:"responsiveMediaQueries"`
	TouchIcons             bool `json:"touchIcons"`
}

// PerformanceFacts are static delivery signals. CompressionEnabled and
// CacheHeaders come from the fetch response headers, the rest from markup.
type PerformanceFacts struct {
	ResourceHints      bool `json:"resourceHints"`
	AsyncDeferScripts  bool `json:"asyncDeferScripts"`
	MinifiedCSS        bool `json:"minifiedCss"`
	MinifiedJS         bool `json:"minifiedJs"`
	CompressionEnabled bool `json:"compressionEnabled"`
	CacheHeaders       bool `json:"cacheHeaders"`
}

// PageFacts is an immutable snapshot of one fetched page. It is built
// once per analysis run and never mutated afterwards; every check is a
// pure function over it.
type PageFacts struct {
	ContentFetched  bool                `json:"contentFetched"`
	Title           string              `json:"title"`
	HasTitle        bool                `json:"hasTitle"`
	MetaDescription string              `json:"metaDescription"`
	MetaTags        map[string]string   `json:"metaTags"`
	Headings        map[string][]string `json:"headings"`
	HeadingLevels   []int               `json:"headingLevels"`
	Images          ImageFacts          `json:"images"`
	Links           LinkFacts           `json:"links"`
	Canonical       CanonicalFacts      `json:"canonical"`
	HasSchemaMarkup bool                `json:"hasSchemaMarkup"`
	SchemaTypes     []string            `json:"schemaTypes"`
	Social          SocialFacts         `json:"social"`
	RobotsMeta      RobotsFacts         `json:"robotsMeta"`
	Language        string              `json:"language,omitempty"`
	Hreflang        []HreflangEntry     `json:"hreflang"`
	Mobile          MobileFacts         `json:"mobile"`
	Performance     PerformanceFacts    `json:"performance"`
	IsHTTPS         bool                `json:"isHttps"`
	MixedContent    bool                `json:"mixedContent"`
	BodyText        string              `json:"-"`
	WordCount       int                 `json:"wordCount"`
}

// DegradedFacts returns the sentinel snapshot used when the page could
// not be fetched: all booleans false, all counts zero, empty collections.
// Checks see ContentFetched=false and report info instead of fail.
func DegradedFacts() *PageFacts {
	return &PageFacts{
		ContentFetched: false,
		MetaTags:       map[string]string{},
		Headings:       emptyHeadings(),
		Hreflang:       []HreflangEntry{},
		SchemaTypes:    []string{},
	}
}

func emptyHeadings() map[string][]string {
	return map[string][]string{
		"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	}
}
