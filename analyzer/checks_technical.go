package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

func technicalChecks(c *checkContext) []CheckItem {
	f := c.facts
	var items []CheckItem

	items = append(items, c.item("HTTPS", 2, passFail(f.IsHTTPS), httpsMessage(f.IsHTTPS)))

	items = append(items, c.item("Mobile Friendly", 2, passFail(f.Mobile.Viewport),
		viewportMessage(f.Mobile.Viewport)))

	if f.Canonical.Present {
		items = append(items, c.item("Canonical Tag", 1, StatusPass,
			fmt.Sprintf("Canonical URL set to %s", f.Canonical.URL)))
	} else {
		items = append(items, c.item("Canonical Tag", 1, StatusFail,
			"No canonical tag; duplicate URLs will split ranking signals"))
	}

	items = append(items, c.item("Structured Data", 1, passWarn(f.HasSchemaMarkup),
		structuredDataMessage(f)))

	if f.RobotsMeta.Present && strings.Contains(strings.ToLower(f.RobotsMeta.Content), "noindex") {
		items = append(items, c.item("Search Engine Indexing", 1, StatusFail,
			fmt.Sprintf("Robots meta tag blocks indexing (%q)", f.RobotsMeta.Content)))
	} else {
		items = append(items, c.item("Search Engine Indexing", 1, StatusPass,
			"Page is not blocked from indexing"))
	}

	// Load speed without a browser run: count static delivery signals.
	signals := 0
	for _, ok := range []bool{
		f.Performance.ResourceHints,
		f.Performance.AsyncDeferScripts,
		f.Performance.MinifiedCSS,
		f.Performance.MinifiedJS,
	} {
		if ok {
			signals++
		}
	}
	switch {
	case signals >= 2:
		items = append(items, c.item("Page Speed Signals", 1, StatusPass,
			fmt.Sprintf("%d of 4 delivery optimizations detected", signals)))
	case signals == 1:
		items = append(items, c.item("Page Speed Signals", 1, StatusWarning,
			"Only one delivery optimization detected"))
	default:
		items = append(items, c.item("Page Speed Signals", 1, StatusFail,
			"No resource hints, async scripts, or minified assets detected"))
	}

	// Verifying these needs requests beyond the page itself.
	items = append(items, c.info("XML Sitemap", 1,
		"Sitemap presence is verified by fetching /sitemap.xml, outside a single-page analysis"))
	items = append(items, c.info("Robots.txt", 1,
		"Robots.txt is verified by fetching /robots.txt, outside a single-page analysis"))

	return items
}

func httpsMessage(ok bool) string {
	if ok {
		return "Page is served over HTTPS"
	}
	return "Page is not served over HTTPS"
}

func structuredDataMessage(f *PageFacts) string {
	if !f.HasSchemaMarkup {
		return "No structured data found on the page"
	}
	if len(f.SchemaTypes) > 0 {
		return fmt.Sprintf("Structured data present (%s)", strings.Join(f.SchemaTypes, ", "))
	}
	return "Structured data markup is present"
}

var phoneRe = regexp.MustCompile(`\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)

var addressHints = []string{
	" street", " st.", " avenue", " ave", " road", " rd.", " boulevard",
	" blvd", " suite", " unit ", " drive", " dr.", " lane",
}

func localChecks(c *checkContext) []CheckItem {
	f := c.facts
	lowerBody := strings.ToLower(f.BodyText)
	var items []CheckItem

	switch {
	case hasSchemaType(f, "LocalBusiness") || hasSchemaType(f, "Organization"):
		items = append(items, c.item("LocalBusiness Schema", 2, StatusPass,
			"Business structured data is present"))
	case f.HasSchemaMarkup:
		items = append(items, c.item("LocalBusiness Schema", 2, StatusWarning,
			"Structured data exists but declares no LocalBusiness or Organization type"))
	default:
		items = append(items, c.item("LocalBusiness Schema", 2, StatusFail,
			"No LocalBusiness structured data found"))
	}

	hasPhone := phoneRe.MatchString(f.BodyText)
	hasAddress := containsAny(lowerBody, addressHints)
	switch {
	case hasPhone && hasAddress:
		items = append(items, c.item("Contact Information", 1, StatusPass,
			"Phone number and street address appear on the page"))
	case hasPhone || hasAddress:
		items = append(items, c.item("Contact Information", 1, StatusWarning,
			"Only partial contact details found; list name, address, and phone consistently"))
	default:
		items = append(items, c.item("Contact Information", 1, StatusFail,
			"No phone number or address found on the page"))
	}

	if c.hasKeyword() {
		match := AnalyzeKeywordInText(f.BodyText, c.keyword)
		switch {
		case match.HasExactMatch:
			items = append(items, c.item("Local Keyword Usage", 1, StatusPass,
				"The target keyword appears in the page copy"))
		case match.HasPartialMatch:
			items = append(items, c.item("Local Keyword Usage", 1, StatusWarning,
				"Only variations of the target keyword appear in the copy"))
		default:
			items = append(items, c.item("Local Keyword Usage", 1, StatusFail,
				"The target keyword is absent from the page copy"))
		}
	}

	// Profile status lives on Google's side; a maps link is the only
	// on-page trace of it.
	if countLinksMatching(f.Links.External.URLs,
		[]string{"google.com/maps", "maps.app.goo.gl", "g.page"}, nil) > 0 {
		items = append(items, c.item("Google Business Profile", 1, StatusPass,
			"Page links to a Google Maps business listing"))
	} else {
		items = append(items, c.item("Google Business Profile", 1, StatusWarning,
			"No Google Business Profile link detected on the page"))
	}

	hasReviewSchema := hasSchemaType(f, "Review") || hasSchemaType(f, "AggregateRating")
	hasReviewCopy := strings.Contains(lowerBody, "review") || strings.Contains(lowerBody, "testimonial")
	if hasReviewSchema || hasReviewCopy {
		items = append(items, c.item("Reviews & Testimonials", 1, StatusPass,
			"Reviews or testimonials are surfaced on the page"))
	} else {
		items = append(items, c.item("Reviews & Testimonials", 1, StatusWarning,
			"No reviews or testimonials found on the page"))
	}

	return items
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func securityChecks(c *checkContext) []CheckItem {
	f := c.facts
	perf := f.Performance
	var items []CheckItem

	items = append(items, c.item("HTTPS Implementation", 2, passFail(f.IsHTTPS),
		httpsMessage(f.IsHTTPS)))

	switch {
	case !f.IsHTTPS:
		items = append(items, c.item("Mixed Content", 1, StatusFail,
			"Mixed content cannot be avoided until the page itself moves to HTTPS"))
	case f.MixedContent:
		items = append(items, c.item("Mixed Content", 1, StatusFail,
			"HTTPS page loads resources over plain HTTP"))
	default:
		items = append(items, c.item("Mixed Content", 1, StatusPass,
			"No mixed-content resources detected"))
	}

	switch {
	case perf.MinifiedCSS && perf.MinifiedJS:
		items = append(items, c.item("Asset Minification", 1, StatusPass,
			"Both CSS and JavaScript reference minified builds"))
	case perf.MinifiedCSS || perf.MinifiedJS:
		items = append(items, c.item("Asset Minification", 1, StatusWarning,
			"Only some assets reference minified builds"))
	default:
		items = append(items, c.item("Asset Minification", 1, StatusFail,
			"No minified CSS or JavaScript detected"))
	}

	items = append(items, c.item("Text Compression", 1, passWarn(perf.CompressionEnabled),
		compressionMessage(perf.CompressionEnabled)))

	items = append(items, c.item("Browser Caching", 1, passWarn(perf.CacheHeaders),
		cachingMessage(perf.CacheHeaders)))

	switch {
	case f.Images.Total == 0:
		items = append(items, c.item("Next-Gen Image Formats", 1, StatusPass,
			"No images on the page"))
	case f.Images.OptimizedFormats > 0:
		items = append(items, c.item("Next-Gen Image Formats", 1, StatusPass,
			fmt.Sprintf("%d of %d images use next-gen formats",
				f.Images.OptimizedFormats, f.Images.Total)))
	default:
		items = append(items, c.item("Next-Gen Image Formats", 1, StatusWarning,
			"Images are not served in WebP or AVIF"))
	}

	// Real Core Web Vitals need a browser run; static delivery signals
	// approximate the page's readiness.
	vitals := 0
	for _, ok := range []bool{
		perf.AsyncDeferScripts,
		perf.ResourceHints,
		f.Images.LazyLoaded > 0 || f.Images.Total == 0,
		perf.MinifiedCSS || perf.MinifiedJS,
	} {
		if ok {
			vitals++
		}
	}
	switch {
	case vitals >= 3:
		items = append(items, c.item("Core Web Vitals Signals", 1, StatusPass,
			fmt.Sprintf("%d of 4 static vitals signals present", vitals)))
	case vitals >= 1:
		items = append(items, c.item("Core Web Vitals Signals", 1, StatusWarning,
			fmt.Sprintf("Only %d of 4 static vitals signals present", vitals)))
	default:
		items = append(items, c.item("Core Web Vitals Signals", 1, StatusFail,
			"No static Core Web Vitals signals detected"))
	}

	return items
}

func compressionMessage(ok bool) string {
	if ok {
		return "Response is served with text compression"
	}
	return "No Content-Encoding header observed on the response"
}

func cachingMessage(ok bool) string {
	if ok {
		return "Response carries caching headers"
	}
	return "No Cache-Control or Expires header observed"
}
