package analyzer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abadojack/whatlanggo"
)

var modernImageExts = []string{".webp", ".avif"}

var resourceHintRels = map[string]bool{
	"preload":      true,
	"prefetch":     true,
	"preconnect":   true,
	"dns-prefetch": true,
}

// ExtractPageFacts parses fetched HTML into the immutable PageFacts
// snapshot the check generators consume. Malformed or partial markup
// degrades to empty/false fields, never an error; goquery's html5
// parser tolerates missing closing tags and any attribute order.
func ExtractPageFacts(rawHTML, pageURL string, headers http.Header) *PageFacts {
	facts := DegradedFacts()
	facts.ContentFetched = true

	var pageHost string
	if u, err := url.Parse(pageURL); err == nil {
		pageHost = stripWWW(u.Hostname())
		facts.IsHTTPS = strings.EqualFold(u.Scheme, "https")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return facts
	}

	facts.Title = strings.TrimSpace(doc.Find("title").First().Text())
	facts.HasTitle = facts.Title != ""

	// Meta tag map: lower-cased keys, last occurrence wins.
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			name, _ = s.Attr("property")
		}
		if name == "" {
			return
		}
		content, _ := s.Attr("content")
		facts.MetaTags[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(content)
	})
	facts.MetaDescription = facts.MetaTags["description"]

	extractHeadings(doc, facts)
	extractImages(doc, facts)
	extractLinks(doc, facts, pageHost)
	extractSchema(doc, facts)
	extractSocial(facts)

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		facts.Canonical = CanonicalFacts{Present: true, URL: strings.TrimSpace(href)}
	}

	if robots, ok := facts.MetaTags["robots"]; ok {
		facts.RobotsMeta = RobotsFacts{Present: true, Content: robots}
	}

	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		lang, _ := s.Attr("hreflang")
		href, _ := s.Attr("href")
		facts.Hreflang = append(facts.Hreflang, HreflangEntry{Language: lang, URL: href})
	})

	extractBodyText(doc, rawHTML, facts)
	extractLanguage(doc, facts)
	extractMobile(doc, facts)
	extractPerformance(doc, facts, headers)
	detectMixedContent(doc, facts)

	return facts
}

func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

func extractHeadings(doc *goquery.Document, facts *PageFacts) {
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		tag := goquery.NodeName(s)
		facts.Headings[tag] = append(facts.Headings[tag], text)
		facts.HeadingLevels = append(facts.HeadingLevels, int(tag[1]-'0'))
	})
}

func hasModernImageRef(ref string) bool {
	ref = strings.ToLower(ref)
	for _, ext := range modernImageExts {
		if strings.Contains(ref, ext) {
			return true
		}
	}
	return false
}

func extractImages(doc *goquery.Document, facts *PageFacts) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		facts.Images.Total++
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			facts.Images.WithAlt++
		}
		if _, hasW := s.Attr("width"); hasW {
			if _, hasH := s.Attr("height"); hasH {
				facts.Images.WithDimensions++
			}
		}
		if loading, _ := s.Attr("loading"); strings.EqualFold(strings.TrimSpace(loading), "lazy") {
			facts.Images.LazyLoaded++
		}
		src, _ := s.Attr("src")
		srcset, _ := s.Attr("srcset")
		if hasModernImageRef(src) || hasModernImageRef(srcset) {
			facts.Images.OptimizedFormats++
		}
	})
	// <picture> sources count toward modern formats even when the img
	// fallback is a jpeg.
	doc.Find("picture source[srcset]").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		srcset, _ := s.Attr("srcset")
		if (strings.Contains(typ, "webp") || strings.Contains(typ, "avif") || hasModernImageRef(srcset)) &&
			facts.Images.OptimizedFormats < facts.Images.Total {
			facts.Images.OptimizedFormats++
		}
	})
}

// extractLinks classifies hrefs: fragment and rooted paths are
// internal, absolute http(s) URLs are split on the page host
// (www and scheme agnostic), javascript:/mailto:/tel: and bare #
// are skipped. Duplicates count once.
func extractLinks(doc *goquery.Document, facts *PageFacts, pageHost string) {
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || href == "#" {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true

		if strings.HasPrefix(href, "//") {
			href = "https:" + href
			lower = "https:" + lower
		}
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			linkHost := ""
			if u, err := url.Parse(href); err == nil {
				linkHost = stripWWW(u.Hostname())
			}
			if pageHost != "" && linkHost == pageHost {
				addLink(&facts.Links.Internal, href)
			} else {
				addLink(&facts.Links.External, href)
			}
			return
		}
		// Fragments, rooted paths, and bare relative paths all resolve
		// within the page's own domain.
		addLink(&facts.Links.Internal, href)
	})
}

func addLink(group *LinkGroup, href string) {
	group.Count++
	group.URLs = append(group.URLs, href)
}

func extractSchema(doc *goquery.Document, facts *PageFacts) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		facts.HasSchemaMarkup = true
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err == nil {
			collectSchemaTypes(payload, facts)
		}
	})
	if doc.Find("[itemscope]").Length() > 0 {
		facts.HasSchemaMarkup = true
	}
}

// collectSchemaTypes walks arbitrarily nested JSON-LD for @type values.
func collectSchemaTypes(node interface{}, facts *PageFacts) {
	switch v := node.(type) {
	case map[string]interface{}:
		if t, ok := v["@type"]; ok {
			switch typed := t.(type) {
			case string:
				facts.SchemaTypes = append(facts.SchemaTypes, typed)
			case []interface{}:
				for _, item := range typed {
					if s, ok := item.(string); ok {
						facts.SchemaTypes = append(facts.SchemaTypes, s)
					}
				}
			}
		}
		for _, child := range v {
			collectSchemaTypes(child, facts)
		}
	case []interface{}:
		for _, child := range v {
			collectSchemaTypes(child, facts)
		}
	}
}

func extractSocial(facts *PageFacts) {
	for name := range facts.MetaTags {
		if strings.HasPrefix(name, "og:") {
			facts.Social.OpenGraph.Tags = append(facts.Social.OpenGraph.Tags, name)
		}
		if strings.HasPrefix(name, "twitter:") {
			facts.Social.TwitterCards.Tags = append(facts.Social.TwitterCards.Tags, name)
		}
	}
	sort.Strings(facts.Social.OpenGraph.Tags)
	sort.Strings(facts.Social.TwitterCards.Tags)
	facts.Social.OpenGraph.Present = len(facts.Social.OpenGraph.Tags) > 0
	facts.Social.TwitterCards.Present = len(facts.Social.TwitterCards.Tags) > 0
}

func extractBodyText(doc *goquery.Document, rawHTML string, facts *PageFacts) {
	body := doc.Find("body").First()
	if body.Length() > 0 {
		clone := body.Clone()
		clone.Find("script, style, noscript").Remove()
		facts.BodyText = strings.Join(strings.Fields(clone.Text()), " ")
	} else {
		facts.BodyText = visibleText(rawHTML)
	}
	facts.WordCount = len(strings.Fields(facts.BodyText))
}

func extractLanguage(doc *goquery.Document, facts *PageFacts) {
	if lang, ok := doc.Find("html").Attr("lang"); ok && strings.TrimSpace(lang) != "" {
		facts.Language = strings.TrimSpace(lang)
		return
	}
	// No declared language: detect from the first chunk of body text.
	words := strings.Fields(facts.BodyText)
	if len(words) < 20 {
		return
	}
	if len(words) > 100 {
		words = words[:100]
	}
	info := whatlanggo.Detect(strings.Join(words, " "))
	if info.IsReliable() {
		facts.Language = info.Lang.Iso6391()
	}
}

func extractMobile(doc *goquery.Document, facts *PageFacts) {
	if viewport, ok := facts.MetaTags["viewport"]; ok {
		facts.Mobile.Viewport = strings.Contains(strings.ToLower(viewport), "width=device-width")
	}

	doc.Find("style").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), "@media") {
			facts.Mobile.ResponsiveMediaQueries = true
			return false
		}
		return true
	})
	if !facts.Mobile.ResponsiveMediaQueries {
		doc.Find(`link[rel="stylesheet"][media]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.Contains(s.AttrOr("media", ""), "(") {
				facts.Mobile.ResponsiveMediaQueries = true
				return false
			}
			return true
		})
	}

	facts.Mobile.TouchIcons = doc.Find(`link[rel*="apple-touch-icon"]`).Length() > 0
}

func extractPerformance(doc *goquery.Document, facts *PageFacts, headers http.Header) {
	doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if resourceHintRels[strings.ToLower(s.AttrOr("rel", ""))] {
			facts.Performance.ResourceHints = true
			return false
		}
		return true
	})

	facts.Performance.AsyncDeferScripts = doc.Find("script[async], script[defer]").Length() > 0

	doc.Find(`link[rel="stylesheet"][href]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.AttrOr("href", "")), ".min.css") {
			facts.Performance.MinifiedCSS = true
			return false
		}
		return true
	})
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.AttrOr("src", "")), ".min.js") {
			facts.Performance.MinifiedJS = true
			return false
		}
		return true
	})

	if headers != nil {
		switch strings.ToLower(headers.Get("Content-Encoding")) {
		case "gzip", "br", "zstd", "deflate":
			facts.Performance.CompressionEnabled = true
		}
		if headers.Get("Cache-Control") != "" || headers.Get("Expires") != "" {
			facts.Performance.CacheHeaders = true
		}
	}
}

func detectMixedContent(doc *goquery.Document, facts *PageFacts) {
	if !facts.IsHTTPS {
		return
	}
	for _, sel := range []string{"img[src]", "script[src]", "iframe[src]"} {
		attr := "src"
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.HasPrefix(strings.ToLower(s.AttrOr(attr, "")), "http://") {
				facts.MixedContent = true
				return false
			}
			return true
		})
		if facts.MixedContent {
			return
		}
	}
	doc.Find(`link[rel="stylesheet"][href]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.HasPrefix(strings.ToLower(s.AttrOr("href", "")), "http://") {
			facts.MixedContent = true
			return false
		}
		return true
	})
}

// headingCount is a small convenience used by several checks.
func (f *PageFacts) headingCount(level int) int {
	return len(f.Headings[fmt.Sprintf("h%d", level)])
}
