package analyzer

import (
	"fmt"
	"strings"
)

func imageChecks(c *checkContext) []CheckItem {
	img := c.facts.Images
	var items []CheckItem

	switch {
	case img.Total == 0:
		items = append(items, c.item("Image Alt Text", 2, StatusPass,
			"No images on the page"))
	case img.WithAlt == img.Total:
		items = append(items, c.item("Image Alt Text", 2, StatusPass,
			fmt.Sprintf("All %d images have alt text", img.Total)))
	case img.WithAlt*2 >= img.Total:
		items = append(items, c.item("Image Alt Text", 2, StatusWarning,
			fmt.Sprintf("%d of %d images have alt text", img.WithAlt, img.Total)))
	default:
		items = append(items, c.item("Image Alt Text", 2, StatusFail,
			fmt.Sprintf("Only %d of %d images have alt text", img.WithAlt, img.Total)))
	}

	switch {
	case img.Total == 0:
		items = append(items, c.item("Image Dimensions", 1, StatusPass,
			"No images on the page"))
	case img.WithDimensions == img.Total:
		items = append(items, c.item("Image Dimensions", 1, StatusPass,
			"All images declare width and height"))
	case img.WithDimensions > 0:
		items = append(items, c.item("Image Dimensions", 1, StatusWarning,
			fmt.Sprintf("%d of %d images declare dimensions; missing ones cause layout shift",
				img.WithDimensions, img.Total)))
	default:
		items = append(items, c.item("Image Dimensions", 1, StatusFail,
			"No images declare width and height attributes"))
	}

	switch {
	case img.Total <= 2:
		items = append(items, c.item("Lazy Loading", 1, StatusPass,
			"Few enough images that lazy loading is optional"))
	case img.LazyLoaded*2 >= img.Total:
		items = append(items, c.item("Lazy Loading", 1, StatusPass,
			fmt.Sprintf("%d of %d images load lazily", img.LazyLoaded, img.Total)))
	case img.LazyLoaded > 0:
		items = append(items, c.item("Lazy Loading", 1, StatusWarning,
			fmt.Sprintf("Only %d of %d images load lazily", img.LazyLoaded, img.Total)))
	default:
		items = append(items, c.item("Lazy Loading", 1, StatusFail,
			"No images use loading=\"lazy\""))
	}

	switch {
	case img.Total == 0:
		items = append(items, c.item("Modern Image Formats", 1, StatusPass,
			"No images on the page"))
	case img.OptimizedFormats > 0:
		items = append(items, c.item("Modern Image Formats", 1, StatusPass,
			fmt.Sprintf("%d images are served as WebP or AVIF", img.OptimizedFormats)))
	default:
		items = append(items, c.item("Modern Image Formats", 1, StatusWarning,
			"No WebP or AVIF images detected"))
	}

	// File sizes are invisible to a static fetch; modern formats or
	// lazy loading stand in as the compression signal.
	switch {
	case img.Total == 0:
		items = append(items, c.item("Image Compression", 1, StatusPass,
			"No images on the page"))
	case img.OptimizedFormats > 0 || img.LazyLoaded > 0:
		items = append(items, c.item("Image Compression", 1, StatusPass,
			"Image delivery shows optimization signals"))
	default:
		items = append(items, c.item("Image Compression", 1, StatusWarning,
			"No image optimization signals; verify file sizes and compression"))
	}

	return items
}

func mobileChecks(c *checkContext) []CheckItem {
	m := c.facts.Mobile
	perf := c.facts.Performance
	var items []CheckItem

	items = append(items, c.item("Viewport Meta Tag", 2, passFail(m.Viewport),
		viewportMessage(m.Viewport)))

	items = append(items, c.item("Responsive Styles", 1, passWarn(m.ResponsiveMediaQueries),
		responsiveMessage(m.ResponsiveMediaQueries)))

	items = append(items, c.item("Touch Icons", 1, passWarn(m.TouchIcons),
		touchIconMessage(m.TouchIcons)))

	// Font legibility needs a CSS render; a responsive stylesheet under
	// a proper viewport is the static stand-in.
	switch {
	case m.Viewport && m.ResponsiveMediaQueries:
		items = append(items, c.item("Legible Font Sizes", 1, StatusPass,
			"Viewport and responsive styles suggest mobile-legible text"))
	case m.Viewport:
		items = append(items, c.item("Legible Font Sizes", 1, StatusWarning,
			"Viewport is set but no responsive styles were found; verify 16px+ body text"))
	default:
		items = append(items, c.item("Legible Font Sizes", 1, StatusFail,
			"Without a viewport tag, mobile browsers scale text down"))
	}

	switch {
	case m.Viewport && perf.AsyncDeferScripts:
		items = append(items, c.item("Mobile Page Speed", 1, StatusPass,
			"Viewport plus non-blocking scripts are good mobile speed signals"))
	case m.Viewport:
		items = append(items, c.item("Mobile Page Speed", 1, StatusWarning,
			"Scripts load synchronously; mobile connections feel this most"))
	default:
		items = append(items, c.item("Mobile Page Speed", 1, StatusFail,
			"No mobile speed signals detected"))
	}

	return items
}

func viewportMessage(ok bool) string {
	if ok {
		return "Viewport meta tag is configured with width=device-width"
	}
	return "Missing or misconfigured viewport meta tag"
}

func responsiveMessage(ok bool) string {
	if ok {
		return "Responsive media queries detected"
	}
	return "No responsive media queries found in page styles"
}

func touchIconMessage(ok bool) string {
	if ok {
		return "Apple touch icon is declared"
	}
	return "No touch icon declared for home-screen bookmarks"
}

var socialProfileHosts = []string{
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"tiktok.com",
	"pinterest.com",
}

var shareEndpoints = []string{
	"facebook.com/sharer",
	"twitter.com/intent",
	"x.com/intent",
	"linkedin.com/share",
	"pinterest.com/pin/create",
}

func socialChecks(c *checkContext) []CheckItem {
	f := c.facts
	var items []CheckItem

	items = append(items, c.item("Open Graph Markup", 2, passFail(f.Social.OpenGraph.Present),
		openGraphMarkupMessage(f)))

	if _, ok := f.MetaTags["og:image"]; ok {
		items = append(items, c.item("Open Graph Image", 1, StatusPass,
			"og:image is set for link previews"))
	} else {
		items = append(items, c.item("Open Graph Image", 1, StatusWarning,
			"No og:image; shared links fall back to an arbitrary image"))
	}

	if f.Social.TwitterCards.Present {
		items = append(items, c.item("Twitter Card Markup", 1, StatusPass,
			fmt.Sprintf("Found %d Twitter Card tags", len(f.Social.TwitterCards.Tags))))
	} else {
		items = append(items, c.item("Twitter Card Markup", 1, StatusWarning,
			"No Twitter Card tags found"))
	}

	profiles := countLinksMatching(f.Links.External.URLs, socialProfileHosts, shareEndpoints)
	if profiles > 0 {
		items = append(items, c.item("Social Profile Links", 1, StatusPass,
			fmt.Sprintf("Page links to %d social profiles", profiles)))
	} else {
		items = append(items, c.item("Social Profile Links", 1, StatusWarning,
			"No links to social profiles found"))
	}

	shares := countLinksMatching(f.Links.External.URLs, shareEndpoints, nil)
	if shares > 0 {
		items = append(items, c.item("Share Buttons", 1, StatusPass,
			"Share endpoints are linked from the page"))
	} else {
		items = append(items, c.item("Share Buttons", 1, StatusWarning,
			"No share buttons detected"))
	}

	return items
}

func openGraphMarkupMessage(f *PageFacts) string {
	if f.Social.OpenGraph.Present {
		return fmt.Sprintf("Open Graph markup present (%d tags)", len(f.Social.OpenGraph.Tags))
	}
	return "No Open Graph markup; Facebook and most chat apps rely on it"
}

// countLinksMatching counts urls containing any of wanted, skipping
// urls that match any of exclude first.
func countLinksMatching(urls, wanted, exclude []string) int {
	count := 0
	for _, u := range urls {
		lower := strings.ToLower(u)
		excluded := false
		for _, e := range exclude {
			if strings.Contains(lower, e) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		for _, w := range wanted {
			if strings.Contains(lower, w) {
				count++
				break
			}
		}
	}
	return count
}
