package analyzer

// checkContext carries the inputs every category generator sees. The
// generators are pure: same facts, keyword, and URL always produce the
// same items.
type checkContext struct {
	facts   *PageFacts
	keyword string
	pageURL string
}

// hasKeyword gates keyword-placement checks: they are omitted outright
// when no keyword was supplied, and also when the page was never
// fetched, since there is nothing to place the keyword against.
func (c *checkContext) hasKeyword() bool {
	return c.keyword != "" && c.facts.ContentFetched
}

// item builds a CheckItem, downgrading to an informational entry when
// the page content was never fetched. That keeps "could not check"
// distinct from "checked and failed" across every category.
func (c *checkContext) item(name string, points float64, status Status, message string) CheckItem {
	if !c.facts.ContentFetched {
		return CheckItem{
			Name:    name,
			Status:  StatusInfo,
			Message: "Page content could not be fetched, so this check was not evaluated",
			Points:  points,
		}
	}
	return CheckItem{Name: name, Status: status, Message: message, Points: points}
}

// info builds an item that is informational regardless of fetch state,
// for checks whose signal is not observable from a single static fetch.
func (c *checkContext) info(name string, points float64, message string) CheckItem {
	if !c.facts.ContentFetched {
		return c.item(name, points, StatusInfo, "")
	}
	return CheckItem{Name: name, Status: StatusInfo, Message: message, Points: points}
}

type categoryGenerator struct {
	title    string
	generate func(c *checkContext) []CheckItem
}

// categoryGenerators returns the ten categories in presentation order.
func categoryGenerators() []categoryGenerator {
	return []categoryGenerator{
		{"Title & Meta Tags", titleMetaChecks},
		{"Headings & Content Structure", headingChecks},
		{"URL Optimization", urlChecks},
		{"Image Optimization", imageChecks},
		{"Technical SEO", technicalChecks},
		{"Content Optimization", contentChecks},
		{"Mobile Optimization", mobileChecks},
		{"Local SEO", localChecks},
		{"Social Media", socialChecks},
		{"Security & Performance", securityChecks},
	}
}

// BuildCategories evaluates every category against the given facts.
// A missing keyword omits keyword-placement checks entirely rather
// than reporting them as informational.
func BuildCategories(facts *PageFacts, keyword, pageURL string) []Category {
	ctx := &checkContext{facts: facts, keyword: keyword, pageURL: pageURL}
	generators := categoryGenerators()
	categories := make([]Category, 0, len(generators))
	for _, g := range generators {
		cat := Category{Title: g.title, Items: g.generate(ctx)}
		cat.Score = CategoryScore(cat)
		categories = append(categories, cat)
	}
	return categories
}

func passFail(ok bool) Status {
	if ok {
		return StatusPass
	}
	return StatusFail
}

func passWarn(ok bool) Status {
	if ok {
		return StatusPass
	}
	return StatusWarning
}
