package checklist

// Cell is the content of a role column in a checklist row
type Cell int

const (
	// Empty cells need no sign-off from the role
	Empty Cell = iota
	// Checkbox cells are actionable sign-off boxes
	Checkbox
)

// Step is one row of the release checklist
type Step struct {
	Number string
	Task   string
	QA1    Cell
	QA2    Cell
	Dev    Cell
}

// Cells returns the role cells in column order
func (s Step) Cells() []Cell {
	return []Cell{s.QA1, s.QA2, s.Dev}
}

const (
	c = Checkbox
	e = Empty
)

func step(number, task string, qa1, qa2, dev Cell) Step {
	return Step{Number: number, Task: task, QA1: qa1, QA2: qa2, Dev: dev}
}

// apiSteps is the sign-off sequence for backend/API releases
var apiSteps = []Step{
	step("1", "Confirm release scope and ticket list in Jira", c, e, c),
	step("2", "Verify every ticket in the fix version is Ready for Release", c, c, e),
	step("3", "Review merged pull requests against the release branch", e, e, c),
	step("4", "Review database migration scripts", e, e, c),
	step("5", "Document configuration and environment variable changes", e, e, c),
	step("6", "Deploy release build to staging", e, e, c),
	step("7", "Run smoke test on staging", c, c, e),
	step("8", "Run API regression suite on staging", c, c, e),
	step("9", "Verify API documentation (OpenAPI/Swagger) is updated", c, e, c),
	step("10", "Verify backward compatibility of changed endpoints", c, c, c),
	step("11", "Verify authentication and authorization on new endpoints", c, c, e),
	step("12", "Check response times of critical endpoints", c, e, c),
	step("13", "Verify logging, monitoring and alert rules", e, e, c),
	step("14", "Sign off staging test results", c, c, c),
	step("15", "Create release tag", e, e, c),
	step("16", "Back up production database", e, e, c),
	step("17", "Deploy release to production", e, e, c),
	step("18", "Run database migrations on production", e, e, c),
	step("19", "Run smoke test on production", c, c, e),
	step("20", "Verify API health checks on production", c, e, c),
	step("21", "Monitor error rate for 30 minutes after release", c, e, c),
	step("22", "Mark fix version as released in Jira", c, e, e),
	step("23", "Announce release on Slack", c, e, e),
	step("24", "Close release tickets", c, c, e),
}

// webSteps is the sign-off sequence for frontend/Web releases
var webSteps = []Step{
	step("1", "Confirm release scope and ticket list in Jira", c, e, c),
	step("2", "Verify every ticket in the fix version is Ready for Release", c, c, e),
	step("3", "Review merged pull requests against the release branch", e, e, c),
	step("4", "Document configuration and feature flag changes", e, e, c),
	step("5", "Build production bundle", e, e, c),
	step("6", "Deploy release build to staging", e, e, c),
	step("7", "Run smoke test on staging", c, c, e),
	step("8", "Run UI regression suite on staging", c, c, e),
	step("9", "Verify responsive layout on mobile and tablet", c, c, e),
	step("10", "Verify translations and copy", c, c, e),
	step("11", "Verify analytics and tracking events", c, e, c),
	step("12", "Check page load performance", c, e, c),
	step("13", "Verify error tracking and monitoring", e, e, c),
	step("14", "Sign off staging test results", c, c, c),
	step("15.1", "Cross-browser check: Chrome, Edge, Firefox", c, c, e),
	step("15.2", "Cross-browser check: Safari and iOS/Android browsers", c, c, e),
	step("16", "Deploy release to production", e, e, c),
	step("17", "Purge CDN cache", e, e, c),
	step("18", "Run smoke test on production", c, c, e),
	step("19", "Monitor error rate for 30 minutes after release", c, e, c),
	step("20", "Mark fix version as released in Jira", c, e, e),
	step("21", "Announce release on Slack", c, e, e),
	step("22", "Close release tickets", c, c, e),
}
