package checklist

import (
	"strings"
)

// ReleaseType selects the checklist template
type ReleaseType string

const (
	ReleaseTypeAPI ReleaseType = "API"
	ReleaseTypeWeb ReleaseType = "Web"
)

// Column is a fixed table column
type Column struct {
	Title string
	Width int
}

// Columns of the checklist table. Widths are in pixels.
var Columns = []Column{
	{Title: "Step", Width: 70},
	{Title: "Task", Width: 380},
	{Title: "QA1", Width: 90},
	{Title: "QA2", Width: 90},
	{Title: "Dev", Width: 90},
}

const headerBackground = "#deebff"

// ReleaseTypeOf classifies a release by name: anything mentioning "api"
// (case-insensitive) is an API release
func ReleaseTypeOf(releaseName string) ReleaseType {
	if strings.Contains(strings.ToLower(releaseName), "api") {
		return ReleaseTypeAPI
	}
	return ReleaseTypeWeb
}

// Document is a release sign-off checklist
type Document struct {
	ReleaseName string
	ReleaseType ReleaseType
	Steps       []Step
	Tickets     []string
}

// New builds the checklist for a release
func New(releaseName string, tickets ...string) *Document {
	releaseType := ReleaseTypeOf(releaseName)
	src := webSteps
	if releaseType == ReleaseTypeAPI {
		src = apiSteps
	}

	steps := make([]Step, len(src))
	copy(steps, src)

	return &Document{
		ReleaseName: releaseName,
		ReleaseType: releaseType,
		Steps:       steps,
		Tickets:     tickets,
	}
}

// Title is the page title of the document
func (d *Document) Title() string {
	name := strings.TrimSpace(d.ReleaseName)
	if name == "" {
		return "Release Checklist"
	}
	return name + " - Release Checklist"
}

// CheckboxCount returns the number of actionable cells
func (d *Document) CheckboxCount() int {
	n := 0
	for _, s := range d.Steps {
		for _, cell := range s.Cells() {
			if cell == Checkbox {
				n++
			}
		}
	}
	return n
}

// idSequence hands out checkbox identifiers in table order
type idSequence struct {
	next int
}

func (s *idSequence) take() int {
	s.next++
	return s.next
}
