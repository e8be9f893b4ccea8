package model

import (
	"strings"
)

// PlaceholderVersionName is the synthetic fix version offered when the
// release a ticket ships in is not decided yet
const PlaceholderVersionName = "To be confirmed"

// AssigneeLimit caps the number of assignable users collected per project
const AssigneeLimit = 1000

// Project is a Jira project with its issue types
type Project struct {
	ID         string       `json:"id"`
	Key        string       `json:"key"`
	Name       string       `json:"name"`
	Lead       string       `json:"lead,omitempty"`
	IssueTypes []*IssueType `json:"issueTypes"`
}

// IssueType is a Jira issue type
type IssueType struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Subtask        bool   `json:"subtask"`
	HierarchyLevel int    `json:"hierarchyLevel"`
}

// User is a Jira account
type User struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"emailAddress,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Active      bool   `json:"active"`
}

// Board is a Jira agile board
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Sprint is a Jira agile sprint
type Sprint struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	BoardID   int    `json:"boardId,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// IsActive reports whether the sprint is running
func (s *Sprint) IsActive() bool {
	return strings.EqualFold(s.State, "active")
}

// Version is a Jira fix version
type Version struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Released    bool   `json:"released"`
	Archived    bool   `json:"archived"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// ProjectMetadata aggregates everything the release form needs about a
// project. Warnings holds the failure message of each source that fell back
// to an empty list.
type ProjectMetadata struct {
	Sprints       []*Sprint         `json:"sprints"`
	Versions      []*Version        `json:"versions"`
	Assignees     []*User           `json:"assignees"`
	Epics         []*Issue          `json:"epics"`
	EpicMethod    string            `json:"epicMethod"`
	DefaultSprint *Sprint           `json:"defaultSprint"`
	Warnings      map[string]string `json:"warnings,omitempty"`
}

func normalizeSprintName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}

// SelectDefaultSprint picks the sprint a new ticket should land in: the
// sprint named exactly preferred, then a sprint whose name partially matches
// preferred or one of variants, then the first active sprint. Returns nil if
// none applies.
func SelectDefaultSprint(sprints []*Sprint, preferred string, variants []string) *Sprint {
	if preferred != "" {
		for _, s := range sprints {
			if s.Name == preferred {
				return s
			}
		}
	}

	candidates := make([]string, 0, len(variants)+1)
	if preferred != "" {
		candidates = append(candidates, preferred)
	}
	candidates = append(candidates, variants...)

	for _, c := range candidates {
		want := normalizeSprintName(c)
		if want == "" {
			continue
		}
		for _, s := range sprints {
			got := normalizeSprintName(s.Name)
			if got == "" {
				continue
			}
			if strings.Contains(got, want) || strings.Contains(want, got) {
				return s
			}
		}
	}

	for _, s := range sprints {
		if s.IsActive() {
			return s
		}
	}
	return nil
}

// WithPlaceholderVersion returns versions with exactly one entry named
// PlaceholderVersionName. An upstream version matching it case-insensitively
// is kept in place under the canonical name and duplicates are dropped;
// otherwise a synthetic placeholder is appended. Input versions are not
// modified.
func WithPlaceholderVersion(versions []*Version) []*Version {
	result := make([]*Version, 0, len(versions)+1)
	found := false
	for _, v := range versions {
		if v == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(v.Name), PlaceholderVersionName) {
			if found {
				continue
			}
			found = true
			if v.Name != PlaceholderVersionName {
				renamed := *v
				renamed.Name = PlaceholderVersionName
				v = &renamed
			}
		}
		result = append(result, v)
	}

	if !found {
		result = append(result, &Version{
			Name:        PlaceholderVersionName,
			Placeholder: true,
		})
	}
	return result
}

// IsPlaceholderVersion reports whether name refers to the synthetic version
func IsPlaceholderVersion(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), PlaceholderVersionName)
}
