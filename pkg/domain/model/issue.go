package model

import "strings"

// Issue is the subset of a Jira issue the service works with
type Issue struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Summary        string `json:"summary"`
	Status         string `json:"status"`
	IssueType      string `json:"issueType"`
	HierarchyLevel int    `json:"hierarchyLevel"`
	Subtask        bool   `json:"subtask"`
	SubtaskCount   int    `json:"subtaskCount"`
	ParentKey      string `json:"parentKey,omitempty"`
	Created        string `json:"created,omitempty"`
	Updated        string `json:"updated,omitempty"`
}

// EpicHierarchyLevel is the issue type hierarchy level of Epics in Jira
// Cloud. Standard issues are 0 and sub-tasks -1.
const EpicHierarchyLevel = 1

var epicLikeTypeNames = []string{"epic", "story", "feature", "initiative"}

// IsEpicType reports whether the issue type is literally an Epic
func (x *Issue) IsEpicType() bool {
	return strings.Contains(strings.ToLower(x.IssueType), "epic")
}

// IsEpicLike applies the loose heuristic used when issue types can't be
// filtered server side: an epic-ish type name, a hierarchy level at or below
// the Epic tier, or a parentless issue that owns sub-tasks.
func (x *Issue) IsEpicLike() bool {
	name := strings.ToLower(x.IssueType)
	for _, n := range epicLikeTypeNames {
		if strings.Contains(name, n) {
			return true
		}
	}
	if x.HierarchyLevel <= EpicHierarchyLevel {
		return true
	}
	return x.SubtaskCount > 0 && x.ParentKey == ""
}

// IsToDo reports whether the issue is in the "To Do" status
func (x *Issue) IsToDo() bool {
	return strings.EqualFold(strings.TrimSpace(x.Status), "To Do")
}

// MatchesTerm reports whether term is a case-insensitive substring of the
// summary or key. An empty term matches everything.
func (x *Issue) MatchesTerm(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(x.Summary), term) ||
		strings.Contains(strings.ToLower(x.Key), term)
}

// InProject reports whether the issue key belongs to projectKey
func (x *Issue) InProject(projectKey string) bool {
	return strings.HasPrefix(strings.ToUpper(x.Key), strings.ToUpper(projectKey)+"-")
}

// EpicSearchResult is the outcome of the epic fallback chain
type EpicSearchResult struct {
	Epics  []*Issue `json:"epics"`
	Total  int      `json:"total"`
	Method string   `json:"method"`
}
