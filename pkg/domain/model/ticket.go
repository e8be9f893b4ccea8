package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultIssueType is used when a ticket does not name one
const DefaultIssueType = "Bug"

// TicketInput is one bug report to be turned into a Jira ticket
type TicketInput struct {
	Text        string   `json:"text,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Actual      string   `json:"actual,omitempty"`
	Environment string   `json:"environment,omitempty"`
	IssueType   string   `json:"issueType,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	EpicKey     string   `json:"epicKey,omitempty"`
	FixVersion  string   `json:"fixVersion,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	SprintID    int      `json:"sprintId,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// Validate checks the fields required by Jira
func (t *TicketInput) Validate() error {
	if t == nil {
		return goerr.Wrap(ErrInvalidInput, "ticket is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return goerr.Wrap(ErrInvalidInput, "ticket title is required")
	}
	if len(t.Title) > 255 {
		return goerr.Wrap(ErrInvalidInput, "ticket title must be at most 255 characters",
			goerr.V("length", len(t.Title)))
	}
	return nil
}

// IssueTypeOrDefault returns the issue type name to send to Jira
func (t *TicketInput) IssueTypeOrDefault() string {
	if s := strings.TrimSpace(t.IssueType); s != "" {
		return s
	}
	return DefaultIssueType
}

// CreatedTicket is a ticket created in Jira
type CreatedTicket struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	URL      string   `json:"url"`
	Warnings []string `json:"warnings,omitempty"`
}

// BulkItemResult is the outcome of one ticket of a bulk request
type BulkItemResult struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Success bool   `json:"success"`
	Key     string `json:"key,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BulkSummary counts bulk outcomes
type BulkSummary struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// BulkResult is the outcome of a bulk creation
type BulkResult struct {
	Results []*BulkItemResult `json:"results"`
	Summary BulkSummary       `json:"summary"`
}
