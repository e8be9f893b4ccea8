package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
	"golang.org/x/time/rate"
)

// CreateTicket creates one Jira ticket. When the ticket has no title its
// free text is parsed first.
func (uc *jiraUseCase) CreateTicket(ctx context.Context, cred model.Credential, projectKey string, ticket *model.TicketInput) (*model.CreatedTicket, error) {
	key, err := requireProjectKey(projectKey)
	if err != nil {
		return nil, err
	}

	input := prepareTicket(ticket)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	client, err := uc.client(cred)
	if err != nil {
		return nil, err
	}

	return uc.submitTicket(ctx, client, key, input)
}

// CreateTickets creates tickets sequentially, waiting the bulk delay
// between upstream calls. A failing ticket is recorded in the results and
// does not stop the batch.
func (uc *jiraUseCase) CreateTickets(ctx context.Context, cred model.Credential, projectKey string, tickets []*model.TicketInput) (*model.BulkResult, error) {
	key, err := requireProjectKey(projectKey)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "at least one ticket is required")
	}

	client, err := uc.client(cred)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx).With("project", key)
	limiter := rate.NewLimiter(rate.Every(uc.bulkDelay), 1)

	result := &model.BulkResult{
		Results: make([]*model.BulkItemResult, 0, len(tickets)),
		Summary: model.BulkSummary{Total: len(tickets)},
	}

	for i, ticket := range tickets {
		item := &model.BulkItemResult{Index: i}
		result.Results = append(result.Results, item)

		input := prepareTicket(ticket)
		item.Title = input.Title

		if err := input.Validate(); err != nil {
			item.Error = err.Error()
			result.Summary.Failed++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			item.Error = "cancelled: " + err.Error()
			result.Summary.Failed++
			continue
		}

		created, err := uc.submitTicket(ctx, client, key, input)
		if err != nil {
			logger.Warn("bulk ticket creation failed", "index", i, "title", input.Title, "error", err)
			item.Error = describeError(err)
			result.Summary.Failed++
			continue
		}

		item.Success = true
		item.Key = created.Key
		item.URL = created.URL
		result.Summary.Created++
	}

	logger.Info("bulk ticket creation finished",
		"total", result.Summary.Total,
		"created", result.Summary.Created,
		"failed", result.Summary.Failed,
	)
	return result, nil
}

// describeError prefers the upstream message over the wrapping chain
func describeError(err error) string {
	var upstream *model.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Error()
	}
	return err.Error()
}

func (uc *jiraUseCase) submitTicket(ctx context.Context, client interfaces.JiraClient, projectKey string, input *model.TicketInput) (*model.CreatedTicket, error) {
	logger := logging.From(ctx)

	created, err := client.CreateIssue(ctx, buildIssueFields(projectKey, input))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create ticket",
			goerr.V("project", projectKey), goerr.V("title", input.Title))
	}

	if input.SprintID > 0 {
		if err := client.MoveToSprint(ctx, input.SprintID, created.Key); err != nil {
			logger.Warn("failed to move ticket into sprint",
				"key", created.Key,
				"sprint_id", input.SprintID,
				"error", err,
			)
			created.Warnings = append(created.Warnings,
				fmt.Sprintf("ticket created but could not be added to sprint %d", input.SprintID))
		}
	}

	logger.Info("ticket created", "key", created.Key, "project", projectKey)
	return created, nil
}

// prepareTicket fills an untitled ticket from its free text. Explicit
// fields win over parsed ones. The argument is never modified.
func prepareTicket(ticket *model.TicketInput) *model.TicketInput {
	if ticket == nil {
		return &model.TicketInput{}
	}

	input := *ticket
	if strings.TrimSpace(input.Title) != "" || strings.TrimSpace(input.Text) == "" {
		input.Title = strings.TrimSpace(input.Title)
		return &input
	}

	parsed := ParseTicketText(input.Text)
	input.Title = parsed.Title
	if input.Description == "" {
		input.Description = parsed.Description
	}
	if len(input.Steps) == 0 {
		input.Steps = parsed.Steps
	}
	if input.Expected == "" {
		input.Expected = parsed.Expected
	}
	if input.Actual == "" {
		input.Actual = parsed.Actual
	}
	if input.Environment == "" {
		input.Environment = parsed.Environment
	}
	if input.IssueType == "" {
		input.IssueType = parsed.IssueType
	}
	if input.Priority == "" {
		input.Priority = parsed.Priority
	}
	if len(input.Labels) == 0 {
		input.Labels = parsed.Labels
	}
	return &input
}

// buildIssueFields maps a ticket to Jira REST v3 create fields
func buildIssueFields(projectKey string, t *model.TicketInput) map[string]any {
	fields := map[string]any{
		"project":   map[string]any{"key": projectKey},
		"summary":   t.Title,
		"issuetype": map[string]any{"name": t.IssueTypeOrDefault()},
	}

	if desc := buildDescription(t); desc != nil {
		fields["description"] = desc
	}
	if p := strings.TrimSpace(t.Priority); p != "" {
		fields["priority"] = map[string]any{"name": p}
	}
	if len(t.Labels) > 0 {
		labels := make([]string, 0, len(t.Labels))
		for _, l := range t.Labels {
			// Jira rejects labels containing spaces
			if l = strings.Join(strings.Fields(l), "-"); l != "" {
				labels = append(labels, l)
			}
		}
		if len(labels) > 0 {
			fields["labels"] = labels
		}
	}
	if epic := strings.TrimSpace(t.EpicKey); epic != "" {
		fields["parent"] = map[string]any{"key": epic}
	}
	if v := strings.TrimSpace(t.FixVersion); v != "" && !model.IsPlaceholderVersion(v) {
		fields["fixVersions"] = []map[string]any{{"name": v}}
	}
	if a := strings.TrimSpace(t.AssigneeID); a != "" {
		fields["assignee"] = map[string]any{"accountId": a}
	}
	return fields
}

// buildDescription renders the report sections as an ADF document, or nil
// when the ticket has nothing beyond its title
func buildDescription(t *model.TicketInput) *model.ADFNode {
	var content []*model.ADFNode

	for _, line := range strings.Split(t.Description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			content = append(content, model.ADFParagraph(line))
		}
	}

	if len(t.Steps) > 0 {
		content = append(content,
			model.ADFHeading(3, "Steps to Reproduce"),
			model.ADFOrderedList(t.Steps),
		)
	}
	if s := strings.TrimSpace(t.Expected); s != "" {
		content = append(content, model.ADFHeading(3, "Expected Result"), model.ADFParagraph(s))
	}
	if s := strings.TrimSpace(t.Actual); s != "" {
		content = append(content, model.ADFHeading(3, "Actual Result"), model.ADFParagraph(s))
	}
	if s := strings.TrimSpace(t.Environment); s != "" {
		content = append(content, model.ADFHeading(3, "Environment"), model.ADFParagraph(s))
	}
	if len(t.Attachments) > 0 {
		content = append(content, model.ADFHeading(3, "Attachments"))
		for _, url := range t.Attachments {
			content = append(content, model.ADFLink(url, url))
		}
	}

	if len(content) == 0 {
		return nil
	}
	return model.ADFDoc(content...)
}
