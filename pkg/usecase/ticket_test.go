package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/usecase"
)

func TestCreateTicket_Fields(t *testing.T) {
	var fields map[string]any
	client := &jiraClientMock{
		CreateIssueFunc: func(ctx context.Context, f map[string]any) (*model.CreatedTicket, error) {
			fields = f
			return &model.CreatedTicket{ID: "1", Key: "QA-7", URL: "https://example.atlassian.net/browse/QA-7"}, nil
		},
	}
	uc := usecase.NewJira(jiraFactory(client))

	created, err := uc.CreateTicket(context.Background(), testCred, "QA", &model.TicketInput{
		Title:       "Checkout fails",
		Description: "Happens on mobile\n\nOnly Safari",
		Steps:       []string{"Open cart", "Tap pay"},
		Expected:    "Payment page",
		Actual:      "Blank screen",
		Priority:    "High",
		Labels:      []string{"mobile web", "checkout"},
		EpicKey:     "QA-1",
		FixVersion:  model.PlaceholderVersionName,
		AssigneeID:  "acc-1",
	})
	gt.NoError(t, err)
	gt.V(t, created.Key).Equal("QA-7")

	gt.V(t, fields["summary"]).Equal("Checkout fails")
	gt.V(t, fields["project"]).Equal(map[string]any{"key": "QA"})
	gt.V(t, fields["issuetype"]).Equal(map[string]any{"name": "Bug"})
	gt.V(t, fields["priority"]).Equal(map[string]any{"name": "High"})
	gt.V(t, fields["parent"]).Equal(map[string]any{"key": "QA-1"})
	gt.V(t, fields["assignee"]).Equal(map[string]any{"accountId": "acc-1"})
	gt.V(t, fields["labels"]).Equal([]string{"mobile-web", "checkout"})
	_, hasFixVersions := fields["fixVersions"]
	gt.False(t, hasFixVersions)

	desc, ok := fields["description"].(*model.ADFNode)
	gt.True(t, ok)
	gt.V(t, desc.Type).Equal("doc")
	gt.V(t, desc.Version).Equal(1)

	var types []string
	for _, n := range desc.Content {
		types = append(types, n.Type)
	}
	gt.V(t, types).Equal([]string{
		"paragraph", "paragraph",
		"heading", "orderedList",
		"heading", "paragraph",
		"heading", "paragraph",
	})
	gt.A(t, desc.Content[3].Content).Length(2)
}

func TestCreateTicket_FixVersionAndText(t *testing.T) {
	var fields map[string]any
	client := &jiraClientMock{
		CreateIssueFunc: func(ctx context.Context, f map[string]any) (*model.CreatedTicket, error) {
			fields = f
			return &model.CreatedTicket{Key: "QA-8"}, nil
		},
	}
	uc := usecase.NewJira(jiraFactory(client))

	_, err := uc.CreateTicket(context.Background(), testCred, "QA", &model.TicketInput{
		Text:       "[Task] Update copyright year\nFooter still says 2024",
		FixVersion: "v1.1",
	})
	gt.NoError(t, err)
	gt.V(t, fields["summary"]).Equal("Update copyright year")
	gt.V(t, fields["issuetype"]).Equal(map[string]any{"name": "Task"})
	gt.V(t, fields["fixVersions"]).Equal([]map[string]any{{"name": "v1.1"}})
	gt.NotNil(t, fields["description"])
}

func TestCreateTicket_SprintMove(t *testing.T) {
	client := &jiraClientMock{
		CreateIssueFunc: func(ctx context.Context, f map[string]any) (*model.CreatedTicket, error) {
			return &model.CreatedTicket{Key: "QA-9"}, nil
		},
	}
	uc := usecase.NewJira(jiraFactory(client))

	t.Run("moved", func(t *testing.T) {
		var moved []string
		client.MoveToSprintFunc = func(ctx context.Context, sprintID int, keys ...string) error {
			gt.V(t, sprintID).Equal(21)
			moved = keys
			return nil
		}
		created, err := uc.CreateTicket(context.Background(), testCred, "QA", &model.TicketInput{Title: "x", SprintID: 21})
		gt.NoError(t, err)
		gt.V(t, moved).Equal([]string{"QA-9"})
		gt.A(t, created.Warnings).Length(0)
	})

	t.Run("move failure is a warning", func(t *testing.T) {
		client.MoveToSprintFunc = func(ctx context.Context, sprintID int, keys ...string) error {
			return &model.UpstreamError{Service: "Jira", StatusCode: http.StatusBadRequest, Message: "sprint closed"}
		}
		created, err := uc.CreateTicket(context.Background(), testCred, "QA", &model.TicketInput{Title: "x", SprintID: 21})
		gt.NoError(t, err)
		gt.V(t, created.Key).Equal("QA-9")
		gt.A(t, created.Warnings).Length(1)
	})
}

func TestCreateTicket_Invalid(t *testing.T) {
	client := &jiraClientMock{}
	uc := usecase.NewJira(jiraFactory(client))

	_, err := uc.CreateTicket(context.Background(), testCred, "QA", &model.TicketInput{Title: "  "})
	gt.True(t, errors.Is(err, model.ErrInvalidInput))

	_, err = uc.CreateTicket(context.Background(), testCred, "", &model.TicketInput{Title: "x"})
	gt.True(t, errors.Is(err, model.ErrInvalidInput))

	gt.V(t, client.Calls("CreateIssue")).Equal(0)
}

func TestCreateTickets_IsolatesFailures(t *testing.T) {
	n := 0
	client := &jiraClientMock{
		CreateIssueFunc: func(ctx context.Context, f map[string]any) (*model.CreatedTicket, error) {
			n++
			if f["summary"] == "Rejected upstream" {
				return nil, &model.UpstreamError{Service: "Jira", StatusCode: http.StatusBadRequest, Message: "priority: invalid"}
			}
			key := fmt.Sprintf("QA-%d", 100+n)
			return &model.CreatedTicket{Key: key, URL: "https://example.atlassian.net/browse/" + key}, nil
		},
	}
	uc := usecase.NewJira(jiraFactory(client), usecase.WithBulkDelay(0))

	result, err := uc.CreateTickets(context.Background(), testCred, "QA", []*model.TicketInput{
		{Title: "First"},
		{Title: ""},
		nil,
		{Title: "Rejected upstream"},
		{Title: "Last"},
	})
	gt.NoError(t, err)

	gt.V(t, result.Summary.Total).Equal(5)
	gt.V(t, result.Summary.Created).Equal(2)
	gt.V(t, result.Summary.Failed).Equal(3)
	gt.A(t, result.Results).Length(5)
	gt.V(t, client.Calls("CreateIssue")).Equal(3)

	gt.True(t, result.Results[0].Success)
	gt.False(t, result.Results[1].Success)
	gt.S(t, result.Results[3].Error).Contains("priority: invalid")
	gt.True(t, result.Results[4].Success)
	gt.V(t, result.Results[4].Index).Equal(4)
}

func TestCreateTickets_Pacing(t *testing.T) {
	var times []time.Time
	client := &jiraClientMock{
		CreateIssueFunc: func(ctx context.Context, f map[string]any) (*model.CreatedTicket, error) {
			times = append(times, time.Now())
			return &model.CreatedTicket{Key: "QA-1"}, nil
		},
	}
	uc := usecase.NewJira(jiraFactory(client), usecase.WithBulkDelay(50*time.Millisecond))

	result, err := uc.CreateTickets(context.Background(), testCred, "QA", []*model.TicketInput{
		{Title: "a"}, {Title: "b"}, {Title: "c"},
	})
	gt.NoError(t, err)
	gt.V(t, result.Summary.Created).Equal(3)
	gt.A(t, times).Length(3)
	gt.True(t, times[2].Sub(times[0]) >= 90*time.Millisecond)
}

func TestCreateTickets_Empty(t *testing.T) {
	uc := usecase.NewJira(jiraFactory(&jiraClientMock{}))
	_, err := uc.CreateTickets(context.Background(), testCred, "QA", nil)
	gt.True(t, errors.Is(err, model.ErrInvalidInput))
}
