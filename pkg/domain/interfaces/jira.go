package interfaces

import (
	"context"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

// JiraClient is bound to one caller supplied credential
type JiraClient interface {
	// Myself returns the account owning the credential
	Myself(ctx context.Context) (*model.User, error)

	// GetProject returns a project and its issue types
	GetProject(ctx context.Context, projectKey string) (*model.Project, error)

	// SearchJQL runs a JQL query and returns at most maxResults issues
	SearchJQL(ctx context.Context, jql string, maxResults int) ([]*model.Issue, error)

	// GetIssue fetches a single issue by key
	GetIssue(ctx context.Context, key string) (*model.Issue, error)

	// CreateIssue creates an issue from raw REST v3 fields
	CreateIssue(ctx context.Context, fields map[string]any) (*model.CreatedTicket, error)

	// MoveToSprint moves issues into an agile sprint
	MoveToSprint(ctx context.Context, sprintID int, keys ...string) error

	// ListBoards returns the agile boards of a project
	ListBoards(ctx context.Context, projectKey string) ([]*model.Board, error)

	// ListSprints returns the sprints of a board in the given states
	// (comma separated, e.g. "active,future")
	ListSprints(ctx context.Context, boardID int, states string) ([]*model.Sprint, error)

	// ListVersions returns all fix versions of a project
	ListVersions(ctx context.Context, projectKey string) ([]*model.Version, error)

	// FindAssignableUsers returns one page of users assignable in a project
	FindAssignableUsers(ctx context.Context, projectKey string, startAt, maxResults int) ([]*model.User, error)

	// BrowseURL returns the web URL of an issue
	BrowseURL(key string) string
}

// JiraClientFactory builds a client for a caller supplied credential
type JiraClientFactory func(cred model.Credential) (JiraClient, error)
