package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

// JiraUseCase defines the Jira facing operations
type JiraUseCase interface {
	// TestConnection verifies the credential
	TestConnection(ctx context.Context, cred model.Credential) (*model.User, error)

	// GetProject returns project details
	GetProject(ctx context.Context, cred model.Credential, projectKey string) (*model.Project, error)

	// ParseTicket extracts ticket fields from a free-text bug report
	ParseTicket(text string) *model.TicketInput

	// CreateTicket creates one ticket
	CreateTicket(ctx context.Context, cred model.Credential, projectKey string, ticket *model.TicketInput) (*model.CreatedTicket, error)

	// CreateTickets creates tickets one by one, isolating failures
	CreateTickets(ctx context.Context, cred model.Credential, projectKey string, tickets []*model.TicketInput) (*model.BulkResult, error)

	// SearchEpics runs the epic fallback chain. It never fails for lack of
	// results.
	SearchEpics(ctx context.Context, cred model.Credential, projectKey, term string) (*model.EpicSearchResult, error)

	// ProjectMetadata aggregates sprints, versions, assignees and epics
	ProjectMetadata(ctx context.Context, cred model.Credential, projectKey, preferredSprint string) (*model.ProjectMetadata, error)
}

// ReleaseUseCase publishes release checklists
type ReleaseUseCase interface {
	// PreviewChecklist renders a checklist without publishing it. format
	// is "adf" or "storage".
	PreviewChecklist(releaseName, format string, tickets []string) (*model.ChecklistPreview, error)

	CreateReleasePage(ctx context.Context, cred model.Credential, input *model.ReleasePageInput) (*model.ReleasePage, error)
}

// TranslateUseCase translates text best-effort
type TranslateUseCase interface {
	Translate(ctx context.Context, text, source, target string) *model.TranslationResult
}

// UploadUseCase stores attachments
type UploadUseCase interface {
	// CheckUpload validates a file before it is read
	CheckUpload(name string, size int64) error

	// SaveUpload stores one file
	SaveUpload(ctx context.Context, name, contentType string, size int64, r io.Reader) (*model.UploadedFile, error)

	// DiscardUploads removes files stored earlier in a request that failed
	DiscardUploads(ctx context.Context, files []*model.UploadedFile)
}

// SpacesUseCase exposes the startup spaces cache
type SpacesUseCase interface {
	LoadSpaces(ctx context.Context) error
	Spaces() *model.SpacesSnapshot
}

// NotifyUseCase posts chat notifications
type NotifyUseCase interface {
	Notify(ctx context.Context, msg *model.SlackMessage) error
}

// UseCases bundles everything the HTTP controller needs
type UseCases interface {
	JiraUseCase
	ReleaseUseCase
	TranslateUseCase
	UploadUseCase
	SpacesUseCase
	NotifyUseCase
}
