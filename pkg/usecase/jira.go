package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// DefaultBulkDelay spaces upstream calls of a bulk creation
const DefaultBulkDelay = time.Second

type jiraUseCase struct {
	newClient       interfaces.JiraClientFactory
	epic            EpicConfig
	preferredSprint string
	sprintVariants  []string
	bulkDelay       time.Duration
}

// JiraOption configures the Jira use case
type JiraOption func(*jiraUseCase)

// WithEpicConfig tunes the epic fallback chain
func WithEpicConfig(cfg EpicConfig) JiraOption {
	return func(uc *jiraUseCase) {
		uc.epic = cfg.withDefaults()
	}
}

// WithPreferredSprint sets the sprint selected by default when the request
// does not name one. variants are partial names tried after it.
func WithPreferredSprint(name string, variants ...string) JiraOption {
	return func(uc *jiraUseCase) {
		uc.preferredSprint = name
		uc.sprintVariants = variants
	}
}

// WithBulkDelay sets the pause between tickets of a bulk creation
func WithBulkDelay(d time.Duration) JiraOption {
	return func(uc *jiraUseCase) {
		uc.bulkDelay = d
	}
}

// NewJira creates the Jira use case
func NewJira(factory interfaces.JiraClientFactory, opts ...JiraOption) *jiraUseCase {
	uc := &jiraUseCase{
		newClient: factory,
		epic:      EpicConfig{}.withDefaults(),
		bulkDelay: DefaultBulkDelay,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *jiraUseCase) client(cred model.Credential) (interfaces.JiraClient, error) {
	if uc.newClient == nil {
		return nil, goerr.New("Jira client factory is not configured")
	}
	return uc.newClient(cred)
}

func requireProjectKey(projectKey string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(projectKey))
	if key == "" {
		return "", goerr.Wrap(model.ErrInvalidInput, "project key is required")
	}
	return key, nil
}

// TestConnection checks the credential against /myself
func (uc *jiraUseCase) TestConnection(ctx context.Context, cred model.Credential) (*model.User, error) {
	client, err := uc.client(cred)
	if err != nil {
		return nil, err
	}

	user, err := client.Myself(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "connection test failed", goerr.V("url", cred.BaseURL()))
	}

	logging.From(ctx).Info("Jira connection verified",
		"url", cred.BaseURL(),
		"account_id", user.AccountID,
	)
	return user, nil
}

// GetProject returns project details and issue types
func (uc *jiraUseCase) GetProject(ctx context.Context, cred model.Credential, projectKey string) (*model.Project, error) {
	key, err := requireProjectKey(projectKey)
	if err != nil {
		return nil, err
	}

	client, err := uc.client(cred)
	if err != nil {
		return nil, err
	}

	project, err := client.GetProject(ctx, key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("project", key))
	}
	return project, nil
}

// ParseTicket extracts ticket fields from free text
func (uc *jiraUseCase) ParseTicket(text string) *model.TicketInput {
	return ParseTicketText(text)
}
