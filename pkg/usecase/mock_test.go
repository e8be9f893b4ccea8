package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

var errNotConfigured = errors.New("mock not configured")

// jiraClientMock implements interfaces.JiraClient with overridable funcs
type jiraClientMock struct {
	MyselfFunc              func(ctx context.Context) (*model.User, error)
	GetProjectFunc          func(ctx context.Context, projectKey string) (*model.Project, error)
	SearchJQLFunc           func(ctx context.Context, jql string, maxResults int) ([]*model.Issue, error)
	GetIssueFunc            func(ctx context.Context, key string) (*model.Issue, error)
	CreateIssueFunc         func(ctx context.Context, fields map[string]any) (*model.CreatedTicket, error)
	MoveToSprintFunc        func(ctx context.Context, sprintID int, keys ...string) error
	ListBoardsFunc          func(ctx context.Context, projectKey string) ([]*model.Board, error)
	ListSprintsFunc         func(ctx context.Context, boardID int, states string) ([]*model.Sprint, error)
	ListVersionsFunc        func(ctx context.Context, projectKey string) ([]*model.Version, error)
	FindAssignableUsersFunc func(ctx context.Context, projectKey string, startAt, maxResults int) ([]*model.User, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *jiraClientMock) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

func (m *jiraClientMock) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *jiraClientMock) Myself(ctx context.Context) (*model.User, error) {
	m.record("Myself")
	if m.MyselfFunc != nil {
		return m.MyselfFunc(ctx)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) GetProject(ctx context.Context, projectKey string) (*model.Project, error) {
	m.record("GetProject")
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, projectKey)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) SearchJQL(ctx context.Context, jql string, maxResults int) ([]*model.Issue, error) {
	m.record("SearchJQL")
	if m.SearchJQLFunc != nil {
		return m.SearchJQLFunc(ctx, jql, maxResults)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) GetIssue(ctx context.Context, key string) (*model.Issue, error) {
	m.record("GetIssue")
	if m.GetIssueFunc != nil {
		return m.GetIssueFunc(ctx, key)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) CreateIssue(ctx context.Context, fields map[string]any) (*model.CreatedTicket, error) {
	m.record("CreateIssue")
	if m.CreateIssueFunc != nil {
		return m.CreateIssueFunc(ctx, fields)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) MoveToSprint(ctx context.Context, sprintID int, keys ...string) error {
	m.record("MoveToSprint")
	if m.MoveToSprintFunc != nil {
		return m.MoveToSprintFunc(ctx, sprintID, keys...)
	}
	return errNotConfigured
}

func (m *jiraClientMock) ListBoards(ctx context.Context, projectKey string) ([]*model.Board, error) {
	m.record("ListBoards")
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx, projectKey)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) ListSprints(ctx context.Context, boardID int, states string) ([]*model.Sprint, error) {
	m.record("ListSprints")
	if m.ListSprintsFunc != nil {
		return m.ListSprintsFunc(ctx, boardID, states)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) ListVersions(ctx context.Context, projectKey string) ([]*model.Version, error) {
	m.record("ListVersions")
	if m.ListVersionsFunc != nil {
		return m.ListVersionsFunc(ctx, projectKey)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) FindAssignableUsers(ctx context.Context, projectKey string, startAt, maxResults int) ([]*model.User, error) {
	m.record("FindAssignableUsers")
	if m.FindAssignableUsersFunc != nil {
		return m.FindAssignableUsersFunc(ctx, projectKey, startAt, maxResults)
	}
	return nil, errNotConfigured
}

func (m *jiraClientMock) BrowseURL(key string) string {
	return "https://example.atlassian.net/browse/" + key
}

func jiraFactory(client interfaces.JiraClient) interfaces.JiraClientFactory {
	return func(cred model.Credential) (interfaces.JiraClient, error) {
		if err := cred.Validate(); err != nil {
			return nil, err
		}
		return client, nil
	}
}

var testCred = model.Credential{
	URL:   "https://example.atlassian.net",
	Email: "qa@example.com",
	Token: "secret-token",
}

// confluenceClientMock implements interfaces.ConfluenceClient
type confluenceClientMock struct {
	ListSpacesFunc func(ctx context.Context) ([]*model.Space, error)
	CreatePageFunc func(ctx context.Context, page *model.NewPage) (*model.Page, error)
}

func (m *confluenceClientMock) ListSpaces(ctx context.Context) ([]*model.Space, error) {
	if m.ListSpacesFunc != nil {
		return m.ListSpacesFunc(ctx)
	}
	return nil, errNotConfigured
}

func (m *confluenceClientMock) CreatePage(ctx context.Context, page *model.NewPage) (*model.Page, error) {
	if m.CreatePageFunc != nil {
		return m.CreatePageFunc(ctx, page)
	}
	return nil, errNotConfigured
}

func confluenceFactory(client interfaces.ConfluenceClient) interfaces.ConfluenceClientFactory {
	return func(cred model.Credential) (interfaces.ConfluenceClient, error) {
		return client, nil
	}
}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, webhookURL string, msg *model.SlackMessage) error
}

func (m *notifierMock) Notify(ctx context.Context, webhookURL string, msg *model.SlackMessage) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, webhookURL, msg)
	}
	return errNotConfigured
}

type storageMock struct {
	SaveFunc   func(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	DeleteFunc func(ctx context.Context, name string) error
}

func (m *storageMock) Delete(ctx context.Context, name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}
	return errNotConfigured
}

func (m *storageMock) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, name, contentType, r)
	}
	return "", errNotConfigured
}

type translatorMock struct {
	name string
	out  string
	err  error
}

func (m *translatorMock) Name() string { return m.name }

func (m *translatorMock) Translate(ctx context.Context, text, source, target string) (string, error) {
	return m.out, m.err
}
