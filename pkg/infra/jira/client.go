package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

// DefaultTimeout bounds every Jira request
const DefaultTimeout = 30 * time.Second

var issueFieldNames = []string{"summary", "status", "issuetype", "subtasks", "parent", "created", "updated"}

type client struct {
	jira    *jira.Client
	baseURL string
}

type factoryConfig struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// Option configures the client factory
type Option func(*factoryConfig)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *factoryConfig) {
		c.timeout = d
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *factoryConfig) {
		c.transport = rt
	}
}

// NewFactory returns a factory that builds a Basic-Auth Jira client per
// caller credential
func NewFactory(opts ...Option) interfaces.JiraClientFactory {
	cfg := &factoryConfig{
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(cred model.Credential) (interfaces.JiraClient, error) {
		return NewClient(cred, cfg.timeout, cfg.transport)
	}
}

// NewClient creates a Jira client authenticated with the credential
func NewClient(cred model.Credential, timeout time.Duration, transport http.RoundTripper) (interfaces.JiraClient, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	tp := &jira.BasicAuthTransport{
		Username:  strings.TrimSpace(cred.Email),
		Password:  strings.TrimSpace(cred.Token),
		Transport: transport,
	}
	httpClient := &http.Client{
		Transport: tp,
		Timeout:   timeout,
	}

	baseURL := cred.BaseURL()
	jiraClient, err := jira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, goerr.Wrap(model.ErrInvalidInput, "invalid Jira URL",
			goerr.V("url", baseURL), goerr.V("cause", err.Error()))
	}

	return &client{
		jira:    jiraClient,
		baseURL: baseURL,
	}, nil
}

func (c *client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}

// Myself returns the authenticated account
func (c *client) Myself(ctx context.Context) (*model.User, error) {
	user, resp, err := c.jira.User.GetSelfWithContext(ctx)
	if err != nil {
		return nil, upstreamError(resp, err, "rest/api/3/myself")
	}
	return &model.User{
		AccountID:   user.AccountID,
		DisplayName: user.DisplayName,
		Email:       user.EmailAddress,
		AvatarURL:   user.AvatarUrls.Four8X48,
		Active:      user.Active,
	}, nil
}

func (c *client) GetProject(ctx context.Context, projectKey string) (*model.Project, error) {
	var raw projectJSON
	path := "rest/api/3/project/" + url.PathEscape(projectKey)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:   raw.ID,
		Key:  raw.Key,
		Name: raw.Name,
		Lead: raw.Lead.DisplayName,
	}
	for _, it := range raw.IssueTypes {
		project.IssueTypes = append(project.IssueTypes, &model.IssueType{
			ID:             it.ID,
			Name:           it.Name,
			Subtask:        it.Subtask,
			HierarchyLevel: it.HierarchyLevel,
		})
	}
	return project, nil
}

// SearchJQL uses the enhanced search endpoint. The older
// rest/api/3/search endpoint answers 410 Gone on Jira Cloud.
func (c *client) SearchJQL(ctx context.Context, jql string, maxResults int) ([]*model.Issue, error) {
	req := searchRequest{
		JQL:        jql,
		MaxResults: maxResults,
		Fields:     issueFieldNames,
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "rest/api/3/search/jql", req, &resp); err != nil {
		return nil, goerr.Wrap(err, "JQL search failed", goerr.V("jql", jql))
	}

	issues := make([]*model.Issue, 0, len(resp.Issues))
	for i := range resp.Issues {
		issues = append(issues, resp.Issues[i].toModel())
	}
	return issues, nil
}

func (c *client) GetIssue(ctx context.Context, key string) (*model.Issue, error) {
	path := "rest/api/3/issue/" + url.PathEscape(key) + "?fields=" + strings.Join(issueFieldNames, ",")

	var raw issueJSON
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw.toModel(), nil
}

func (c *client) CreateIssue(ctx context.Context, fields map[string]any) (*model.CreatedTicket, error) {
	var created struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := c.do(ctx, http.MethodPost, "rest/api/3/issue", map[string]any{"fields": fields}, &created); err != nil {
		return nil, err
	}

	return &model.CreatedTicket{
		ID:  created.ID,
		Key: created.Key,
		URL: c.BrowseURL(created.Key),
	}, nil
}

func (c *client) MoveToSprint(ctx context.Context, sprintID int, keys ...string) error {
	resp, err := c.jira.Sprint.MoveIssuesToSprintWithContext(ctx, sprintID, keys)
	if err != nil {
		return upstreamError(resp, err, fmt.Sprintf("rest/agile/1.0/sprint/%d/issue", sprintID))
	}
	return nil
}

func (c *client) ListBoards(ctx context.Context, projectKey string) ([]*model.Board, error) {
	list, resp, err := c.jira.Board.GetAllBoardsWithContext(ctx, &jira.BoardListOptions{
		ProjectKeyOrID: projectKey,
	})
	if err != nil {
		return nil, upstreamError(resp, err, "rest/agile/1.0/board")
	}

	boards := make([]*model.Board, 0, len(list.Values))
	for _, b := range list.Values {
		boards = append(boards, &model.Board{ID: b.ID, Name: b.Name, Type: b.Type})
	}
	return boards, nil
}

func (c *client) ListSprints(ctx context.Context, boardID int, states string) ([]*model.Sprint, error) {
	list, resp, err := c.jira.Board.GetAllSprintsWithOptionsWithContext(ctx, boardID, &jira.GetAllSprintsOptions{
		State: states,
	})
	if err != nil {
		return nil, upstreamError(resp, err, fmt.Sprintf("rest/agile/1.0/board/%d/sprint", boardID))
	}

	sprints := make([]*model.Sprint, 0, len(list.Values))
	for _, s := range list.Values {
		sprint := &model.Sprint{
			ID:      s.ID,
			Name:    s.Name,
			State:   s.State,
			BoardID: boardID,
		}
		if s.StartDate != nil {
			sprint.StartDate = s.StartDate.Format(time.RFC3339)
		}
		if s.EndDate != nil {
			sprint.EndDate = s.EndDate.Format(time.RFC3339)
		}
		sprints = append(sprints, sprint)
	}
	return sprints, nil
}

func (c *client) ListVersions(ctx context.Context, projectKey string) ([]*model.Version, error) {
	var raw []*model.Version
	path := "rest/api/3/project/" + url.PathEscape(projectKey) + "/versions"
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *client) FindAssignableUsers(ctx context.Context, projectKey string, startAt, maxResults int) ([]*model.User, error) {
	q := url.Values{}
	q.Set("project", projectKey)
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(maxResults))

	var raw []userJSON
	if err := c.do(ctx, http.MethodGet, "rest/api/3/user/assignable/search?"+q.Encode(), nil, &raw); err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(raw))
	for _, u := range raw {
		users = append(users, &model.User{
			AccountID:   u.AccountID,
			DisplayName: u.DisplayName,
			Email:       u.EmailAddress,
			AvatarURL:   u.AvatarURLs["48x48"],
			Active:      u.Active,
		})
	}
	return users, nil
}

// do sends a request relative to the site URL and decodes the JSON answer
// into v, which must be non-nil so the response body gets closed
func (c *client) do(ctx context.Context, method, path string, body, v any) error {
	req, err := c.jira.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return goerr.Wrap(err, "failed to build Jira request", goerr.V("path", path))
	}

	resp, err := c.jira.Do(req, v)
	if err != nil {
		return upstreamError(resp, err, path)
	}
	return nil
}

// upstreamError turns a go-jira failure into a model.UpstreamError carrying
// the HTTP status and Jira's own error text when available
func upstreamError(resp *jira.Response, err error, path string) error {
	if resp == nil || resp.Response == nil {
		return goerr.Wrap(err, "Jira request failed", goerr.V("path", path))
	}

	msg := err.Error()
	if resp.Body != nil {
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		_ = resp.Body.Close()
		if readErr == nil {
			if m := errorMessage(data); m != "" {
				msg = m
			}
		}
	}

	return goerr.Wrap(&model.UpstreamError{
		Service:    "Jira",
		StatusCode: resp.StatusCode,
		Message:    msg,
	}, "Jira request failed", goerr.V("path", path), goerr.V("status", resp.StatusCode))
}

// errorMessage extracts the human readable part of a Jira error body
func errorMessage(data []byte) string {
	var body struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
		Message       string            `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}

	parts := append([]string{}, body.ErrorMessages...)
	fields := make([]string, 0, len(body.Errors))
	for field := range body.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, field+": "+body.Errors[field])
	}
	if body.Message != "" {
		parts = append(parts, body.Message)
	}
	return strings.Join(parts, "; ")
}
