package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// Epic search strategy names, reported as EpicSearchResult.Method
const (
	EpicMethodJQL          = "jql"
	EpicMethodRecentIssues = "recent-issues"
	EpicMethodKeyProbe     = "key-probe"
	EpicMethodNone         = "none"
)

const (
	defaultEpicBrowseSize   = 100
	defaultEpicProbeTimeout = 10 * time.Second
	epicJQLMaxResults       = 100
)

// EpicConfig tunes the epic fallback chain
type EpicConfig struct {
	// BrowseSize is the number of most recent issues scanned by the
	// recent-issues strategy
	BrowseSize int

	// ProbeKeys are issue keys tried one by one as a last resort.
	// "{project}" is replaced by the project key.
	ProbeKeys []string

	// ProbeTimeout bounds each probe
	ProbeTimeout time.Duration
}

func (c EpicConfig) withDefaults() EpicConfig {
	if c.BrowseSize <= 0 {
		c.BrowseSize = defaultEpicBrowseSize
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = defaultEpicProbeTimeout
	}
	return c
}

// errStrategySkipped marks a strategy that had nothing to do. It does not
// count as a successful run.
var errStrategySkipped = goerr.New("strategy skipped")

type epicStrategy struct {
	name string
	run  func(ctx context.Context, client interfaces.JiraClient, projectKey, term string) ([]*model.Issue, error)
}

func (uc *jiraUseCase) epicStrategies() []epicStrategy {
	return []epicStrategy{
		{name: EpicMethodJQL, run: uc.searchEpicsByJQL},
		{name: EpicMethodRecentIssues, run: uc.searchEpicsInRecentIssues},
		{name: EpicMethodKeyProbe, run: uc.probeEpicKeys},
	}
}

// SearchEpics finds open Epics of a project. Lack of results and upstream
// failures of individual strategies are not errors.
func (uc *jiraUseCase) SearchEpics(ctx context.Context, cred model.Credential, projectKey, term string) (*model.EpicSearchResult, error) {
	key, err := requireProjectKey(projectKey)
	if err != nil {
		return nil, err
	}

	client, err := uc.client(cred)
	if err != nil {
		return nil, err
	}

	return uc.resolveEpics(ctx, client, key, term), nil
}

// resolveEpics walks the strategies in order. The first one that runs
// without error and yields at least one epic wins.
func (uc *jiraUseCase) resolveEpics(ctx context.Context, client interfaces.JiraClient, projectKey, term string) *model.EpicSearchResult {
	logger := logging.From(ctx).With("project", projectKey)
	method := EpicMethodNone

	for _, s := range uc.epicStrategies() {
		epics, err := s.run(ctx, client, projectKey, term)
		if errors.Is(err, errStrategySkipped) {
			continue
		}
		if err != nil {
			logger.Warn("epic search strategy failed",
				"method", s.name,
				"error", err,
				"status", model.StatusOf(err),
			)
			continue
		}

		method = s.name
		if len(epics) > 0 {
			logger.Debug("epic search strategy succeeded", "method", s.name, "count", len(epics))
			return &model.EpicSearchResult{
				Epics:  epics,
				Total:  len(epics),
				Method: s.name,
			}
		}
	}

	return &model.EpicSearchResult{
		Epics:  []*model.Issue{},
		Total:  0,
		Method: method,
	}
}

func quoteJQL(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func (uc *jiraUseCase) searchEpicsByJQL(ctx context.Context, client interfaces.JiraClient, projectKey, term string) ([]*model.Issue, error) {
	jql := fmt.Sprintf(`project = %s AND issuetype = Epic AND status = "To Do" ORDER BY created DESC`, quoteJQL(projectKey))

	issues, err := client.SearchJQL(ctx, jql, epicJQLMaxResults)
	if err != nil {
		return nil, err
	}

	var epics []*model.Issue
	for _, issue := range issues {
		if issue.MatchesTerm(term) {
			epics = append(epics, issue)
		}
	}
	return epics, nil
}

func (uc *jiraUseCase) searchEpicsInRecentIssues(ctx context.Context, client interfaces.JiraClient, projectKey, term string) ([]*model.Issue, error) {
	jql := fmt.Sprintf("project = %s ORDER BY created DESC", quoteJQL(projectKey))

	issues, err := client.SearchJQL(ctx, jql, uc.epic.BrowseSize)
	if err != nil {
		return nil, err
	}

	var epics []*model.Issue
	for _, issue := range issues {
		if issue.IsEpicLike() && issue.IsToDo() && issue.MatchesTerm(term) {
			epics = append(epics, issue)
		}
	}
	return epics, nil
}

func (uc *jiraUseCase) probeEpicKeys(ctx context.Context, client interfaces.JiraClient, projectKey, term string) ([]*model.Issue, error) {
	if len(uc.epic.ProbeKeys) == 0 {
		return nil, errStrategySkipped
	}

	logger := logging.From(ctx)
	var (
		epics     []*model.Issue
		responded bool
		lastErr   error
	)

	for _, pattern := range uc.epic.ProbeKeys {
		key := strings.ReplaceAll(pattern, "{project}", projectKey)

		issue, err := uc.probe(ctx, client, key)
		if err != nil {
			logger.Debug("epic probe failed", "key", key, "error", err)
			lastErr = err
			continue
		}
		responded = true

		if issue.InProject(projectKey) && issue.IsEpicType() && issue.IsToDo() && issue.MatchesTerm(term) {
			epics = append(epics, issue)
		}
	}

	if !responded {
		return nil, goerr.Wrap(lastErr, "no probe key resolved")
	}
	return epics, nil
}

func (uc *jiraUseCase) probe(ctx context.Context, client interfaces.JiraClient, key string) (*model.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.epic.ProbeTimeout)
	defer cancel()
	return client.GetIssue(ctx, key)
}
