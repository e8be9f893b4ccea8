package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	assigneePageSize = 50
	sprintStates     = "active,future"
)

// Metadata source names used as keys of ProjectMetadata.Warnings
const (
	sourceSprints   = "sprints"
	sourceVersions  = "versions"
	sourceAssignees = "assignees"
	sourceEpics     = "epics"
)

// ProjectMetadata queries sprints, versions, assignees and epics in
// parallel. A failing source falls back to an empty list and leaves a
// warning; it never fails the whole call.
func (uc *jiraUseCase) ProjectMetadata(ctx context.Context, cred model.Credential, projectKey, preferredSprint string) (*model.ProjectMetadata, error) {
	key, err := requireProjectKey(projectKey)
	if err != nil {
		return nil, err
	}

	client, err := uc.client(cred)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx).With("project", key)
	meta := &model.ProjectMetadata{
		Sprints:   []*model.Sprint{},
		Assignees: []*model.User{},
		Epics:     []*model.Issue{},
		Warnings:  map[string]string{},
	}

	var mu sync.Mutex
	warn := func(source string, err error) {
		logger.Warn("metadata source failed", "source", source, "error", err)
		mu.Lock()
		defer mu.Unlock()
		meta.Warnings[source] = err.Error()
	}

	// Sources never return errors so that one failure does not cancel the
	// others through the group context.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		sprints, err := uc.listSprints(egCtx, client, key)
		if err != nil {
			warn(sourceSprints, err)
			return nil
		}
		meta.Sprints = sprints
		return nil
	})

	eg.Go(func() error {
		versions, err := uc.listOpenVersions(egCtx, client, key)
		if err != nil {
			warn(sourceVersions, err)
			versions = nil
		}
		meta.Versions = model.WithPlaceholderVersion(versions)
		return nil
	})

	eg.Go(func() error {
		users, err := uc.listAssignees(egCtx, client, key)
		if err != nil {
			warn(sourceAssignees, err)
			return nil
		}
		meta.Assignees = users
		return nil
	})

	eg.Go(func() error {
		result := uc.resolveEpics(egCtx, client, key, "")
		meta.Epics = result.Epics
		meta.EpicMethod = result.Method
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate project metadata", goerr.V("project", key))
	}

	preferred := strings.TrimSpace(preferredSprint)
	if preferred == "" {
		preferred = uc.preferredSprint
	}
	meta.DefaultSprint = model.SelectDefaultSprint(meta.Sprints, preferred, uc.sprintVariants)

	if len(meta.Warnings) == 0 {
		meta.Warnings = nil
	}
	return meta, nil
}

// listSprints returns the active and future sprints of the first scrum
// board of the project
func (uc *jiraUseCase) listSprints(ctx context.Context, client interfaces.JiraClient, projectKey string) ([]*model.Sprint, error) {
	boards, err := client.ListBoards(ctx, projectKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list boards")
	}

	var board *model.Board
	for _, b := range boards {
		if strings.EqualFold(b.Type, "scrum") {
			board = b
			break
		}
	}
	if board == nil {
		return []*model.Sprint{}, nil
	}

	sprints, err := client.ListSprints(ctx, board.ID, sprintStates)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sprints", goerr.V("board_id", board.ID))
	}
	return sprints, nil
}

func (uc *jiraUseCase) listOpenVersions(ctx context.Context, client interfaces.JiraClient, projectKey string) ([]*model.Version, error) {
	versions, err := client.ListVersions(ctx, projectKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list versions")
	}

	open := make([]*model.Version, 0, len(versions))
	for _, v := range versions {
		if v == nil || v.Released || v.Archived {
			continue
		}
		open = append(open, v)
	}
	return open, nil
}

// listAssignees pages through assignable users until a short page or
// model.AssigneeLimit users have been fetched
func (uc *jiraUseCase) listAssignees(ctx context.Context, client interfaces.JiraClient, projectKey string) ([]*model.User, error) {
	users := []*model.User{}

	for startAt := 0; startAt < model.AssigneeLimit; startAt += assigneePageSize {
		page, err := client.FindAssignableUsers(ctx, projectKey, startAt, assigneePageSize)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list assignable users", goerr.V("start_at", startAt))
		}

		for _, u := range page {
			if u.Active {
				users = append(users, u)
			}
		}

		if len(page) < assigneePageSize {
			break
		}
	}

	if len(users) > model.AssigneeLimit {
		users = users[:model.AssigneeLimit]
	}
	return users, nil
}
