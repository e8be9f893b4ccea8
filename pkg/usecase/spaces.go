package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// spacesUseCase caches the Confluence spaces visible to the service
// credential. The cache is filled once at startup and read afterwards.
type spacesUseCase struct {
	newClient interfaces.ConfluenceClientFactory
	cred      *model.Credential

	mu       sync.RWMutex
	loaded   bool
	loadedAt time.Time
	spaces   []*model.Space
	loadErr  string
}

// NewSpaces creates the cache. cred may be nil when no service credential
// is configured; LoadSpaces is then a no-op.
func NewSpaces(factory interfaces.ConfluenceClientFactory, cred *model.Credential) *spacesUseCase {
	return &spacesUseCase{
		newClient: factory,
		cred:      cred,
	}
}

// LoadSpaces lists spaces and stores them. Only the first successful load
// is kept.
func (uc *spacesUseCase) LoadSpaces(ctx context.Context) error {
	if uc.cred == nil || uc.newClient == nil {
		logging.From(ctx).Debug("Confluence service credential not configured, skip loading spaces")
		return nil
	}

	uc.mu.RLock()
	loaded := uc.loaded
	uc.mu.RUnlock()
	if loaded {
		return nil
	}

	spaces, err := uc.fetch(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.loaded {
		return nil
	}
	if err != nil {
		uc.loadErr = err.Error()
		return err
	}

	uc.loaded = true
	uc.loadedAt = time.Now()
	uc.spaces = spaces
	uc.loadErr = ""

	logging.From(ctx).Info("Confluence spaces loaded", "count", len(spaces))
	return nil
}

func (uc *spacesUseCase) fetch(ctx context.Context) ([]*model.Space, error) {
	client, err := uc.newClient(*uc.cred)
	if err != nil {
		return nil, err
	}

	spaces, err := client.ListSpaces(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load Confluence spaces")
	}
	return spaces, nil
}

// Spaces returns a copy of the cache state
func (uc *spacesUseCase) Spaces() *model.SpacesSnapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	spaces := make([]*model.Space, len(uc.spaces))
	copy(spaces, uc.spaces)

	return &model.SpacesSnapshot{
		Loaded:   uc.loaded,
		LoadedAt: uc.loadedAt,
		Spaces:   spaces,
		Error:    uc.loadErr,
	}
}
