package interfaces

import (
	"context"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

// ConfluenceClient is bound to one credential
type ConfluenceClient interface {
	// ListSpaces returns every space visible to the credential
	ListSpaces(ctx context.Context) ([]*model.Space, error)

	// CreatePage publishes a new page
	CreatePage(ctx context.Context, page *model.NewPage) (*model.Page, error)
}

// ConfluenceClientFactory builds a client for a credential
type ConfluenceClientFactory func(cred model.Credential) (ConfluenceClient, error)
