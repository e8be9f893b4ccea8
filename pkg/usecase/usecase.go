package usecase

import (
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
)

// UseCases bundles every use case the HTTP controller serves
type UseCases struct {
	*jiraUseCase
	*releaseUseCase
	*translateUseCase
	*uploadUseCase
	*spacesUseCase
	*notifyUseCase
}

var _ interfaces.UseCases = (*UseCases)(nil)

// New assembles the use cases
func New(
	jira *jiraUseCase,
	release *releaseUseCase,
	translate *translateUseCase,
	upload *uploadUseCase,
	spaces *spacesUseCase,
	notify *notifyUseCase,
) *UseCases {
	return &UseCases{
		jiraUseCase:      jira,
		releaseUseCase:   release,
		translateUseCase: translate,
		uploadUseCase:    upload,
		spacesUseCase:    spaces,
		notifyUseCase:    notify,
	}
}
