package http

import (
	"net/http"

	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

type handler struct {
	uc     interfaces.UseCases
	sentry bool
}

// Request bodies carry the Atlassian credential flattened next to the
// operation fields

type projectRequest struct {
	model.Credential
	ProjectKey string `json:"projectKey"`
}

type createTicketRequest struct {
	model.Credential
	ProjectKey string             `json:"projectKey"`
	Ticket     *model.TicketInput `json:"ticket"`
}

type createTicketsRequest struct {
	model.Credential
	ProjectKey string               `json:"projectKey"`
	Tickets    []*model.TicketInput `json:"tickets"`
}

type searchEpicsRequest struct {
	model.Credential
	ProjectKey string `json:"projectKey"`
	SearchTerm string `json:"searchTerm"`
}

type projectMetadataRequest struct {
	model.Credential
	ProjectKey      string `json:"projectKey"`
	PreferredSprint string `json:"preferredSprint"`
}

type parseTicketRequest struct {
	Text string `json:"text"`
}

type checklistRequest struct {
	ReleaseName string   `json:"releaseName"`
	Format      string   `json:"format"`
	Tickets     []string `json:"tickets"`
}

type releasePageRequest struct {
	model.Credential
	model.ReleasePageInput
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}
