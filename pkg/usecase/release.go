package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/checklist"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// Checklist output formats
const (
	FormatStorage = "storage"
	FormatADF     = "adf"
)

type releaseUseCase struct {
	newClient interfaces.ConfluenceClientFactory
	notifier  *notifyUseCase
}

// NewRelease creates the release page use case. notifier may be nil, in
// which case release pages are never announced.
func NewRelease(factory interfaces.ConfluenceClientFactory, notifier *notifyUseCase) *releaseUseCase {
	return &releaseUseCase{
		newClient: factory,
		notifier:  notifier,
	}
}

func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatStorage:
		return FormatStorage, nil
	case FormatADF, model.RepresentationADF:
		return FormatADF, nil
	default:
		return "", goerr.Wrap(model.ErrInvalidInput, "unsupported checklist format", goerr.V("format", format))
	}
}

// PreviewChecklist renders the checklist of a release
func (uc *releaseUseCase) PreviewChecklist(releaseName, format string, tickets []string) (*model.ChecklistPreview, error) {
	if strings.TrimSpace(releaseName) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "release name is required")
	}
	f, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	doc := checklist.New(strings.TrimSpace(releaseName), tickets...)
	preview := &model.ChecklistPreview{
		Title:       doc.Title(),
		ReleaseType: string(doc.ReleaseType),
		Rows:        len(doc.Steps),
		Checkboxes:  doc.CheckboxCount(),
		Format:      f,
	}

	switch f {
	case FormatADF:
		preview.ADF = doc.ADF()
	default:
		html, err := doc.StorageHTML()
		if err != nil {
			return nil, err
		}
		preview.Storage = html
	}
	return preview, nil
}

// CreateReleasePage publishes the checklist as a Confluence page and
// optionally announces it on Slack. A failed announcement does not fail
// the call.
func (uc *releaseUseCase) CreateReleasePage(ctx context.Context, cred model.Credential, input *model.ReleasePageInput) (*model.ReleasePage, error) {
	if input == nil || strings.TrimSpace(input.SpaceKey) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "space key is required")
	}
	if strings.TrimSpace(input.ReleaseName) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "release name is required")
	}
	format, err := normalizeFormat(input.Format)
	if err != nil {
		return nil, err
	}
	if uc.newClient == nil {
		return nil, goerr.New("Confluence client factory is not configured")
	}

	logger := logging.From(ctx)
	doc := checklist.New(strings.TrimSpace(input.ReleaseName), input.Tickets...)

	body, err := renderBody(doc, format)
	if err != nil {
		return nil, err
	}

	client, err := uc.newClient(cred)
	if err != nil {
		return nil, err
	}

	page, err := client.CreatePage(ctx, &model.NewPage{
		SpaceKey: strings.TrimSpace(input.SpaceKey),
		ParentID: strings.TrimSpace(input.ParentID),
		Title:    doc.Title(),
		Body:     body,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to publish release page",
			goerr.V("space", input.SpaceKey), goerr.V("release", input.ReleaseName))
	}

	logger.Info("release page created",
		"page_id", page.ID,
		"space", input.SpaceKey,
		"release_type", doc.ReleaseType,
	)

	result := &model.ReleasePage{
		Page:        page,
		ReleaseType: string(doc.ReleaseType),
		Rows:        len(doc.Steps),
	}

	if input.Notify && uc.notifier != nil {
		err := uc.notifier.Notify(ctx, &model.SlackMessage{
			WebhookURL:  input.SlackWebhook,
			ReleaseName: doc.ReleaseName,
			PageURL:     page.URL,
		})
		if err != nil {
			logger.Warn("failed to announce release page", "error", err, "page_id", page.ID)
		} else {
			result.Notified = true
		}
	}

	return result, nil
}

func renderBody(doc *checklist.Document, format string) (model.PageBody, error) {
	if format == FormatADF {
		data, err := json.Marshal(doc.ADF())
		if err != nil {
			return model.PageBody{}, goerr.Wrap(err, "failed to marshal checklist ADF")
		}
		return model.PageBody{Value: string(data), Representation: model.RepresentationADF}, nil
	}

	html, err := doc.StorageHTML()
	if err != nil {
		return model.PageBody{}, err
	}
	return model.PageBody{Value: html, Representation: model.RepresentationStorage}, nil
}
