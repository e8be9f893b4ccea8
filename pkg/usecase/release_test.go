package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/usecase"
)

func TestPreviewChecklist(t *testing.T) {
	uc := usecase.NewRelease(nil, nil)

	t.Run("api release as storage", func(t *testing.T) {
		preview, err := uc.PreviewChecklist("Payments API 2.3", "", nil)
		gt.NoError(t, err)
		gt.V(t, preview.ReleaseType).Equal("API")
		gt.V(t, preview.Rows).Equal(24)
		gt.V(t, preview.Format).Equal(usecase.FormatStorage)
		gt.S(t, preview.Storage).Contains("<table")
		gt.Nil(t, preview.ADF)
	})

	t.Run("web release as adf", func(t *testing.T) {
		preview, err := uc.PreviewChecklist("Storefront 5.0", "ADF", []string{"QA-1"})
		gt.NoError(t, err)
		gt.V(t, preview.ReleaseType).Equal("Web")
		gt.V(t, preview.Rows).Equal(23)
		gt.NotNil(t, preview.ADF)
		gt.V(t, preview.ADF.Type).Equal("doc")
		gt.V(t, preview.Storage).Equal("")
		gt.True(t, preview.Checkboxes > 0)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := uc.PreviewChecklist("", "adf", nil)
		gt.True(t, errors.Is(err, model.ErrInvalidInput))

		_, err = uc.PreviewChecklist("Web 1", "pdf", nil)
		gt.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}

func TestCreateReleasePage(t *testing.T) {
	var created *model.NewPage
	confluence := &confluenceClientMock{
		CreatePageFunc: func(ctx context.Context, page *model.NewPage) (*model.Page, error) {
			created = page
			return &model.Page{ID: "77", Title: page.Title, URL: "https://example.atlassian.net/wiki/pages/77"}, nil
		},
	}

	var notified *model.SlackMessage
	var notifiedURL string
	notifier := &notifierMock{
		NotifyFunc: func(ctx context.Context, webhookURL string, msg *model.SlackMessage) error {
			notifiedURL = webhookURL
			notified = msg
			return nil
		},
	}

	uc := usecase.NewRelease(confluenceFactory(confluence), usecase.NewNotify(notifier, "https://hooks.slack.com/default"))

	t.Run("storage body with notification", func(t *testing.T) {
		result, err := uc.CreateReleasePage(context.Background(), testCred, &model.ReleasePageInput{
			SpaceKey:    "QA",
			ParentID:    "12",
			ReleaseName: "Core API 1.0",
			Notify:      true,
		})
		gt.NoError(t, err)
		gt.V(t, result.Page.ID).Equal("77")
		gt.V(t, result.ReleaseType).Equal("API")
		gt.V(t, result.Rows).Equal(24)
		gt.True(t, result.Notified)

		gt.V(t, created.SpaceKey).Equal("QA")
		gt.V(t, created.ParentID).Equal("12")
		gt.V(t, created.Title).Equal("Core API 1.0 - Release Checklist")
		gt.V(t, created.Body.Representation).Equal(model.RepresentationStorage)
		gt.True(t, strings.Contains(created.Body.Value, "<ac:task-list>"))

		gt.V(t, notifiedURL).Equal("https://hooks.slack.com/default")
		gt.V(t, notified.PageURL).Equal("https://example.atlassian.net/wiki/pages/77")
		gt.V(t, notified.ReleaseName).Equal("Core API 1.0")
	})

	t.Run("adf body", func(t *testing.T) {
		result, err := uc.CreateReleasePage(context.Background(), testCred, &model.ReleasePageInput{
			SpaceKey:    "QA",
			ReleaseName: "Web 3.1",
			Format:      "adf",
			Tickets:     []string{"QA-1", "QA-2"},
		})
		gt.NoError(t, err)
		gt.False(t, result.Notified)
		gt.V(t, created.Body.Representation).Equal(model.RepresentationADF)

		var doc model.ADFNode
		gt.NoError(t, json.Unmarshal([]byte(created.Body.Value), &doc))
		gt.V(t, doc.Type).Equal("doc")
	})

	t.Run("notification failure is not fatal", func(t *testing.T) {
		notifier.NotifyFunc = func(ctx context.Context, webhookURL string, msg *model.SlackMessage) error {
			return errors.New("webhook gone")
		}
		result, err := uc.CreateReleasePage(context.Background(), testCred, &model.ReleasePageInput{
			SpaceKey:    "QA",
			ReleaseName: "Web 3.2",
			Notify:      true,
		})
		gt.NoError(t, err)
		gt.False(t, result.Notified)
	})

	t.Run("upstream failure", func(t *testing.T) {
		confluence.CreatePageFunc = func(ctx context.Context, page *model.NewPage) (*model.Page, error) {
			return nil, &model.UpstreamError{Service: "Confluence", StatusCode: 403, Message: "no permission"}
		}
		_, err := uc.CreateReleasePage(context.Background(), testCred, &model.ReleasePageInput{
			SpaceKey:    "QA",
			ReleaseName: "Web 3.3",
		})
		gt.Error(t, err)
		gt.V(t, model.StatusOf(err)).Equal(403)
	})

	t.Run("missing space", func(t *testing.T) {
		_, err := uc.CreateReleasePage(context.Background(), testCred, &model.ReleasePageInput{ReleaseName: "x"})
		gt.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}
