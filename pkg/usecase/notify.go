package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

type notifyUseCase struct {
	notifier       interfaces.Notifier
	defaultWebhook string
}

// NewNotify creates the Slack notification use case. defaultWebhook is
// used when a message does not carry its own webhook URL.
func NewNotify(notifier interfaces.Notifier, defaultWebhook string) *notifyUseCase {
	return &notifyUseCase{
		notifier:       notifier,
		defaultWebhook: defaultWebhook,
	}
}

func (uc *notifyUseCase) Notify(ctx context.Context, msg *model.SlackMessage) error {
	if msg == nil || (strings.TrimSpace(msg.Text) == "" && strings.TrimSpace(msg.ReleaseName) == "") {
		return goerr.Wrap(model.ErrInvalidInput, "message text is required")
	}
	if uc.notifier == nil {
		return goerr.New("Slack notifier is not configured")
	}

	webhook := strings.TrimSpace(msg.WebhookURL)
	if webhook == "" {
		webhook = uc.defaultWebhook
	}
	if webhook == "" {
		return goerr.Wrap(model.ErrInvalidInput, "Slack webhook URL is required")
	}

	if err := uc.notifier.Notify(ctx, webhook, msg); err != nil {
		return goerr.Wrap(err, "failed to send Slack notification")
	}

	logging.From(ctx).Info("Slack notification sent", "release", msg.ReleaseName)
	return nil
}
