package interfaces

import (
	"context"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

// Notifier posts messages to a chat incoming webhook
type Notifier interface {
	Notify(ctx context.Context, webhookURL string, msg *model.SlackMessage) error
}
