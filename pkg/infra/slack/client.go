package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/slack-go/slack"
)

// DefaultTimeout bounds a webhook post
const DefaultTimeout = 10 * time.Second

// Client posts messages to Slack incoming webhooks
type Client struct {
	httpClient *http.Client
}

// New creates a webhook client
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Notify posts msg to webhookURL. The message text is sent as is; when a
// release name and page link are present they are rendered as a section
// block below it.
func (x *Client) Notify(ctx context.Context, webhookURL string, msg *model.SlackMessage) error {
	if strings.TrimSpace(webhookURL) == "" {
		return goerr.Wrap(model.ErrInvalidInput, "Slack webhook URL is not configured")
	}

	payload := buildMessage(msg)
	if err := slack.PostWebhookCustomHTTPContext(ctx, webhookURL, x.httpClient, payload); err != nil {
		var status slack.StatusCodeError
		if errors.As(err, &status) {
			return goerr.Wrap(&model.UpstreamError{
				Service:    "Slack",
				StatusCode: status.Code,
				Message:    status.Status,
			}, "failed to post Slack message")
		}
		return goerr.Wrap(err, "failed to post Slack message")
	}
	return nil
}

func buildMessage(msg *model.SlackMessage) *slack.WebhookMessage {
	text := msg.Text
	if text == "" && msg.ReleaseName != "" {
		text = fmt.Sprintf("Release checklist for %s is ready", msg.ReleaseName)
	}

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
	}
	if msg.PageURL != "" {
		label := msg.ReleaseName
		if label == "" {
			label = "Open page"
		}
		link := fmt.Sprintf("<%s|%s>", msg.PageURL, label)
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, link, false, false)))
	}

	return &slack.WebhookMessage{
		Text:   text,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}
