package config

import "github.com/urfave/cli/v3"

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Default Slack incoming webhook for release notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("JIRABRIDGE_SLACK_WEBHOOK_URL", "SLACK_WEBHOOK_URL"),
		},
	}
}
