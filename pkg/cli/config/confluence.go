package config

import (
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Confluence holds the service account used to warm the spaces cache at
// startup. Requests from users always carry their own credential.
type Confluence struct {
	URL   string
	Email string
	Token string `masq:"secret"`
}

// Flags returns CLI flags for Confluence configuration
func (c *Confluence) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "confluence-url",
			Usage:       "Atlassian site URL for the startup spaces load",
			Destination: &c.URL,
			Sources:     cli.EnvVars("JIRABRIDGE_CONFLUENCE_URL", "CONFLUENCE_URL"),
		},
		&cli.StringFlag{
			Name:        "confluence-email",
			Usage:       "Account email for the startup spaces load",
			Destination: &c.Email,
			Sources:     cli.EnvVars("JIRABRIDGE_CONFLUENCE_EMAIL", "CONFLUENCE_EMAIL"),
		},
		&cli.StringFlag{
			Name:        "confluence-token",
			Usage:       "API token for the startup spaces load",
			Destination: &c.Token,
			Sources:     cli.EnvVars("JIRABRIDGE_CONFLUENCE_TOKEN", "CONFLUENCE_API_TOKEN"),
		},
	}
}

// Credential returns nil unless all three values are set
func (c *Confluence) Credential() *model.Credential {
	cred := &model.Credential{URL: c.URL, Email: c.Email, Token: c.Token}
	if cred.Validate() != nil {
		return nil
	}
	return cred
}
