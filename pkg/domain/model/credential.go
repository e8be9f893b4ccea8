package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Credential is the caller supplied Atlassian Basic-Auth triple. It is used
// for Jira and Confluence alike and is never stored.
type Credential struct {
	URL   string `json:"url"`
	Email string `json:"email"`
	Token string `json:"token" masq:"secret"`
}

// Validate checks that all three fields are present
func (c Credential) Validate() error {
	var missing []string
	if strings.TrimSpace(c.URL) == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return goerr.Wrap(ErrInvalidInput, "missing Jira credentials", goerr.V("fields", missing))
	}
	return nil
}

// BaseURL normalizes the site URL: scheme defaults to https and trailing
// slashes are removed
func (c Credential) BaseURL() string {
	u := strings.TrimSpace(c.URL)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return strings.TrimRight(u, "/")
}
