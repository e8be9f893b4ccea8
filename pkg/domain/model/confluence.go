package model

import "time"

// Space is a Confluence space
type Space struct {
	ID   int64  `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Page is a Confluence page
type Page struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PageBody is the body of a page in one representation: "storage" (XHTML)
// or "atlas_doc_format" (ADF serialized to a JSON string)
type PageBody struct {
	Value          string
	Representation string
}

// Body representations accepted by Confluence
const (
	RepresentationStorage = "storage"
	RepresentationADF     = "atlas_doc_format"
)

// NewPage describes a page to be created
type NewPage struct {
	SpaceKey string
	ParentID string
	Title    string
	Body     PageBody
}

// ReleasePageInput is a request to publish a release checklist page
type ReleasePageInput struct {
	SpaceKey     string   `json:"spaceKey"`
	ParentID     string   `json:"parentId,omitempty"`
	ReleaseName  string   `json:"releaseName"`
	Format       string   `json:"format,omitempty"`
	Tickets      []string `json:"tickets,omitempty"`
	Notify       bool     `json:"notify,omitempty"`
	SlackWebhook string   `json:"slackWebhookUrl,omitempty" masq:"secret"`
}

// ReleasePage is a published release page
type ReleasePage struct {
	Page        *Page  `json:"page"`
	ReleaseType string `json:"releaseType"`
	Rows        int    `json:"rows"`
	Notified    bool   `json:"notified"`
}

// SlackMessage is a notification posted to an incoming webhook
type SlackMessage struct {
	WebhookURL  string `json:"webhookUrl,omitempty" masq:"secret"`
	Text        string `json:"text"`
	ReleaseName string `json:"releaseName,omitempty"`
	PageURL     string `json:"pageUrl,omitempty"`
}

// SpacesSnapshot is the state of the spaces cache
type SpacesSnapshot struct {
	Loaded   bool      `json:"loaded"`
	LoadedAt time.Time `json:"loadedAt,omitempty"`
	Spaces   []*Space  `json:"spaces"`
	Error    string    `json:"error,omitempty"`
}

// ChecklistPreview is a rendered checklist that has not been published
type ChecklistPreview struct {
	Title       string   `json:"title"`
	ReleaseType string   `json:"releaseType"`
	Rows        int      `json:"rows"`
	Checkboxes  int      `json:"checkboxes"`
	Format      string   `json:"format"`
	ADF         *ADFNode `json:"adf,omitempty"`
	Storage     string   `json:"storage,omitempty"`
}
