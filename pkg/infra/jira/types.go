package jira

import "github.com/m-mizutani/jirabridge/pkg/domain/model"

type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

type searchResponse struct {
	Issues        []issueJSON `json:"issues"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
	IsLast        bool        `json:"isLast"`
}

type issueJSON struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
		IssueType issueTypeJSON `json:"issuetype"`
		Subtasks  []struct {
			Key string `json:"key"`
		} `json:"subtasks"`
		Parent *struct {
			Key string `json:"key"`
		} `json:"parent"`
		Created string `json:"created"`
		Updated string `json:"updated"`
	} `json:"fields"`
}

func (x *issueJSON) toModel() *model.Issue {
	issue := &model.Issue{
		ID:             x.ID,
		Key:            x.Key,
		Summary:        x.Fields.Summary,
		Status:         x.Fields.Status.Name,
		IssueType:      x.Fields.IssueType.Name,
		HierarchyLevel: x.Fields.IssueType.HierarchyLevel,
		Subtask:        x.Fields.IssueType.Subtask,
		SubtaskCount:   len(x.Fields.Subtasks),
		Created:        x.Fields.Created,
		Updated:        x.Fields.Updated,
	}
	if x.Fields.Parent != nil {
		issue.ParentKey = x.Fields.Parent.Key
	}
	return issue
}

type issueTypeJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Subtask        bool   `json:"subtask"`
	HierarchyLevel int    `json:"hierarchyLevel"`
}

type projectJSON struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Lead struct {
		DisplayName string `json:"displayName"`
	} `json:"lead"`
	IssueTypes []issueTypeJSON `json:"issueTypes"`
}

type userJSON struct {
	AccountID    string            `json:"accountId"`
	DisplayName  string            `json:"displayName"`
	EmailAddress string            `json:"emailAddress"`
	Active       bool              `json:"active"`
	AvatarURLs   map[string]string `json:"avatarUrls"`
}
