package confluence

type links struct {
	Base  string `json:"base"`
	WebUI string `json:"webui"`
	Next  string `json:"next"`
}

type spacesResponse struct {
	Results []struct {
		ID   int64  `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"results"`
	Start int   `json:"start"`
	Limit int   `json:"limit"`
	Size  int   `json:"size"`
	Links links `json:"_links"`
}

type spaceRef struct {
	Key string `json:"key"`
}

type ancestorRef struct {
	ID string `json:"id"`
}

type bodyValue struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type contentRequest struct {
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Space     spaceRef             `json:"space"`
	Ancestors []ancestorRef        `json:"ancestors,omitempty"`
	Body      map[string]bodyValue `json:"body"`
}

type contentResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Links links  `json:"_links"`
}
