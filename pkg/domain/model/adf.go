package model

// ADFNode is a node of an Atlassian Document Format tree
type ADFNode struct {
	Type    string         `json:"type"`
	Version int            `json:"version,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*ADFNode     `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []*ADFMark     `json:"marks,omitempty"`
}

// ADFMark is a text decoration
type ADFMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// ADFDoc returns a version 1 document root
func ADFDoc(content ...*ADFNode) *ADFNode {
	return &ADFNode{Type: "doc", Version: 1, Content: content}
}

// ADFText returns a text node, optionally marked
func ADFText(text string, marks ...string) *ADFNode {
	node := &ADFNode{Type: "text", Text: text}
	for _, m := range marks {
		node.Marks = append(node.Marks, &ADFMark{Type: m})
	}
	return node
}

// ADFParagraph returns a paragraph. Empty text yields an empty paragraph,
// which ADF requires in otherwise blank cells.
func ADFParagraph(text string, marks ...string) *ADFNode {
	p := &ADFNode{Type: "paragraph"}
	if text != "" {
		p.Content = []*ADFNode{ADFText(text, marks...)}
	}
	return p
}

// ADFHeading returns a heading of the given level
func ADFHeading(level int, text string) *ADFNode {
	return &ADFNode{
		Type:    "heading",
		Attrs:   map[string]any{"level": level},
		Content: []*ADFNode{ADFText(text)},
	}
}

// ADFOrderedList returns a numbered list of plain text items
func ADFOrderedList(items []string) *ADFNode {
	list := &ADFNode{Type: "orderedList"}
	for _, item := range items {
		list.Content = append(list.Content, &ADFNode{
			Type:    "listItem",
			Content: []*ADFNode{ADFParagraph(item)},
		})
	}
	return list
}

// ADFBulletList returns a bullet list of plain text items
func ADFBulletList(items []string) *ADFNode {
	list := &ADFNode{Type: "bulletList"}
	for _, item := range items {
		list.Content = append(list.Content, &ADFNode{
			Type:    "listItem",
			Content: []*ADFNode{ADFParagraph(item)},
		})
	}
	return list
}

// ADFLink returns a paragraph holding a single hyperlink
func ADFLink(text, href string) *ADFNode {
	return &ADFNode{
		Type: "paragraph",
		Content: []*ADFNode{{
			Type: "text",
			Text: text,
			Marks: []*ADFMark{{
				Type:  "link",
				Attrs: map[string]any{"href": href},
			}},
		}},
	}
}
