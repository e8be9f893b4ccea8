package checklist

import (
	"fmt"
	"strconv"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

// ADF renders the document as an Atlassian Document Format tree
func (d *Document) ADF() *model.ADFNode {
	ids := &idSequence{}

	widths := make([]any, len(Columns))
	header := &model.ADFNode{Type: "tableRow"}
	for i, col := range Columns {
		widths[i] = col.Width
		header.Content = append(header.Content, &model.ADFNode{
			Type: "tableHeader",
			Attrs: map[string]any{
				"colwidth":   []int{col.Width},
				"background": headerBackground,
			},
			Content: []*model.ADFNode{model.ADFParagraph(col.Title, "strong")},
		})
	}

	table := &model.ADFNode{
		Type: "table",
		Attrs: map[string]any{
			"isNumberColumnEnabled": false,
			"layout":                "default",
			"width":                 tableWidth(),
		},
		Content: []*model.ADFNode{header},
	}

	for _, s := range d.Steps {
		row := &model.ADFNode{
			Type: "tableRow",
			Content: []*model.ADFNode{
				textCell(s.Number, Columns[0].Width),
				textCell(s.Task, Columns[1].Width),
			},
		}
		for i, cell := range s.Cells() {
			width := Columns[i+2].Width
			if cell == Checkbox {
				row.Content = append(row.Content, taskCell(ids.take(), width))
			} else {
				row.Content = append(row.Content, textCell("", width))
			}
		}
		table.Content = append(table.Content, row)
	}

	doc := model.ADFDoc(
		model.ADFHeading(2, d.Title()),
		&model.ADFNode{
			Type: "paragraph",
			Content: []*model.ADFNode{
				model.ADFText("Release type: "),
				model.ADFText(string(d.ReleaseType), "strong"),
			},
		},
		table,
	)

	if len(d.Tickets) > 0 {
		doc.Content = append(doc.Content,
			model.ADFHeading(3, "Tickets"),
			model.ADFBulletList(d.Tickets),
		)
	}

	return doc
}

// ADFTable returns the checklist table node of the rendered document
func ADFTable(doc *model.ADFNode) *model.ADFNode {
	for _, node := range doc.Content {
		if node.Type == "table" {
			return node
		}
	}
	return nil
}

func tableWidth() int {
	w := 0
	for _, col := range Columns {
		w += col.Width
	}
	return w
}

func textCell(text string, width int) *model.ADFNode {
	return &model.ADFNode{
		Type:    "tableCell",
		Attrs:   map[string]any{"colwidth": []int{width}},
		Content: []*model.ADFNode{model.ADFParagraph(text)},
	}
}

func taskCell(id, width int) *model.ADFNode {
	return &model.ADFNode{
		Type:  "tableCell",
		Attrs: map[string]any{"colwidth": []int{width}},
		Content: []*model.ADFNode{{
			Type:  "taskList",
			Attrs: map[string]any{"localId": fmt.Sprintf("list-%d", id)},
			Content: []*model.ADFNode{{
				Type: "taskItem",
				Attrs: map[string]any{
					"localId": strconv.Itoa(id),
					"state":   "TODO",
				},
			}},
		}},
	}
}
