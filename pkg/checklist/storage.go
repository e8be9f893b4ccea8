package checklist

import (
	"bytes"
	_ "embed"
	"html"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed checklist.html.tmpl
var storageTemplateText string

var storageTemplate = template.Must(template.New("checklist").
	Funcs(template.FuncMap{"esc": html.EscapeString}).
	Parse(storageTemplateText))

type storageCell struct {
	Checkbox bool
	ID       int
}

type storageRow struct {
	Number string
	Task   string
	Cells  []storageCell
}

// StorageHTML renders the document in Confluence storage format
func (d *Document) StorageHTML() (string, error) {
	ids := &idSequence{}

	rows := make([]storageRow, 0, len(d.Steps))
	for _, s := range d.Steps {
		row := storageRow{Number: s.Number, Task: s.Task}
		for _, cell := range s.Cells() {
			if cell == Checkbox {
				row.Cells = append(row.Cells, storageCell{Checkbox: true, ID: ids.take()})
			} else {
				row.Cells = append(row.Cells, storageCell{})
			}
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := storageTemplate.Execute(&buf, map[string]any{
		"Title":       d.Title(),
		"ReleaseType": d.ReleaseType,
		"Columns":     Columns,
		"Background":  headerBackground,
		"Rows":        rows,
		"Tickets":     d.Tickets,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render checklist storage format")
	}
	return buf.String(), nil
}
