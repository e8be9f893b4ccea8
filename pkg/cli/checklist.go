package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/checklist"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

const (
	checklistFormatText    = "text"
	checklistFormatADF     = "adf"
	checklistFormatStorage = "storage"
)

func cmdChecklist() *cli.Command {
	var (
		format  string
		tickets []string
	)

	return &cli.Command{
		Name:      "checklist",
		Aliases:   []string{"c"},
		Usage:     "Print the release checklist of a release",
		ArgsUsage: "RELEASE_NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format (text, adf, storage)",
				Value:       checklistFormatText,
				Destination: &format,
			},
			&cli.StringSliceFlag{
				Name:        "ticket",
				Aliases:     []string{"t"},
				Usage:       "Jira issue key included in the release (repeatable)",
				Destination: &tickets,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if name == "" {
				return goerr.Wrap(model.ErrInvalidInput, "release name is required")
			}

			return renderChecklist(os.Stdout, checklist.New(name, tickets...), format)
		},
	}
}

func renderChecklist(w io.Writer, doc *checklist.Document, format string) error {
	switch strings.ToLower(format) {
	case checklistFormatText, "":
		return printChecklist(w, doc)

	case checklistFormatADF:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc.ADF()); err != nil {
			return goerr.Wrap(err, "failed to encode ADF document")
		}
		return nil

	case checklistFormatStorage:
		html, err := doc.StorageHTML()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, html)
		return err

	default:
		return goerr.Wrap(model.ErrInvalidInput, "unsupported format", goerr.V("format", format))
	}
}

func printChecklist(w io.Writer, doc *checklist.Document) error {
	title := color.New(color.FgCyan, color.Bold)
	number := color.New(color.FgYellow)
	box := color.New(color.FgGreen)
	dim := color.New(color.FgHiBlack)

	if _, err := title.Fprintf(w, "%s (%s release)\n\n", doc.Title(), doc.ReleaseType); err != nil {
		return goerr.Wrap(err, "failed to write checklist")
	}

	var roles []string
	for _, col := range checklist.Columns[2:] {
		roles = append(roles, fmt.Sprintf("%-4s", col.Title))
	}
	fmt.Fprintf(w, "%-6s %s  %s\n", "Step", strings.Join(roles, " "), "Task")

	for _, s := range doc.Steps {
		number.Fprintf(w, "%-6s ", s.Number)
		for _, cell := range s.Cells() {
			if cell == checklist.Checkbox {
				box.Fprint(w, "[ ]  ")
			} else {
				dim.Fprint(w, " -   ")
			}
		}
		fmt.Fprintf(w, " %s\n", s.Task)
	}

	if len(doc.Tickets) > 0 {
		fmt.Fprintf(w, "\nTickets: %s\n", strings.Join(doc.Tickets, ", "))
	}
	dim.Fprintf(w, "\n%d steps, %d checkboxes\n", len(doc.Steps), doc.CheckboxCount())
	return nil
}
