package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/jirabridge/pkg/checklist"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

func TestRenderChecklist(t *testing.T) {
	color.NoColor = true

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		doc := checklist.New("Orders API 4.2", "QA-1", "QA-2")
		gt.NoError(t, renderChecklist(&buf, doc, "text"))

		out := buf.String()
		gt.S(t, out).Contains("Orders API 4.2 - Release Checklist (API release)")
		gt.S(t, out).Contains("Tickets: QA-1, QA-2")
		gt.S(t, out).Contains("24 steps")
		gt.V(t, strings.Count(out, "[ ]")).Equal(doc.CheckboxCount())
	})

	t.Run("adf", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, renderChecklist(&buf, checklist.New("Shop 1.0"), "ADF"))

		var node model.ADFNode
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &node))
		gt.V(t, node.Type).Equal("doc")
	})

	t.Run("storage", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, renderChecklist(&buf, checklist.New("Shop 1.0"), "storage"))
		gt.S(t, buf.String()).Contains("<table")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := renderChecklist(&bytes.Buffer{}, checklist.New("Shop 1.0"), "pdf")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}
