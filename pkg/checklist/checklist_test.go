package checklist_test

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/jirabridge/pkg/checklist"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

func TestReleaseTypeOf(t *testing.T) {
	tests := []struct {
		name string
		want checklist.ReleaseType
	}{
		{name: "Payment API v2.3", want: checklist.ReleaseTypeAPI},
		{name: "payment-api-2025-01", want: checklist.ReleaseTypeAPI},
		{name: "RAPID fixes", want: checklist.ReleaseTypeAPI},
		{name: "Web Portal 1.4", want: checklist.ReleaseTypeWeb},
		{name: "", want: checklist.ReleaseTypeWeb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, checklist.ReleaseTypeOf(tt.name)).Equal(tt.want)
		})
	}
}

func TestNew_RowCounts(t *testing.T) {
	t.Run("API release has 24 rows", func(t *testing.T) {
		doc := checklist.New("Core API 3.1")
		gt.V(t, doc.ReleaseType).Equal(checklist.ReleaseTypeAPI)
		gt.A(t, doc.Steps).Length(24)
		for i, s := range doc.Steps {
			gt.V(t, s.Number).Equal(strconv.Itoa(i + 1))
		}
	})

	t.Run("Web release has 23 rows with split step 15", func(t *testing.T) {
		doc := checklist.New("Storefront 2.0")
		gt.V(t, doc.ReleaseType).Equal(checklist.ReleaseTypeWeb)
		gt.A(t, doc.Steps).Length(23)

		numbers := map[string]bool{}
		for _, s := range doc.Steps {
			numbers[s.Number] = true
		}
		gt.True(t, numbers["15.1"])
		gt.True(t, numbers["15.2"])
		gt.False(t, numbers["15"])
		gt.False(t, numbers["23"])
	})

	t.Run("same category yields same shape", func(t *testing.T) {
		a := checklist.New("Billing API 1")
		b := checklist.New("search-api hotfix")
		gt.V(t, a.Steps).Equal(b.Steps)
	})
}

func collectTaskIDs(t *testing.T, doc *checklist.Document, root *model.ADFNode) []int {
	t.Helper()
	table := checklist.ADFTable(root)
	gt.V(t, table).NotNil()
	gt.A(t, table.Content).Length(len(doc.Steps) + 1)

	header := table.Content[0]
	gt.A(t, header.Content).Length(len(checklist.Columns))
	for _, cell := range header.Content {
		gt.V(t, cell.Type).Equal("tableHeader")
	}

	var ids []int
	for i, row := range table.Content[1:] {
		s := doc.Steps[i]
		gt.A(t, row.Content).Length(len(checklist.Columns))
		for j, want := range s.Cells() {
			cell := row.Content[j+2]
			gt.V(t, cell.Type).Equal("tableCell")
			inner := cell.Content[0]
			if want == checklist.Checkbox {
				gt.V(t, inner.Type).Equal("taskList")
				item := inner.Content[0]
				gt.V(t, item.Type).Equal("taskItem")
				gt.V(t, item.Attrs["state"]).Equal("TODO")
				id, err := strconv.Atoi(item.Attrs["localId"].(string))
				gt.NoError(t, err)
				ids = append(ids, id)
			} else {
				gt.V(t, inner.Type).Equal("paragraph")
				gt.A(t, inner.Content).Length(0)
			}
		}
	}
	return ids
}

func assertStrictlyIncreasing(t *testing.T, ids []int) {
	t.Helper()
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not strictly increasing at %d: %v", i, ids)
		}
	}
}

func TestDocument_ADF(t *testing.T) {
	for _, name := range []string{"Gateway API 5", "Landing page 7"} {
		t.Run(name, func(t *testing.T) {
			doc := checklist.New(name)
			root := doc.ADF()
			gt.V(t, root.Type).Equal("doc")
			gt.V(t, root.Version).Equal(1)

			ids := collectTaskIDs(t, doc, root)
			gt.V(t, len(ids)).Equal(doc.CheckboxCount())
			gt.V(t, ids[0]).Equal(1)
			assertStrictlyIncreasing(t, ids)

			raw, err := json.Marshal(root)
			gt.NoError(t, err)
			gt.S(t, string(raw)).Contains(`"type":"taskItem"`)
		})
	}

	t.Run("ticket list appended", func(t *testing.T) {
		root := checklist.New("Web 1", "QA-1", "QA-2").ADF()
		last := root.Content[len(root.Content)-1]
		gt.V(t, last.Type).Equal("bulletList")
		gt.A(t, last.Content).Length(2)
	})
}

var taskIDPattern = regexp.MustCompile(`<ac:task-id>(\d+)</ac:task-id>`)

func TestDocument_StorageHTML(t *testing.T) {
	doc := checklist.New("Mobile API <beta>")
	out, err := doc.StorageHTML()
	gt.NoError(t, err)

	gt.S(t, out).Contains("Mobile API &lt;beta&gt; - Release Checklist")
	gt.V(t, strings.Count(out, "<tr>")).Equal(len(doc.Steps) + 1)
	gt.V(t, strings.Count(out, "<col style=")).Equal(len(checklist.Columns))

	matches := taskIDPattern.FindAllStringSubmatch(out, -1)
	gt.V(t, len(matches)).Equal(doc.CheckboxCount())

	var ids []int
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		gt.NoError(t, err)
		ids = append(ids, id)
	}
	assertStrictlyIncreasing(t, ids)
}

func TestDocument_RowPattern(t *testing.T) {
	doc := checklist.New("Orders API")
	first := doc.Steps[0]
	gt.V(t, first.QA1).Equal(checklist.Checkbox)
	gt.V(t, first.QA2).Equal(checklist.Empty)
	gt.V(t, first.Dev).Equal(checklist.Checkbox)

	signOff := doc.Steps[13]
	gt.V(t, signOff.Number).Equal("14")
	gt.V(t, signOff.Cells()).Equal([]checklist.Cell{checklist.Checkbox, checklist.Checkbox, checklist.Checkbox})
}
