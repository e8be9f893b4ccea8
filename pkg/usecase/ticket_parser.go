package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

const maxTitleLength = 255

const (
	sectionDescription = "description"
	sectionSteps       = "steps"
	sectionExpected    = "expected"
	sectionActual      = "actual"
	sectionEnvironment = "environment"
	sectionPriority    = "priority"
	sectionLabels      = "labels"
)

var (
	headingPattern = regexp.MustCompile(`(?i)^(?:#+\s*)?(?:\*\*)?(steps to reproduce|steps|reproduce|các bước tái hiện|các bước|expected results?|expected|kết quả mong đợi|actual results?|actual|kết quả thực tế|environment|env|môi trường|description|details|mô tả|priority|độ ưu tiên|labels?)(?:\*\*)?\s*(?::(?:\*\*)?\s*(.*))?$`)
	titlePrefixPattern = regexp.MustCompile(`(?i)^(?:title|summary|tiêu đề)\s*:\s*`)
	tagPattern         = regexp.MustCompile(`^\[([^\]]+)\]\s*`)
	stepPrefixPattern  = regexp.MustCompile(`(?i)^(?:(?:step|bước)\s*)?(?:\d+[.):]|[-*•+])\s*`)
)

var sectionAliases = map[string]string{
	"steps to reproduce": sectionSteps,
	"steps":              sectionSteps,
	"reproduce":          sectionSteps,
	"các bước tái hiện":  sectionSteps,
	"các bước":           sectionSteps,
	"expected result":    sectionExpected,
	"expected results":   sectionExpected,
	"expected":           sectionExpected,
	"kết quả mong đợi":   sectionExpected,
	"actual result":      sectionActual,
	"actual results":     sectionActual,
	"actual":             sectionActual,
	"kết quả thực tế":    sectionActual,
	"environment":        sectionEnvironment,
	"env":                sectionEnvironment,
	"môi trường":         sectionEnvironment,
	"description":        sectionDescription,
	"details":            sectionDescription,
	"mô tả":              sectionDescription,
	"priority":           sectionPriority,
	"độ ưu tiên":         sectionPriority,
	"label":              sectionLabels,
	"labels":             sectionLabels,
}

var issueTypeTags = map[string]string{
	"bug":         "Bug",
	"defect":      "Bug",
	"lỗi":         "Bug",
	"task":        "Task",
	"story":       "Story",
	"improvement": "Improvement",
	"enhancement": "Improvement",
	"epic":        "Epic",
}

var priorityNames = map[string]string{
	"highest":  "Highest",
	"critical": "Highest",
	"blocker":  "Highest",
	"high":     "High",
	"urgent":   "High",
	"major":    "High",
	"medium":   "Medium",
	"normal":   "Medium",
	"low":      "Low",
	"minor":    "Low",
	"lowest":   "Lowest",
	"trivial":  "Lowest",
}

// normalizePriority maps a priority keyword to the standard Jira priority
// name, or returns "" when the keyword is unknown
func normalizePriority(s string) string {
	return priorityNames[strings.ToLower(strings.TrimSpace(s))]
}

// ParseTicketText extracts ticket fields from a free-text bug report.
//
// The first line that is not a section heading is the title. It may carry a
// "Title:" prefix and leading [Tag] markers naming the issue type, the
// priority or extra labels. Headings such as "Steps to reproduce",
// "Expected", "Actual" and "Environment" (English or Vietnamese, with or
// without a colon) start sections; text after the colon belongs to the
// section. Lines outside any section form the description.
func ParseTicketText(text string) *model.TicketInput {
	t := &model.TicketInput{Text: text}

	var (
		section  string
		desc     []string
		expected []string
		actual   []string
		env      []string
	)

	add := func(section, line string) {
		switch section {
		case sectionSteps:
			if step := strings.TrimSpace(stepPrefixPattern.ReplaceAllString(line, "")); step != "" {
				t.Steps = append(t.Steps, step)
			}
		case sectionExpected:
			expected = append(expected, line)
		case sectionActual:
			actual = append(actual, line)
		case sectionEnvironment:
			env = append(env, line)
		default:
			desc = append(desc, line)
		}
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			name := sectionAliases[strings.ToLower(m[1])]
			rest := strings.TrimSpace(m[2])

			switch name {
			case sectionPriority:
				if p := normalizePriority(rest); p != "" {
					t.Priority = p
				} else if rest != "" {
					t.Priority = rest
				}
			case sectionLabels:
				t.Labels = append(t.Labels, splitLabels(rest)...)
			default:
				section = name
				if rest != "" {
					add(section, rest)
				}
			}
			continue
		}

		if t.Title == "" && section == "" {
			if title := parseTitleLine(line, t); title != "" {
				t.Title = title
			}
			continue
		}

		add(section, line)
	}

	if t.Title == "" && len(desc) > 0 {
		t.Title, desc = desc[0], desc[1:]
	}
	t.Title = truncateTitle(t.Title)

	t.Description = strings.Join(desc, "\n")
	t.Expected = strings.Join(expected, "\n")
	t.Actual = strings.Join(actual, "\n")
	t.Environment = strings.Join(env, "\n")
	return t
}

// parseTitleLine strips the title prefix and [Tag] markers, applying tags
// to t
func parseTitleLine(line string, t *model.TicketInput) string {
	line = titlePrefixPattern.ReplaceAllString(line, "")

	for {
		m := tagPattern.FindStringSubmatch(line)
		if m == nil {
			break
		}
		line = line[len(m[0]):]

		tag := strings.TrimSpace(m[1])
		lower := strings.ToLower(tag)
		switch {
		case issueTypeTags[lower] != "":
			t.IssueType = issueTypeTags[lower]
		case normalizePriority(lower) != "":
			t.Priority = normalizePriority(lower)
		default:
			t.Labels = append(t.Labels, splitLabels(tag)...)
		}
	}

	return strings.TrimSpace(line)
}

func splitLabels(s string) []string {
	var labels []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if l := strings.Join(strings.Fields(strings.ToLower(f)), "-"); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

func truncateTitle(title string) string {
	if len(title) <= maxTitleLength {
		return title
	}
	// cut on a rune boundary, leaving room for the ellipsis
	cut := maxTitleLength - len("...")
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return title[:cut] + "..."
}
