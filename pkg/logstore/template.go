package logstore

import (
	"fmt"
	"strings"

	"github.com/stratushq/stratuswire/pkg/model"
)

type linkTemplatePart interface {
	append(dst *strings.Builder, task *model.Task)
}

type literalPart string

type taskIDPart struct{}

type jobIDPart struct{}

type originalIDPart struct{}

func (p literalPart) append(dst *strings.Builder, _ *model.Task) {
	dst.WriteString(string(p))
}

func (taskIDPart) append(dst *strings.Builder, task *model.Task) {
	dst.WriteString(task.ID)
}

func (jobIDPart) append(dst *strings.Builder, task *model.Task) {
	dst.WriteString(task.JobID)
}

func (originalIDPart) append(dst *strings.Builder, task *model.Task) {
	dst.WriteString(task.OriginalID)
}

// LinkTemplate is a minimal task link template.
//
// Supported placeholders:
// - `{taskId}`: the task's id
// - `{jobId}`: the owning job's id
// - `{originalId}`: the first incarnation's id
//
// Placeholder errors surface at compile time; expansion is total.
type LinkTemplate struct {
	parts []linkTemplatePart
}

// Expand renders the template for a task.
func (t *LinkTemplate) Expand(task *model.Task) string {
	var b strings.Builder
	for _, part := range t.parts {
		part.append(&b, task)
	}
	return b.String()
}

// CompileLinkTemplate parses a template string into a LinkTemplate.
func CompileLinkTemplate(template string) (*LinkTemplate, error) {
	var parts []linkTemplatePart
	s := template
	for len(s) > 0 {
		open := strings.IndexByte(s, '{')
		if open == -1 {
			parts = append(parts, literalPart(s))
			break
		}
		if open > 0 {
			parts = append(parts, literalPart(s[:open]))
			s = s[open:]
		}

		closeIdx := strings.IndexByte(s, '}')
		if closeIdx == -1 {
			return nil, fmt.Errorf("unclosed placeholder in %q", template)
		}

		placeholder := s[1:closeIdx]
		s = s[closeIdx+1:]

		part, err := parseLinkPlaceholder(placeholder)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return &LinkTemplate{parts: parts}, nil
}

func parseLinkPlaceholder(p string) (linkTemplatePart, error) {
	switch p {
	case "taskId":
		return taskIDPart{}, nil
	case "jobId":
		return jobIDPart{}, nil
	case "originalId":
		return originalIDPart{}, nil
	default:
		return nil, fmt.Errorf("unsupported placeholder {%s}", p)
	}
}
