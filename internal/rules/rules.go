// Package rules renders a markdown instruction document describing the
// current coordination state: the shared goal, live sessions and the files
// they hold, and the pending task backlog. Other tooling drops the output
// into the project root so every participant works from the same picture.
package rules

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
	"time"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/cohort/internal/conflict"
	"github.com/Iron-Ham/cohort/internal/goal"
	"github.com/Iron-Ham/cohort/internal/ledger"
	"github.com/Iron-Ham/cohort/internal/registry"
)

// SessionView is the per-session data exposed to the template. FilePatterns
// holds only the patterns that compile as globs; malformed entries are
// dropped rather than rendered as guidance nobody can follow.
type SessionView struct {
	Name         string
	Status       string
	FocusTags    []string
	Directories  []string
	FilePatterns []string
	ActiveFiles  []string
	CurrentTask  string
}

// TemplateData contains all data available to rules templates.
type TemplateData struct {
	GeneratedAt time.Time
	Goal        string
	GoalSource  string
	Sessions    []SessionView
	Conflicts   []conflict.FileConflict
	Pending     []ledger.Task
}

// DefaultTemplate is the built-in rules document.
const DefaultTemplate = `# Session Coordination Rules

Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}.

## Project Goal

{{if .Goal}}{{.Goal}}{{if .GoalSource}}

_Last set via {{.GoalSource}}._{{end}}{{else}}_No goal has been set._{{end}}

## Active Sessions
{{if not .Sessions}}
_No live sessions._
{{else}}{{range .Sessions}}
### {{.Name}} ({{.Status}})
{{if .CurrentTask}}
Working on: {{.CurrentTask}}
{{end}}{{if .FocusTags}}
- Focus: {{range $i, $t := .FocusTags}}{{if $i}}, {{end}}{{$t}}{{end}}{{end}}{{if .Directories}}
- Directories: {{range $i, $d := .Directories}}{{if $i}}, {{end}}` + "`{{$d}}`" + `{{end}}{{end}}{{if .FilePatterns}}
- File patterns: {{range $i, $p := .FilePatterns}}{{if $i}}, {{end}}` + "`{{$p}}`" + `{{end}}{{end}}{{if .ActiveFiles}}
- Holding: {{range $i, $f := .ActiveFiles}}{{if $i}}, {{end}}` + "`{{$f}}`" + `{{end}}{{end}}
{{end}}{{end}}
## File Conflicts
{{if not .Conflicts}}
_None detected._
{{else}}{{range .Conflicts}}
- ` + "`{{.File}}`" + ` held by {{range $i, $s := .Sessions}}{{if $i}}, {{end}}{{$s}}{{end}}{{end}}
{{end}}
## Pending Tasks
{{if not .Pending}}
_Backlog is empty._
{{else}}{{range .Pending}}
- [{{.Priority}}] {{.Title}}{{if .Description}} — {{.Description}}{{end}}{{end}}
{{end}}
## Coordination Protocol

1. Lock a file before editing it; release it when done.
2. Treat a lock conflict as a signal to coordinate, not a hard stop.
3. Keep your session's current task up to date.
4. Complete ledger tasks with a note describing what changed.
`

// Render renders tmplStr with the given data. An empty tmplStr uses
// DefaultTemplate.
func Render(tmplStr string, data TemplateData) (string, error) {
	if tmplStr == "" {
		tmplStr = DefaultTemplate
	}
	tmpl, err := template.New("rules").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing rules template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering rules template: %w", err)
	}
	return buf.String(), nil
}

// Build assembles TemplateData from the live coordination state.
func Build(sessions []registry.Session, g *goal.Goal, pending []ledger.Task) TemplateData {
	data := TemplateData{
		GeneratedAt: time.Now(),
		Conflicts:   conflict.Detect(sessions),
		Pending:     pending,
	}
	if g != nil {
		data.Goal = g.Text
		data.GoalSource = g.Source
	}

	for _, s := range sessions {
		data.Sessions = append(data.Sessions, SessionView{
			Name:         s.Name,
			Status:       string(s.Status),
			FocusTags:    s.FocusTags,
			Directories:  s.Directories,
			FilePatterns: validPatterns(s.FilePatterns),
			ActiveFiles:  s.ActiveFiles,
			CurrentTask:  s.CurrentTask,
		})
	}
	sort.Slice(data.Sessions, func(i, j int) bool {
		return data.Sessions[i].Name < data.Sessions[j].Name
	})

	return data
}

// validPatterns filters out entries that do not compile as globs.
func validPatterns(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if _, err := glob.Compile(p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
