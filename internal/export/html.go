package export

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/jobradar/jobradar/internal/pipeline"
)

var htmlTemplate = template.Must(template.New("shortlist").Parse(`<!doctype html><meta charset="utf-8"/>
<h1>Shortlist {{.DateTag}}</h1>
<ul>
{{- range .Items}}
  <li>
    <strong>{{.Score.Total}}</strong> · <a href="{{.Job.URL}}">{{.Job.Title}}</a> @ {{.Job.Company}}
    {{- if .Job.SalaryEURMin}} · €{{.Job.SalaryEURMin}}{{if .Job.SalaryEURMax}}–€{{.Job.SalaryEURMax}}{{end}}{{end}}
    <br><small>{{.Job.Source}} · {{.Job.CreatedAt}}</small>
    <details><summary>Why this score?</summary><ul>
    {{- range .Score.Details}}
      <li><code>{{printf "%+d" .Delta}}</code> {{.Reason}}</li>
    {{- end}}
    </ul></details>
  </li>
{{- end}}
</ul>
`))

// WriteHTML writes shortlist-<dateTag>.html into outDir.
func WriteHTML(shortlist []*pipeline.Scored, outDir, dateTag string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, fmt.Sprintf("shortlist-%s.html", dateTag))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data := struct {
		DateTag string
		Items   []*pipeline.Scored
	}{DateTag: dateTag, Items: shortlist}

	return path, htmlTemplate.Execute(file, data)
}
