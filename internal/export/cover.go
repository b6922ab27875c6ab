package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/jobradar/jobradar/internal/pipeline"
)

// Track selects which profile fields fill the cover-note template.
type Track string

const (
	TrackBackend Track = "backend"
	TrackMobile  Track = "mobile"
)

// Profile carries the applicant fields substituted into cover notes.
type Profile struct {
	Name          string
	Years         int
	BackendImpact string
	MobileImpact  string
}

// DefaultCoverTemplate is used when no template file is configured.
const DefaultCoverTemplate = `Hi {{.Name}},

I'm applying for the {{.Track}} role. I bring {{.Years}} years of experience
focused on {{.Focus}}. {{.Impact}}

Stack: {{.Stack}}

What drew me to this role: {{.WhyCompany}} — and your top match signal was
"{{.TopReason}}". I can help by {{.How}}.

Best,
{{.YourName}}
`

type coverView struct {
	Name       string
	Track      string
	Years      int
	Focus      string
	Impact     string
	Stack      string
	WhyCompany string
	How        string
	YourName   string
	TopReason  string
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// CoverNote renders a track-specific cover note for one shortlisted
// posting using a template with named placeholders.
func CoverNote(item *pipeline.Scored, track Track, tmplText string, profile Profile) (string, error) {
	tmpl, err := template.New("cover").Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("parse cover template: %w", err)
	}

	view := coverView{
		Name:       "Hiring Team",
		Years:      profile.Years,
		YourName:   profile.Name,
		WhyCompany: fmt.Sprintf("%s %s", item.Job.Company, item.Job.Title),
		TopReason:  item.Score.TopReason(),
	}

	switch track {
	case TrackMobile:
		view.Track = "Mobile (React Native)"
		view.Focus = "cross-platform mobile apps and native modules"
		view.Impact = profile.MobileImpact
		view.Stack = "React Native, TypeScript, native iOS modules, Apple Pay/Google Wallet, analytics"
		view.How = "accelerating mobile delivery and quality"
	default:
		view.Track = "Backend"
		view.Focus = "scalable APIs, auth, and payments"
		view.Impact = profile.BackendImpact
		view.Stack = "Node.js, Express, TypeScript, PostgreSQL/Prisma, Redis, Docker, CI/CD"
		view.How = "shipping reliable, well-tested services and improving DX/CI"
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render cover template: %w", err)
	}
	return b.String(), nil
}

// WriteCoverNotes renders one note per shortlist entry and writes it as
// cover-<track>-<company>-<id>.txt with unsafe characters replaced.
func WriteCoverNotes(items []*pipeline.Scored, track Track, tmplText, outDir string, profile Profile) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, item := range items {
		note, err := CoverNote(item, track, tmplText, profile)
		if err != nil {
			return written, err
		}

		name := fmt.Sprintf("cover-%s-%s-%s.txt", track, item.Job.Company, item.Job.ID)
		name = unsafeFilenameChars.ReplaceAllString(name, "_")

		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(note), 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
