package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"organizerdashboard/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// reportFuncs are available to every report template.
var reportFuncs = map[string]any{
	// sections lists failed section labels in one phrase.
	"sections": func(labels []string) string {
		switch len(labels) {
		case 0:
			return ""
		case 1:
			return labels[0]
		}
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	},
	// inSection keeps the errors reported for one section label.
	"inSection": func(label string, errs []domain.SectionError) []domain.SectionError {
		var out []domain.SectionError
		for _, e := range errs {
			if e.Section.Label() == label {
				out = append(out, e)
			}
		}
		return out
	},
}

// templateRenderer implements domain.EmailTemplateRenderer over the embedded
// templates, parsed once.
type templateRenderer struct {
	html *template.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses the embedded templates. Templates ship with the
// binary, so a parse failure is a programming error and panics.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html: template.Must(template.New("").Funcs(template.FuncMap(reportFuncs)).ParseFS(templateFS, "templates/*.html")),
		text: texttemplate.Must(texttemplate.New("").Funcs(texttemplate.FuncMap(reportFuncs)).ParseFS(templateFS, "templates/*.txt")),
	}
}

// Render executes the named template (e.g. "save_report") with data and
// returns the subject and both bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, templateName+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, templateName+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, htmlBody, buf.String(), nil
}
