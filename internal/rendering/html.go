package rendering

import (
	_ "embed"
	"html/template"
	"os"
	"strings"

	"github.com/jonathan/mandate-configurator/internal/offer"
)

//go:embed contract.html.tmpl
var contractTemplate string

// RenderHTML renders the contract page. Selection text and notes are escaped by
// html/template.
func RenderHTML(o offer.Offer, opts Options) (string, error) {
	if len(o.Section.Paragraphs) == 0 {
		return "", &RenderError{Lang: o.Lang, Reason: "offer has no composed section"}
	}

	tmpl, err := parseTemplate(opts.TemplatePath)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildDocument(o, opts)); err != nil {
		return "", &TemplateError{Path: opts.TemplatePath, Stage: "execute", Cause: err}
	}
	return result.String(), nil
}

// parseTemplate parses the template at path, or the embedded one when path is empty.
func parseTemplate(path string) (*template.Template, error) {
	content := contractTemplate
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &TemplateError{Path: path, Stage: "read", Cause: err}
		}
		content = string(data)
	}

	tmpl, err := template.New("contract").Parse(content)
	if err != nil {
		return nil, &TemplateError{Path: path, Stage: "parse", Cause: err}
	}
	return tmpl, nil
}
