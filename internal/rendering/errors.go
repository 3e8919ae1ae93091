// Package rendering turns an assembled offer into a downloadable contract: plain
// text or an HTML page that the pdf package can print.
package rendering

import (
	"fmt"

	"github.com/jonathan/mandate-configurator/internal/types"
)

// TemplateError reports a contract template that could not be loaded, parsed or
// executed. Path is empty for the embedded template.
type TemplateError struct {
	Path  string
	Stage string
	Cause error
}

func (e *TemplateError) Error() string {
	src := "embedded contract template"
	if e.Path != "" {
		src = "contract template " + e.Path
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s failed", src, e.Stage)
	}
	return fmt.Sprintf("%s: %s failed: %v", src, e.Stage, e.Cause)
}

func (e *TemplateError) Unwrap() error { return e.Cause }

// RenderError reports an offer that cannot become a contract.
type RenderError struct {
	Lang   types.Lang
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render %s contract: %s", e.Lang, e.Reason)
}
