package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/config"
	"github.com/jonathan/mandate-configurator/internal/offer"
	"github.com/jonathan/mandate-configurator/internal/pdf"
	"github.com/jonathan/mandate-configurator/internal/rendering"
	"github.com/jonathan/mandate-configurator/internal/types"
)

var (
	renderStateFile  string
	renderLang       string
	renderFormat     string
	renderOutputFile string
	renderTemplate   string
	renderClient     string
	renderContractor string
	renderStartDate  string
)

// newPDFRenderer builds the PDF printer from the configuration.
var newPDFRenderer = func(cfg *config.Config) pdf.Renderer {
	return pdf.NewChromeRenderer(pdf.WithTimeout(cfg.PDFTimeout), pdf.WithExecPath(cfg.ChromePath))
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the contract of a selection as text, HTML or PDF",
	Long: "Renders the consulting agreement with its requirement annexes. " +
		"Blocked selections are refused. PDF output needs a local Chrome/Chromium and --out.",
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderStateFile, "state", "s", "", "Path to selection state JSON (default: stdin)")
	renderCmd.Flags().StringVarP(&renderLang, "lang", "l", "", "Contract language, de or en (default: from state)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "text", "Output format: text, html or pdf")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output file (default: stdout; required for pdf)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Path to HTML template (default: embedded template)")
	renderCmd.Flags().StringVar(&renderClient, "client", "", "Value for the {client} placeholder")
	renderCmd.Flags().StringVar(&renderContractor, "contractor", "", "Value for the {contractor} placeholder")
	renderCmd.Flags().StringVar(&renderStartDate, "start-date", "", "Value for the {startDate} placeholder")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderFormat != "text" && renderFormat != "html" && renderFormat != "pdf" {
		return fmt.Errorf("invalid format %q (must be text, html or pdf)", renderFormat)
	}
	if renderFormat == "pdf" && renderOutputFile == "" {
		return fmt.Errorf("--out is required for pdf output")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	state, err := readState(cmd, renderStateFile, renderLang)
	if err != nil {
		return err
	}

	o, err := confirmable(cat, state)
	if err != nil {
		return err
	}
	opts := rendering.Options{
		Placeholders: renderPlaceholders(),
		TemplatePath: renderTemplate,
	}

	var out []byte
	switch renderFormat {
	case "text":
		out = []byte(rendering.RenderText(o, opts))
	case "html", "pdf":
		html, err := rendering.RenderHTML(o, opts)
		if err != nil {
			return fmt.Errorf("failed to render contract: %w", err)
		}
		out = []byte(html)
		if renderFormat == "pdf" {
			out, err = newPDFRenderer(cfg).Render(commandContext(cmd), html)
			if err != nil {
				return fmt.Errorf("failed to print contract: %w", err)
			}
		}
	}

	if renderOutputFile == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	if err := writeOutput(renderOutputFile, out); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully rendered %s contract\nOutput: %s\n", renderFormat, renderOutputFile)
	return nil
}

// confirmable assembles the offer and refuses blocked selections.
func confirmable(cat *catalog.Catalog, state types.SelectionState) (offer.Offer, error) {
	o := offer.Assemble(cat, state)
	if !o.CanConfirm() {
		return offer.Offer{}, fmt.Errorf("%w: %v", errBlocked, o.Validation.Messages)
	}
	return o, nil
}

func renderPlaceholders() map[string]string {
	placeholders := make(map[string]string, 3)
	for key, v := range map[string]string{
		"client":     renderClient,
		"contractor": renderContractor,
		"startDate":  renderStartDate,
	} {
		if v != "" {
			placeholders[key] = v
		}
	}
	return placeholders
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
