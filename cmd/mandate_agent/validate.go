package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/mandate-configurator/internal/observability"
	"github.com/jonathan/mandate-configurator/internal/validation"
)

var (
	validateStateFile string
	validateLang      string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a selection against the combination rules",
	Long:  "Evaluates the behavior, psychosocial depth and caring choices of a selection state. Exits non-zero when the combination is blocked.",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateStateFile, "state", "s", "", "Path to selection state JSON (default: stdin)")
	validateCmd.Flags().StringVarP(&validateLang, "lang", "l", "", "Message language, de or en (default: from state)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cat, err := engine()
	if err != nil {
		return err
	}
	state, err := readState(cmd, validateStateFile, validateLang)
	if err != nil {
		return err
	}

	result := validation.ValidateSelection(cat, state)
	localized := result.Localize(state.Lang)
	if jsonOutput {
		if err := printJSON(cmd, localized); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(localized)
	}

	if result.Blocked() {
		return errBlocked
	}
	return nil
}
