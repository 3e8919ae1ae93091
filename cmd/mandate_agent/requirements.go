package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/mandate-configurator/internal/observability"
	"github.com/jonathan/mandate-configurator/internal/types"
)

var (
	requirementsRole string
	requirementsLang string
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "List the requirements annex of a role",
	RunE:  runRequirements,
}

var catalogLang string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the localized catalog as JSON",
	RunE:  runCatalog,
}

func init() {
	requirementsCmd.Flags().StringVarP(&requirementsRole, "role", "r", "", "Role ID: sys, ops, coach or res (required)")
	requirementsCmd.Flags().StringVarP(&requirementsLang, "lang", "l", "", "Language, de or en (default: de)")
	_ = requirementsCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(requirementsCmd)

	catalogCmd.Flags().StringVarP(&catalogLang, "lang", "l", "", "Language, de or en (default: de)")
	rootCmd.AddCommand(catalogCmd)
}

func runRequirements(cmd *cobra.Command, _ []string) error {
	cat, err := engine()
	if err != nil {
		return err
	}
	lang, err := types.ParseLang(requirementsLang)
	if err != nil {
		return err
	}
	roleID := types.RoleID(requirementsRole)
	if _, ok := cat.Role(roleID); !ok {
		return fmt.Errorf("unknown role: %s", requirementsRole)
	}

	label := cat.ModuleLabel(lang, roleID)
	items := cat.RequirementsFor(lang, roleID)
	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"role_id":      roleID,
			"lang":         lang,
			"label":        label,
			"requirements": items,
		})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRequirements(label, items)
	return nil
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cat, err := engine()
	if err != nil {
		return err
	}
	lang, err := types.ParseLang(catalogLang)
	if err != nil {
		return err
	}
	return printJSON(cmd, cat.Localize(lang))
}
