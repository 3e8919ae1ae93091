package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/mandate-configurator/internal/compose"
	"github.com/jonathan/mandate-configurator/internal/offer"
	"github.com/jonathan/mandate-configurator/internal/observability"
)

var (
	composeStateFile string
	composeLang      string
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose the scope-of-services section of a selection",
	RunE:  runCompose,
}

var (
	offerStateFile string
	offerLang      string
	offerBilingual bool
)

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Assemble the full offer of a selection as JSON",
	Long:  "Assembles validation, price, composed section and requirement annexes. With --bilingual the offer is produced in every supported language.",
	RunE:  runOffer,
}

func init() {
	composeCmd.Flags().StringVarP(&composeStateFile, "state", "s", "", "Path to selection state JSON (default: stdin)")
	composeCmd.Flags().StringVarP(&composeLang, "lang", "l", "", "Section language, de or en (default: from state)")
	rootCmd.AddCommand(composeCmd)

	offerCmd.Flags().StringVarP(&offerStateFile, "state", "s", "", "Path to selection state JSON (default: stdin)")
	offerCmd.Flags().StringVarP(&offerLang, "lang", "l", "", "Offer language, de or en (default: from state)")
	offerCmd.Flags().BoolVar(&offerBilingual, "bilingual", false, "Assemble the offer in every supported language")
	rootCmd.AddCommand(offerCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	cat, err := engine()
	if err != nil {
		return err
	}
	state, err := readState(cmd, composeStateFile, composeLang)
	if err != nil {
		return err
	}

	section := compose.ComposeFromState(cat, state)
	if jsonOutput {
		return printJSON(cmd, section)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSection(section)
	return nil
}

func runOffer(cmd *cobra.Command, _ []string) error {
	cat, err := engine()
	if err != nil {
		return err
	}
	state, err := readState(cmd, offerStateFile, offerLang)
	if err != nil {
		return err
	}

	if offerBilingual {
		bundle, err := offer.AssembleBilingual(commandContext(cmd), cat, state)
		if err != nil {
			return err
		}
		return printJSON(cmd, bundle)
	}
	return printJSON(cmd, offer.Assemble(cat, state))
}
