package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/mandate-configurator/internal/observability"
	"github.com/jonathan/mandate-configurator/internal/pricing"
)

var priceStateFile string

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Compute the price breakdown of a selection",
	RunE:  runPrice,
}

func init() {
	priceCmd.Flags().StringVarP(&priceStateFile, "state", "s", "", "Path to selection state JSON (default: stdin)")
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, _ []string) error {
	cat, err := engine()
	if err != nil {
		return err
	}
	state, err := readState(cmd, priceStateFile, "")
	if err != nil {
		return err
	}

	breakdown := pricing.PriceSelection(cat, state)
	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"price":    breakdown,
			"currency": cat.Commercial.Currency,
		})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintPrice(breakdown, cat.Commercial.Currency)
	return nil
}
