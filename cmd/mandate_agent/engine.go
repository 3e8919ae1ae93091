package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/config"
	"github.com/jonathan/mandate-configurator/internal/schemas"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// errBlocked makes commands exit non-zero on a blocked selection.
var errBlocked = errors.New("selection is blocked and cannot be confirmed")

// loadConfig loads the configuration and applies the --catalog override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	return cfg, nil
}

// loadCatalog opens the configured catalog, falling back to the embedded one.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cfg.BaseDayRate > 0 {
		cat = cat.WithBaseDayRate(cfg.BaseDayRate)
	}
	return cat, nil
}

// engine loads config and catalog for the one-shot commands.
func engine() (*catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return loadCatalog(cfg)
}

// readState decodes a selection state from path, or from stdin when path is
// empty or "-". A non-empty lang overrides the language of the state.
func readState(cmd *cobra.Command, path, lang string) (types.SelectionState, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return types.SelectionState{}, fmt.Errorf("failed to read selection state: %w", err)
	}

	state, err := schemas.DecodeSelectionState(data)
	if err != nil {
		return types.SelectionState{}, err
	}
	if lang != "" {
		l, err := types.ParseLang(lang)
		if err != nil {
			return types.SelectionState{}, err
		}
		state.Lang = l
	}
	return state, nil
}

// printJSON writes v indented to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// commandContext returns the command's context, or a background context when
// the command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
