// Package types provides type definitions for structured data used throughout the mandate configurator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Lang is a supported locale tag.
type Lang string

// Supported languages.
const (
	LangDE Lang = "de"
	LangEN Lang = "en"
)

// DefaultLang is used when a request carries no language.
const DefaultLang = LangDE

// SupportedLangs lists every language the catalog must provide, in display order.
var SupportedLangs = []Lang{LangDE, LangEN}

// ParseLang converts a raw tag into a Lang. The empty string maps to DefaultLang.
func ParseLang(raw string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultLang, nil
	case LangDE:
		return LangDE, nil
	case LangEN:
		return LangEN, nil
	default:
		return "", fmt.Errorf("unsupported language: %q", raw)
	}
}

// Valid reports whether l is one of the supported languages.
func (l Lang) Valid() bool {
	for _, s := range SupportedLangs {
		if l == s {
			return true
		}
	}
	return false
}

// Text is a user-facing string keyed by language.
type Text map[Lang]string

// In resolves the text for lang. A missing translation falls back to the default
// language and then to any present value, in SupportedLangs order.
func (t Text) In(lang Lang) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if s, ok := t[DefaultLang]; ok && s != "" {
		return s
	}
	for _, l := range SupportedLangs {
		if s := t[l]; s != "" {
			return s
		}
	}
	return ""
}

// Empty reports whether no language carries a value.
func (t Text) Empty() bool {
	for _, s := range t {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
