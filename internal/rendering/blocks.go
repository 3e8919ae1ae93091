package rendering

import (
	"regexp"
	"strings"
)

var blockSep = regexp.MustCompile(`\n{2,}`)

const bulletPrefix = "• "

// SplitBlocks splits a composed paragraph on runs of two or more newlines. Empty
// blocks are dropped.
func SplitBlocks(paragraph string) []string {
	parts := blockSep.Split(paragraph, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Block is a paragraph split into its display parts.
type Block struct {
	Header  string
	Lines   []string
	Bullets []string
}

// ParseBlock splits a paragraph into header, prose lines and bullet items.
func ParseBlock(paragraph string) Block {
	parts := SplitBlocks(paragraph)
	if len(parts) == 0 {
		return Block{}
	}
	b := Block{Header: parts[0]}
	for _, part := range parts[1:] {
		for _, line := range strings.Split(part, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, bulletPrefix):
				b.Bullets = append(b.Bullets, strings.TrimPrefix(line, bulletPrefix))
			default:
				b.Lines = append(b.Lines, line)
			}
		}
	}
	return b
}
