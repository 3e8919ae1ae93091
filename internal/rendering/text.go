package rendering

import (
	"strings"

	"github.com/jonathan/mandate-configurator/internal/offer"
)

// RenderText renders the contract as plain text. Paragraphs are separated by a
// blank line so SplitBlocks recovers them.
func RenderText(o offer.Offer, opts Options) string {
	doc := buildDocument(o, opts)
	var sb strings.Builder

	sb.WriteString(strings.ToUpper(doc.Title))
	sb.WriteString("\n")
	if doc.Draft != "" {
		sb.WriteString(doc.Draft)
		sb.WriteString("\n")
	}
	if len(doc.Notices) > 0 {
		sb.WriteString("\n")
		sb.WriteString(doc.NoticesTitle)
		sb.WriteString(":\n")
		for _, n := range doc.Notices {
			sb.WriteString("! ")
			sb.WriteString(n)
			sb.WriteString("\n")
		}
	}

	writeBlock(&sb, doc.Parties)
	writeBlock(&sb, doc.Term)
	if doc.Behavior != "" {
		sb.WriteString(doc.BehaviorLabel)
		sb.WriteString(": ")
		sb.WriteString(doc.Behavior)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(doc.SectionTitle)
	sb.WriteString("\n")
	for _, b := range doc.Section {
		writeBlock(&sb, b)
	}

	sb.WriteString("\n")
	sb.WriteString(doc.FeesTitle)
	sb.WriteString("\n")
	for _, row := range doc.Fees {
		sb.WriteString(row.Label)
		sb.WriteString(": ")
		sb.WriteString(row.Value)
		sb.WriteString("\n")
	}

	if len(doc.Annexes) > 0 {
		sb.WriteString("\n")
		sb.WriteString(doc.AnnexesTitle)
		sb.WriteString("\n")
		for _, a := range doc.Annexes {
			sb.WriteString("\n")
			sb.WriteString(a.Title)
			sb.WriteString("\n")
			for _, g := range a.Groups {
				sb.WriteString(g.Label)
				sb.WriteString(":\n")
				for _, item := range g.Items {
					sb.WriteString("  - ")
					sb.WriteString(item)
					sb.WriteString("\n")
				}
			}
		}
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b Block) {
	sb.WriteString("\n")
	sb.WriteString(b.Header)
	sb.WriteString("\n")
	for _, l := range b.Lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	for _, item := range b.Bullets {
		sb.WriteString(bulletPrefix)
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}
