package rendering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/offer"
)

// document is the offer laid out as contract parts, with placeholders resolved.
type document struct {
	Lang          string
	Title         string
	Draft         string
	NoticesTitle  string
	Notices       []string
	Parties       Block
	Term          Block
	BehaviorLabel string
	Behavior      string
	SectionTitle  string
	Section       []Block
	FeesTitle     string
	Fees          []feeRow
	AnnexesTitle  string
	Annexes       []annexView
}

type feeRow struct {
	Label string
	Value string
}

type annexView struct {
	Title  string
	Groups []groupView
}

type groupView struct {
	Label string
	Items []string
}

func buildDocument(o offer.Offer, opts Options) document {
	c := captionsFor(o.Lang)
	r := placeholderReplacer(o, opts)

	doc := document{
		Lang:          string(o.Lang),
		Title:         c.Title,
		NoticesTitle:  c.Notices,
		Notices:       o.Validation.Messages,
		Parties:       Block{Header: c.Parties, Lines: strings.Split(r.Replace(c.PartiesBody), "\n")},
		Term:          Block{Header: c.Term, Lines: []string{r.Replace(c.TermBody)}},
		BehaviorLabel: c.Behavior,
		Behavior:      o.Behavior,
		SectionTitle:  o.Section.Title,
		Section:       make([]Block, 0, len(o.Section.Paragraphs)),
		FeesTitle:     c.Fees,
		Fees: []feeRow{
			{Label: c.DayRate, Value: FormatMoney(o.Lang, o.Price.DayRate, o.Currency)},
			{Label: c.Days, Value: strconv.Itoa(o.Price.Days)},
			{Label: c.Net, Value: FormatMoney(o.Lang, o.Price.Net, o.Currency)},
			{Label: c.Tax, Value: FormatMoney(o.Lang, o.Price.Tax, o.Currency)},
			{Label: c.Gross, Value: FormatMoney(o.Lang, o.Price.Gross, o.Currency)},
		},
		AnnexesTitle: c.Annexes,
		Annexes:      make([]annexView, 0, len(o.Annexes)),
	}
	if !o.CanConfirm() {
		doc.Draft = c.Draft
	}
	// section text carries user notes, so placeholders are never expanded in it
	for _, p := range o.Section.Paragraphs {
		doc.Section = append(doc.Section, ParseBlock(p))
	}
	for i, a := range o.Annexes {
		doc.Annexes = append(doc.Annexes, annexView{
			Title:  fmt.Sprintf("%s %d – %s", c.Annex, i+1, a.Label),
			Groups: groupRequirements(a.Requirements, c, r),
		})
	}
	return doc
}

// groupRequirements folds consecutive requirements of the same group under one
// caption, keeping catalog order.
func groupRequirements(reqs []catalog.LocalizedRequirement, c labels, r *strings.Replacer) []groupView {
	var out []groupView
	for _, req := range reqs {
		if len(out) == 0 || out[len(out)-1].Label != c.Groups[req.Group] {
			out = append(out, groupView{Label: c.Groups[req.Group]})
		}
		last := &out[len(out)-1]
		last.Items = append(last.Items, r.Replace(req.Text))
	}
	return out
}
