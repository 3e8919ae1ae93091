package rendering

import (
	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// labels are the fixed captions of the contract document.
type labels struct {
	Title       string
	Draft       string
	Parties     string
	PartiesBody string
	Term        string
	TermBody    string
	Behavior    string
	Fees        string
	DayRate     string
	Days        string
	Net         string
	Tax         string
	Gross       string
	Annexes     string
	Annex       string
	Notices     string
	Groups      map[catalog.Group]string
}

var captions = map[types.Lang]labels{
	types.LangDE: {
		Title:       "Beratungsvertrag",
		Draft:       "Entwurf – nicht bestätigungsfähig",
		Parties:     "§ 1 Vertragsparteien",
		PartiesBody: "Auftraggeber: {client}\nAuftragnehmer: {contractor}",
		Term:        "§ 2 Umfang und Laufzeit",
		TermBody:    "Beginn: {startDate}. Vereinbart sind {days} Beratungstage.",
		Behavior:    "Grundhaltung",
		Fees:        "§ 4 Vergütung",
		DayRate:     "Tagessatz",
		Days:        "Tage",
		Net:         "Netto",
		Tax:         "USt. 19 %",
		Gross:       "Brutto",
		Annexes:     "Anlagen",
		Annex:       "Anlage",
		Notices:     "Hinweise",
		Groups: map[catalog.Group]string{
			catalog.GroupPurpose:       "Zweck",
			catalog.GroupServices:      "Leistungen des Auftragnehmers",
			catalog.GroupObligations:   "Mitwirkung des Auftraggebers",
			catalog.GroupDeliverables:  "Ergebnisse",
			catalog.GroupTimeFees:      "Zeit und Vergütung",
			catalog.GroupCommunication: "Kommunikation",
			catalog.GroupExclusions:    "Ausschlüsse",
		},
	},
	types.LangEN: {
		Title:       "Consulting agreement",
		Draft:       "Draft – cannot be confirmed",
		Parties:     "§ 1 Parties",
		PartiesBody: "Client: {client}\nContractor: {contractor}",
		Term:        "§ 2 Scope and term",
		TermBody:    "Start: {startDate}. {days} consulting days are agreed.",
		Behavior:    "Engagement stance",
		Fees:        "§ 4 Fees",
		DayRate:     "Day rate",
		Days:        "Days",
		Net:         "Net",
		Tax:         "VAT 19 %",
		Gross:       "Gross",
		Annexes:     "Annexes",
		Annex:       "Annex",
		Notices:     "Notices",
		Groups: map[catalog.Group]string{
			catalog.GroupPurpose:       "Purpose",
			catalog.GroupServices:      "Contractor services",
			catalog.GroupObligations:   "Client obligations",
			catalog.GroupDeliverables:  "Deliverables",
			catalog.GroupTimeFees:      "Time and fees",
			catalog.GroupCommunication: "Communication",
			catalog.GroupExclusions:    "Exclusions",
		},
	},
}

func captionsFor(lang types.Lang) labels {
	if l, ok := captions[lang]; ok {
		return l
	}
	return captions[types.DefaultLang]
}
