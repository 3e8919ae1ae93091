// Package compose builds the bilingual "scope of services" contract section from a
// selection. Output is deterministic and never empty: every selection-dependent
// paragraph has a catalog fallback.
package compose

import (
	"strings"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// ParagraphCount is the number of paragraphs in a composed section.
const ParagraphCount = 7

const (
	bullet       = "• "
	noteSep      = " | "
	headerSep    = "\n\n"
	taglineSep   = " – "
	fieldJoinSep = " "
)

// Input is the part of a selection the section depends on.
type Input struct {
	RoleIDs  []types.RoleID
	SkillIDs []string
	Notes    map[string]types.SkillNote
	PsychoID *string
	CaringID *string
}

// InputFromState extracts the composer input from a selection.
func InputFromState(state types.SelectionState) Input {
	return Input{
		RoleIDs:  state.RoleIDs,
		SkillIDs: state.SkillIDs,
		Notes:    state.Notes,
		PsychoID: state.PsychoID,
		CaringID: state.CaringID,
	}
}

// ComposeSection3 renders the section in lang. Paragraphs are, in order: intro,
// roles, skills, psychosocial depth, caring, meta clarification and exclusions.
// Each paragraph is a header line, a blank line and a body.
func ComposeSection3(cat *catalog.Catalog, lang types.Lang, in Input) types.Section {
	bp := cat.Boilerplate
	return types.Section{
		Title: bp.SectionTitle.In(lang),
		Paragraphs: []string{
			paragraph(bp.Intro.Header.In(lang), bp.Intro.Body.In(lang)),
			rolesParagraph(cat, lang, in.RoleIDs),
			skillsParagraph(cat, lang, in.SkillIDs, in.Notes),
			levelParagraph(bp.Psycho, cat.ResolvePsycho(in.PsychoID), lang),
			levelParagraph(bp.Caring, cat.ResolveCaring(in.CaringID), lang),
			paragraph(bp.Meta.Header.In(lang), bp.Meta.Body.In(lang)),
			paragraph(bp.Exclusions.Header.In(lang), bp.Exclusions.Body.In(lang)),
		},
	}
}

// ComposeFromState renders the section for a full selection in its own language.
func ComposeFromState(cat *catalog.Catalog, state types.SelectionState) types.Section {
	state = state.Normalized()
	return ComposeSection3(cat, state.Lang, InputFromState(state))
}

func paragraph(header, body string) string {
	return header + headerSep + body
}

func rolesParagraph(cat *catalog.Catalog, lang types.Lang, ids []types.RoleID) string {
	block := cat.Boilerplate.Roles
	roles := cat.KnownRoles(ids)
	if len(roles) == 0 {
		return paragraph(block.HeaderGeneric.In(lang), block.Generic.In(lang))
	}
	lines := make([]string, 0, len(roles))
	for _, r := range roles {
		lines = append(lines, bullet+r.Description.In(lang))
	}
	return paragraph(block.HeaderSelected.In(lang), strings.Join(lines, "\n"))
}

func skillsParagraph(cat *catalog.Catalog, lang types.Lang, ids []string, notes map[string]types.SkillNote) string {
	block := cat.Boilerplate.Skills
	skills := cat.SelectedSkills(ids)
	if len(skills) == 0 {
		return paragraph(block.HeaderGeneric.In(lang), block.Generic.In(lang))
	}
	lines := make([]string, 0, len(skills))
	for _, s := range skills {
		line := bullet + s.Title.In(lang)
		if note := noteText(block, lang, notes[s.ID]); note != "" {
			line += " (" + note + ")"
		}
		lines = append(lines, line)
	}
	return paragraph(block.HeaderSelected.In(lang), strings.Join(lines, "\n"))
}

// noteText renders the present halves of a skill note, or "" when both are blank.
// Each half is folded onto one line so a note cannot open a new block or bullet.
func noteText(block catalog.SkillBlock, lang types.Lang, note types.SkillNote) string {
	parts := make([]string, 0, 2)
	if need := singleLine(note.Need); need != "" {
		parts = append(parts, block.NeedLabel.In(lang)+": "+need)
	}
	if outcome := singleLine(note.Outcome); outcome != "" {
		parts = append(parts, block.OutcomeLabel.In(lang)+": "+outcome)
	}
	return strings.Join(parts, noteSep)
}

// singleLine collapses every run of whitespace, newlines included, to one space.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func levelParagraph(block catalog.LevelBlock, choice types.Choice[catalog.Level], lang types.Lang) string {
	body := types.Match(choice,
		func() string { return block.Fallback.In(lang) },
		func(l catalog.Level) string { return levelBody(l, lang) })
	return paragraph(block.Header.In(lang), body)
}

// levelBody joins the level name and its non-empty descriptive fields into one
// flowing paragraph.
func levelBody(l catalog.Level, lang types.Lang) string {
	name := l.Name.In(lang)
	if tagline := l.Tagline.In(lang); tagline != "" {
		name += taglineSep + tagline
	}
	fields := []string{
		name + ":",
		l.Focus.In(lang),
		l.Include.In(lang),
		l.Exclude.In(lang),
		l.Benefit.In(lang),
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, fieldJoinSep)
}
