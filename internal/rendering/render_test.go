package rendering

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/offer"
	"github.com/jonathan/mandate-configurator/internal/types"
)

func ptr(s string) *string { return &s }

func assemble(t *testing.T, state types.SelectionState) offer.Offer {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return offer.Assemble(cat, state)
}

func sampleOffer(t *testing.T) offer.Offer {
	return assemble(t, types.SelectionState{
		BehaviorID: ptr("moderator"),
		RoleIDs:    []types.RoleID{types.RoleSteering, types.RoleOperation},
		SkillIDs:   []string{"change"},
		Notes:      map[string]types.SkillNote{"change": {Need: "Reduce cost"}},
		PsychoID:   ptr("extended"),
		CaringID:   ptr("close"),
		Days:       5,
		Lang:       types.LangEN,
	})
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_Structure(t *testing.T) {
	o := sampleOffer(t)
	html, err := RenderHTML(o, Options{})
	require.NoError(t, err)
	doc := parseHTML(t, html)

	assert.Equal(t, "Consulting agreement", doc.Find("h1").Text())
	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, o.Section.Title, doc.Find("#section-3").Text())
	assert.Equal(t, 0, doc.Find(".draft").Length())
	assert.Equal(t, 0, doc.Find(".notices").Length())

	// parties, term and the seven section paragraphs
	assert.Equal(t, 2+len(o.Section.Paragraphs), doc.Find(".block").Length())

	roles := doc.Find(".block").Eq(3)
	assert.Equal(t, "3.2 Agreed roles of the contractor", roles.Find("h3").Text())
	assert.Equal(t, 2, roles.Find("li").Length())

	skills := doc.Find(".block").Eq(4)
	assert.Equal(t, "Change facilitation (Need: Reduce cost)", skills.Find("li").First().Text())

	assert.Equal(t, 5, doc.Find("table.fees tr").Length())
	assert.Equal(t, "EUR 15,708.00", doc.Find("table.fees tr").Last().Find("td.amount").Text())

	annexes := doc.Find("section.annex")
	require.Equal(t, 2, annexes.Length())
	assert.Equal(t, "Annex 1 – Module A – Systemic steering", annexes.First().Find("h3").Text())
	assert.Equal(t, "Purpose", annexes.First().Find("h4").First().Text())
}

func TestRenderHTML_Placeholders(t *testing.T) {
	o := sampleOffer(t)

	html, err := RenderHTML(o, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "{startDate}", "unknown placeholders stay literal")

	html, err = RenderHTML(o, Options{Placeholders: map[string]string{
		"startDate": "1 March 2026",
		"client":    "ACME GmbH",
	}})
	require.NoError(t, err)
	assert.NotContains(t, html, "{startDate}")
	assert.NotContains(t, html, "{days}")
	assert.Contains(t, html, "The purpose is to support steering the initiative from 1 March 2026.")
	assert.Contains(t, html, "Client: ACME GmbH")
	assert.Contains(t, html, "5 consulting days are agreed.")
}

func TestRenderHTML_EscapesSelectionText(t *testing.T) {
	o := assemble(t, types.SelectionState{
		SkillIDs: []string{"change"},
		Notes:    map[string]types.SkillNote{"change": {Need: "<script>alert(1)</script>"}},
		Lang:     types.LangEN,
	})
	html, err := RenderHTML(o, Options{})
	require.NoError(t, err)

	doc := parseHTML(t, html)
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Contains(t, doc.Find(".block").Eq(4).Text(), "<script>alert(1)</script>")
}

func TestRenderHTML_BlockedOfferIsMarkedDraft(t *testing.T) {
	o := assemble(t, types.SelectionState{
		BehaviorID: ptr("driver"),
		CaringID:   ptr("close"),
		Lang:       types.LangDE,
	})
	html, err := RenderHTML(o, Options{})
	require.NoError(t, err)
	doc := parseHTML(t, html)

	assert.Equal(t, "Entwurf – nicht bestätigungsfähig", doc.Find(".draft").Text())
	assert.Equal(t, len(o.Validation.Messages), doc.Find(".notices li").Length())
}

func TestRenderHTML_Errors(t *testing.T) {
	_, err := RenderHTML(offer.Offer{}, Options{})
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, err.Error(), "offer has no composed section")

	o := sampleOffer(t)
	_, err = RenderHTML(o, Options{TemplatePath: "/nonexistent/contract.html.tmpl"})
	var templateErr *TemplateError
	require.True(t, errors.As(err, &templateErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "read", templateErr.Stage)

	path := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Title"), 0644))
	_, err = RenderHTML(o, Options{TemplatePath: path})
	require.True(t, errors.As(err, &templateErr))
	assert.Equal(t, "parse", templateErr.Stage)
	assert.Contains(t, err.Error(), "contract template "+path)

	path = filepath.Join(t.TempDir(), "unknown-field.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Missing}}"), 0644))
	_, err = RenderHTML(o, Options{TemplatePath: path})
	require.True(t, errors.As(err, &templateErr))
	assert.Equal(t, "execute", templateErr.Stage)
}

func TestRenderHTML_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("<p>{{.Title}}|{{len .Section}}</p>"), 0644))

	html, err := RenderHTML(sampleOffer(t), Options{TemplatePath: path})
	require.NoError(t, err)
	assert.Equal(t, "<p>Consulting agreement|7</p>", html)
}

func TestRenderText(t *testing.T) {
	o := sampleOffer(t)
	text := RenderText(o, Options{Placeholders: map[string]string{"startDate": "2026-03-01"}})

	assert.True(t, strings.HasPrefix(text, "CONSULTING AGREEMENT\n"))
	assert.Contains(t, text, "§ 3 Scope of services and approach\n")
	assert.Contains(t, text, "• Change facilitation (Need: Reduce cost)\n")
	assert.Contains(t, text, "Gross: EUR 15,708.00\n")
	assert.Contains(t, text, "Annex 2 – Module B – Operational delivery\n")
	assert.Contains(t, text, "Service period from 2026-03-01; invoicing by days actually delivered.")
	assert.Contains(t, text, "Engagement stance: ")
	assert.NotContains(t, text, "Draft")

	blocks := SplitBlocks(text)
	assert.Greater(t, len(blocks), len(o.Section.Paragraphs))
}

func TestRenderText_Deterministic(t *testing.T) {
	o := sampleOffer(t)
	opts := Options{Placeholders: map[string]string{"startDate": "x", "client": "y"}}
	assert.Equal(t, RenderText(o, opts), RenderText(o, opts))
}

func TestRenderText_Notices(t *testing.T) {
	o := assemble(t, types.SelectionState{CaringID: ptr("close"), Lang: types.LangDE})
	text := RenderText(o, Options{})
	assert.Contains(t, text, "Hinweise:\n! ")
	assert.NotContains(t, text, "Entwurf")
}

func TestRenderText_SkillNotesStayLiteral(t *testing.T) {
	o := assemble(t, types.SelectionState{
		SkillIDs: []string{"change", "strategy"},
		Notes: map[string]types.SkillNote{
			"change": {Need: "alpha\n\nomega {dayRate}\n• Injected bullet"},
		},
		Days: 2,
		Lang: types.LangEN,
	})
	text := RenderText(o, Options{Placeholders: map[string]string{"client": "ACME GmbH"}})

	assert.Contains(t, text, "• Change facilitation (Need: alpha omega {dayRate} • Injected bullet)\n• Strategic alignment")
	assert.NotContains(t, text, "• Injected bullet\n")
	assert.Contains(t, text, "Client: ACME GmbH")
}
