package offer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func ptr(s string) *string { return &s }

func sampleState() types.SelectionState {
	return types.SelectionState{
		BehaviorID: ptr("moderator"),
		RoleIDs:    []types.RoleID{"res", "sys", "res", "bogus"},
		SkillIDs:   []string{"conflict"},
		PsychoID:   ptr("extended"),
		CaringID:   ptr("close"),
		Days:       5,
		Lang:       types.LangEN,
	}
}

func TestAssemble(t *testing.T) {
	cat := testCatalog(t)
	o := Assemble(cat, sampleState())

	assert.Equal(t, types.LangEN, o.Lang)
	assert.Equal(t, 5, o.Days)
	assert.Equal(t, "EUR", o.Currency)
	assert.NotEmpty(t, o.Behavior)
	assert.True(t, o.CanConfirm())
	assert.Equal(t, types.SeverityOK, o.Validation.Severity)
	assert.Equal(t, 2640.0, o.Price.DayRate)
	assert.Len(t, o.Section.Paragraphs, 7)

	require.Len(t, o.Annexes, 2)
	assert.Equal(t, types.RoleResonance, o.Annexes[0].RoleID)
	assert.Equal(t, types.RoleSteering, o.Annexes[1].RoleID)
	assert.Equal(t, "Module A – Systemic steering", o.Annexes[1].Label)
	assert.Equal(t, cat.RequirementsFor(types.LangEN, types.RoleSteering), o.Annexes[1].Requirements)
}

func TestAssemble_BlockedCannotConfirm(t *testing.T) {
	cat := testCatalog(t)
	state := sampleState()
	state.BehaviorID = ptr("driver")

	o := Assemble(cat, state)
	assert.False(t, o.CanConfirm())
	assert.Equal(t, types.SeverityBlocked, o.Validation.Severity)
	assert.True(t, o.Verdict().Blocked())
	assert.NotEmpty(t, o.Validation.Messages)
}

func TestAssemble_WarningStillConfirms(t *testing.T) {
	cat := testCatalog(t)
	o := Assemble(cat, types.SelectionState{CaringID: ptr("close"), Days: 1})
	assert.Equal(t, types.SeverityWarning, o.Validation.Severity)
	assert.True(t, o.CanConfirm())
}

func TestAssemble_EmptyState(t *testing.T) {
	cat := testCatalog(t)
	o := Assemble(cat, types.SelectionState{})

	assert.Equal(t, types.LangDE, o.Lang)
	assert.Equal(t, 1, o.Days)
	assert.Empty(t, o.Behavior)
	assert.Empty(t, o.Annexes)
	assert.NotNil(t, o.Annexes)
	assert.True(t, o.CanConfirm())
	assert.Equal(t, 2380.0, o.Price.Gross)
}

func TestAssembleBilingual(t *testing.T) {
	cat := testCatalog(t)
	state := sampleState()

	b, err := AssembleBilingual(context.Background(), cat, state)
	require.NoError(t, err)
	require.Len(t, b.Offers, len(types.SupportedLangs))

	for _, lang := range types.SupportedLangs {
		o, ok := b.For(lang)
		require.True(t, ok)
		assert.Equal(t, lang, o.Lang)

		state.Lang = lang
		want := Assemble(cat, state)
		if diff := cmp.Diff(want, o, cmp.AllowUnexported(Offer{})); diff != "" {
			t.Errorf("%s offer differs from sequential assembly (-want +got):\n%s", lang, diff)
		}
	}

	de, _ := b.For(types.LangDE)
	en, _ := b.For(types.LangEN)
	assert.Equal(t, de.Price, en.Price)
	assert.NotEqual(t, de.Section.Title, en.Section.Title)

	_, ok := b.For("fr")
	assert.False(t, ok)
}

func TestAssembleBilingual_CanceledContext(t *testing.T) {
	cat := testCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AssembleBilingual(ctx, cat, sampleState())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
