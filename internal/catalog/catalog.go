// Package catalog holds the immutable reference data of the mandate configurator:
// behavior packages, skills, psychosocial and caring levels, role descriptions and
// the per-role requirement catalog. A Catalog is loaded once at startup and passed
// explicitly to every component that reads it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/mandate-configurator/internal/types"
)

//go:embed catalog.yaml
var embedded []byte

// BehaviorPackage is an engagement stance. Exactly one may be selected.
type BehaviorPackage struct {
	ID          string     `yaml:"id" json:"id" validate:"required"`
	Context     types.Text `yaml:"context" json:"context" validate:"bilingual"`
	Name        types.Text `yaml:"name" json:"name" validate:"bilingual"`
	Interaction types.Text `yaml:"interaction" json:"interaction" validate:"bilingual"`
	Outcome     types.Text `yaml:"outcome" json:"outcome" validate:"bilingual"`
}

// Skill is a professional focus area. Several may be selected.
type Skill struct {
	ID            string     `yaml:"id" json:"id" validate:"required"`
	Title         types.Text `yaml:"title" json:"title" validate:"bilingual"`
	Offer         types.Text `yaml:"offer" json:"offer" validate:"bilingual"`
	NeedPrompt    types.Text `yaml:"need_prompt" json:"need_prompt" validate:"bilingual"`
	OutcomePrompt types.Text `yaml:"outcome_prompt" json:"outcome_prompt" validate:"bilingual"`
}

// Level is an intensity step of the psychosocial-depth or caring catalog.
// PriceFactor is multiplicative; nil means 1.
type Level struct {
	ID          string     `yaml:"id" json:"id" validate:"required"`
	Name        types.Text `yaml:"name" json:"name" validate:"bilingual"`
	PriceFactor *float64   `yaml:"price_factor" json:"price_factor,omitempty" validate:"omitempty,gte=0"`
	Tagline     types.Text `yaml:"tagline" json:"tagline,omitempty" validate:"omitempty,bilingual"`
	Definition  types.Text `yaml:"definition" json:"definition,omitempty" validate:"omitempty,bilingual"`
	Focus       types.Text `yaml:"focus" json:"focus,omitempty" validate:"omitempty,bilingual"`
	Include     types.Text `yaml:"include" json:"include,omitempty" validate:"omitempty,bilingual"`
	Exclude     types.Text `yaml:"exclude" json:"exclude,omitempty" validate:"omitempty,bilingual"`
	Benefit     types.Text `yaml:"benefit" json:"benefit,omitempty" validate:"omitempty,bilingual"`
}

// Role carries the module label and the contract description block of a service role.
type Role struct {
	ID          types.RoleID `yaml:"id" json:"id" validate:"required,oneof=sys ops res coach"`
	Label       types.Text   `yaml:"label" json:"label" validate:"bilingual"`
	Description types.Text   `yaml:"description" json:"description" validate:"bilingual"`
}

// Commercial holds the pricing inputs that are not selection-dependent.
type Commercial struct {
	BaseDayRate float64 `yaml:"base_day_rate" json:"base_day_rate" validate:"gt=0"`
	Currency    string  `yaml:"currency" json:"currency" validate:"required,len=3"`
}

// HeaderBody is a static paragraph.
type HeaderBody struct {
	Header types.Text `yaml:"header" validate:"bilingual"`
	Body   types.Text `yaml:"body" validate:"bilingual"`
}

// ListBlock is a selection-dependent paragraph with a generic fallback.
type ListBlock struct {
	HeaderGeneric  types.Text `yaml:"header_generic" validate:"bilingual"`
	HeaderSelected types.Text `yaml:"header_selected" validate:"bilingual"`
	Generic        types.Text `yaml:"generic" validate:"bilingual"`
}

// SkillBlock extends ListBlock with the note labels.
type SkillBlock struct {
	ListBlock    `yaml:",inline"`
	NeedLabel    types.Text `yaml:"need_label" validate:"bilingual"`
	OutcomeLabel types.Text `yaml:"outcome_label" validate:"bilingual"`
}

// LevelBlock is the header and unselected fallback of a level paragraph.
type LevelBlock struct {
	Header   types.Text `yaml:"header" validate:"bilingual"`
	Fallback types.Text `yaml:"fallback" validate:"bilingual"`
}

// Boilerplate is the static contract prose of section 3.
type Boilerplate struct {
	SectionTitle types.Text `yaml:"section_title" validate:"bilingual"`
	Intro        HeaderBody `yaml:"intro"`
	Roles        ListBlock  `yaml:"roles"`
	Skills       SkillBlock `yaml:"skills"`
	Psycho       LevelBlock `yaml:"psycho"`
	Caring       LevelBlock `yaml:"caring"`
	Meta         HeaderBody `yaml:"meta"`
	Exclusions   HeaderBody `yaml:"exclusions"`
}

// Catalog is the complete reference data table. It is never mutated after Load.
type Catalog struct {
	Commercial   Commercial        `yaml:"commercial"`
	Behaviors    []BehaviorPackage `yaml:"behaviors" validate:"required,dive"`
	Skills       []Skill           `yaml:"skills" validate:"required,dive"`
	PsychoLevels []Level           `yaml:"psycho_levels" validate:"required,dive"`
	CaringLevels []Level           `yaml:"caring_levels" validate:"required,dive"`
	Roles        []Role            `yaml:"roles" validate:"required,dive"`
	Requirements []Requirement     `yaml:"requirements" validate:"required,dive"`
	Boilerplate  Boilerplate       `yaml:"boilerplate"`

	behaviorIdx map[string]int
	skillIdx    map[string]int
	psychoIdx   map[string]int
	caringIdx   map[string]int
	roleIdx     map[types.RoleID]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default parses the catalog compiled into the binary. It is parsed once and the
// same read-only instance is returned on every call.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(embedded)
	})
	return defaultCatalog, defaultErr
}

// LoadFile parses a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read catalog file %s", path), Cause: err}
	}
	return Load(data)
}

// Load parses and validates catalog YAML.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &LoadError{Message: "failed to parse catalog YAML", Cause: err}
	}

	if err := newValidator().Struct(&c); err != nil {
		return nil, &LoadError{Message: "catalog structure is invalid", Problems: describeValidation(err), Cause: err}
	}

	if problems := c.index(); len(problems) > 0 {
		return nil, &LoadError{Message: "catalog consistency check failed", Problems: problems}
	}

	return &c, nil
}

// WithBaseDayRate returns a copy of the catalog using rate as base day rate.
// Non-positive rates return the catalog unchanged.
func (c *Catalog) WithBaseDayRate(rate float64) *Catalog {
	if rate <= 0 {
		return c
	}
	cp := *c
	cp.Commercial.BaseDayRate = rate
	return &cp
}

// index builds the lookup tables and reports every consistency problem found.
func (c *Catalog) index() []string {
	var problems []string

	c.behaviorIdx = make(map[string]int, len(c.Behaviors))
	for i, b := range c.Behaviors {
		problems = appendDuplicate(problems, "behavior", b.ID, c.behaviorIdx)
		c.behaviorIdx[b.ID] = i
	}
	c.skillIdx = make(map[string]int, len(c.Skills))
	for i, s := range c.Skills {
		problems = appendDuplicate(problems, "skill", s.ID, c.skillIdx)
		c.skillIdx[s.ID] = i
	}
	c.psychoIdx = make(map[string]int, len(c.PsychoLevels))
	for i, l := range c.PsychoLevels {
		problems = appendDuplicate(problems, "psycho level", l.ID, c.psychoIdx)
		c.psychoIdx[l.ID] = i
	}
	c.caringIdx = make(map[string]int, len(c.CaringLevels))
	for i, l := range c.CaringLevels {
		problems = appendDuplicate(problems, "caring level", l.ID, c.caringIdx)
		c.caringIdx[l.ID] = i
	}
	c.roleIdx = make(map[types.RoleID]int, len(c.Roles))
	for i, r := range c.Roles {
		if _, dup := c.roleIdx[r.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate role id %q", r.ID))
		}
		c.roleIdx[r.ID] = i
	}
	for _, id := range types.AllRoles {
		if _, ok := c.roleIdx[id]; !ok {
			problems = append(problems, fmt.Sprintf("role %q has no description", id))
		}
	}

	return append(problems, c.checkRequirements()...)
}

func appendDuplicate(problems []string, kind, id string, seen map[string]int) []string {
	if _, dup := seen[id]; dup {
		return append(problems, fmt.Sprintf("duplicate %s id %q", kind, id))
	}
	return problems
}

// Behavior looks up a behavior package by id.
func (c *Catalog) Behavior(id string) (BehaviorPackage, bool) {
	i, ok := c.behaviorIdx[id]
	if !ok {
		return BehaviorPackage{}, false
	}
	return c.Behaviors[i], true
}

// Skill looks up a skill by id.
func (c *Catalog) Skill(id string) (Skill, bool) {
	i, ok := c.skillIdx[id]
	if !ok {
		return Skill{}, false
	}
	return c.Skills[i], true
}

// Psycho looks up a psychosocial-depth level by id.
func (c *Catalog) Psycho(id string) (Level, bool) {
	i, ok := c.psychoIdx[id]
	if !ok {
		return Level{}, false
	}
	return c.PsychoLevels[i], true
}

// Caring looks up a caring level by id.
func (c *Catalog) Caring(id string) (Level, bool) {
	i, ok := c.caringIdx[id]
	if !ok {
		return Level{}, false
	}
	return c.CaringLevels[i], true
}

// Role looks up a role by id.
func (c *Catalog) Role(id types.RoleID) (Role, bool) {
	i, ok := c.roleIdx[id]
	if !ok {
		return Role{}, false
	}
	return c.Roles[i], true
}

// ResolveBehavior turns an optional id into a choice; unknown ids are unselected.
func (c *Catalog) ResolveBehavior(id *string) types.Choice[BehaviorPackage] {
	return resolve(id, c.Behavior)
}

// ResolvePsycho turns an optional id into a choice; unknown ids are unselected.
func (c *Catalog) ResolvePsycho(id *string) types.Choice[Level] {
	return resolve(id, c.Psycho)
}

// ResolveCaring turns an optional id into a choice; unknown ids are unselected.
func (c *Catalog) ResolveCaring(id *string) types.Choice[Level] {
	return resolve(id, c.Caring)
}

func resolve[T any](id *string, lookup func(string) (T, bool)) types.Choice[T] {
	if id == nil {
		return types.Unselect[T]()
	}
	v, ok := lookup(strings.TrimSpace(*id))
	if !ok {
		return types.Unselect[T]()
	}
	return types.Select(v)
}

// SelectedSkills filters the skill catalog to ids, in catalog order.
func (c *Catalog) SelectedSkills(ids []string) []Skill {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]Skill, 0, len(ids))
	for _, s := range c.Skills {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// KnownRoles deduplicates ids and drops those without a catalog entry.
func (c *Catalog) KnownRoles(ids []types.RoleID) []Role {
	unique := types.UniqueRoles(ids)
	out := make([]Role, 0, len(unique))
	for _, id := range unique {
		if r, ok := c.Role(id); ok {
			out = append(out, r)
		}
	}
	return out
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bilingual", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(types.Text)
		if !ok {
			return false
		}
		for _, lang := range types.SupportedLangs {
			if strings.TrimSpace(t[lang]) == "" {
				return false
			}
		}
		return true
	})
	return v
}

func describeValidation(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return out
}
