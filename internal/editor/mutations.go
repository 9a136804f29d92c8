package editor

import "storeforge/api/internal/util"

// Mutation operations. Each takes the current document and returns a new
// document value; the input is never modified, so history entries stay valid.
// "Not found" is a no-op by contract: deleting or toggling a section that is
// already gone must be idempotent under rapid, interleaved UI events.

// MoveDirection is the direction for MoveSection.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// ThemePatch updates a subset of theme fields. Nil fields are untouched.
// Color values are normalized to 7-character hex; unparseable colors are
// dropped from the patch rather than corrupting the stored token. Numeric
// values clamp at zero.
type ThemePatch struct {
	PrimaryColor       *string `json:"primaryColor,omitempty"`
	SecondaryColor     *string `json:"secondaryColor,omitempty"`
	AccentColor        *string `json:"accentColor,omitempty"`
	BackgroundColor    *string `json:"backgroundColor,omitempty"`
	TextColor          *string `json:"textColor,omitempty"`
	HeadingFont        *string `json:"headingFont,omitempty"`
	BodyFont           *string `json:"bodyFont,omitempty"`
	BaseFontSize       *int    `json:"baseFontSize,omitempty"`
	BorderRadiusSmall  *int    `json:"borderRadiusSmall,omitempty"`
	BorderRadiusMedium *int    `json:"borderRadiusMedium,omitempty"`
	BorderRadiusLarge  *int    `json:"borderRadiusLarge,omitempty"`
	SectionSpacing     *int    `json:"sectionSpacing,omitempty"`
	ButtonStyle        *string `json:"buttonStyle,omitempty"`
	ButtonRounded      *bool   `json:"buttonRounded,omitempty"`
}

func (p ThemePatch) apply(theme Theme) Theme {
	applyColor := func(dst *string, src *string) {
		if src == nil {
			return
		}
		if normalized, ok := normalizeHexColor(*src); ok {
			*dst = normalized
		}
	}
	applyColor(&theme.PrimaryColor, p.PrimaryColor)
	applyColor(&theme.SecondaryColor, p.SecondaryColor)
	applyColor(&theme.AccentColor, p.AccentColor)
	applyColor(&theme.BackgroundColor, p.BackgroundColor)
	applyColor(&theme.TextColor, p.TextColor)
	if p.HeadingFont != nil {
		theme.HeadingFont = *p.HeadingFont
	}
	if p.BodyFont != nil {
		theme.BodyFont = *p.BodyFont
	}
	if p.BaseFontSize != nil {
		theme.BaseFontSize = clampNonNegative(*p.BaseFontSize)
	}
	if p.BorderRadiusSmall != nil {
		theme.BorderRadiusSmall = clampNonNegative(*p.BorderRadiusSmall)
	}
	if p.BorderRadiusMedium != nil {
		theme.BorderRadiusMedium = clampNonNegative(*p.BorderRadiusMedium)
	}
	if p.BorderRadiusLarge != nil {
		theme.BorderRadiusLarge = clampNonNegative(*p.BorderRadiusLarge)
	}
	if p.SectionSpacing != nil {
		theme.SectionSpacing = clampNonNegative(*p.SectionSpacing)
	}
	if p.ButtonStyle != nil {
		theme.ButtonStyle = *p.ButtonStyle
	}
	if p.ButtonRounded != nil {
		theme.ButtonRounded = *p.ButtonRounded
	}
	return theme
}

// fields lists the names of the fields the patch sets, used for history
// coalescing.
func (p ThemePatch) fields() []string {
	var names []string
	add := func(set bool, name string) {
		if set {
			names = append(names, name)
		}
	}
	add(p.PrimaryColor != nil, "primaryColor")
	add(p.SecondaryColor != nil, "secondaryColor")
	add(p.AccentColor != nil, "accentColor")
	add(p.BackgroundColor != nil, "backgroundColor")
	add(p.TextColor != nil, "textColor")
	add(p.HeadingFont != nil, "headingFont")
	add(p.BodyFont != nil, "bodyFont")
	add(p.BaseFontSize != nil, "baseFontSize")
	add(p.BorderRadiusSmall != nil, "borderRadiusSmall")
	add(p.BorderRadiusMedium != nil, "borderRadiusMedium")
	add(p.BorderRadiusLarge != nil, "borderRadiusLarge")
	add(p.SectionSpacing != nil, "sectionSpacing")
	add(p.ButtonStyle != nil, "buttonStyle")
	add(p.ButtonRounded != nil, "buttonRounded")
	return names
}

// MetadataPatch updates a subset of shop metadata fields.
type MetadataPatch struct {
	Name                  *string  `json:"name,omitempty"`
	Tagline               *string  `json:"tagline,omitempty"`
	Email                 *string  `json:"email,omitempty"`
	Phone                 *string  `json:"phone,omitempty"`
	Address               *string  `json:"address,omitempty"`
	Currency              *string  `json:"currency,omitempty"`
	SEOTitle              *string  `json:"seoTitle,omitempty"`
	SEODescription        *string  `json:"seoDescription,omitempty"`
	FreeShippingThreshold *float64 `json:"freeShippingThreshold,omitempty"`
	ReturnWindowDays      *int     `json:"returnWindowDays,omitempty"`
}

func (p MetadataPatch) apply(meta Metadata) Metadata {
	if p.Name != nil {
		meta.Name = *p.Name
	}
	if p.Tagline != nil {
		meta.Tagline = *p.Tagline
	}
	if p.Email != nil {
		meta.Email = *p.Email
	}
	if p.Phone != nil {
		meta.Phone = *p.Phone
	}
	if p.Address != nil {
		meta.Address = *p.Address
	}
	if p.Currency != nil {
		meta.Currency = *p.Currency
	}
	if p.SEOTitle != nil {
		meta.SEOTitle = *p.SEOTitle
	}
	if p.SEODescription != nil {
		meta.SEODescription = *p.SEODescription
	}
	if p.FreeShippingThreshold != nil {
		meta.FreeShippingThreshold = *p.FreeShippingThreshold
	}
	if p.ReturnWindowDays != nil {
		meta.ReturnWindowDays = *p.ReturnWindowDays
	}
	return meta
}

func (p MetadataPatch) fields() []string {
	var names []string
	add := func(set bool, name string) {
		if set {
			names = append(names, name)
		}
	}
	add(p.Name != nil, "name")
	add(p.Tagline != nil, "tagline")
	add(p.Email != nil, "email")
	add(p.Phone != nil, "phone")
	add(p.Address != nil, "address")
	add(p.Currency != nil, "currency")
	add(p.SEOTitle != nil, "seoTitle")
	add(p.SEODescription != nil, "seoDescription")
	add(p.FreeShippingThreshold != nil, "freeShippingThreshold")
	add(p.ReturnWindowDays != nil, "returnWindowDays")
	return names
}

// AddSection appends a new section of the given kind at the end of render
// order, enabled, with the registry's default settings for that kind. The
// new section is returned so the caller can select it in the UI.
func AddSection(doc ShopSettings, kind SectionKind, reg Registry) (ShopSettings, Section) {
	out := Clone(doc)
	section := Section{
		ID:       util.NewID("sec"),
		Type:     kind,
		Order:    nextOrder(out.Sections),
		Enabled:  true,
		Settings: SettingsBag{},
	}
	if reg != nil {
		section.Settings = reg.Defaults(kind)
	}
	out.Sections = append(out.Sections, section)
	return out, section
}

// RemoveSection deletes the section. Unknown ids are a no-op; the input
// document is returned unchanged.
func RemoveSection(doc ShopSettings, id string) ShopSettings {
	index := sectionIndex(doc.Sections, id)
	if index < 0 {
		return doc
	}
	out := Clone(doc)
	out.Sections = append(out.Sections[:index], out.Sections[index+1:]...)
	return out
}

// DuplicateSection clones the section under a new id, placing the copy
// immediately after the original in render order. Orders are renumbered to
// consecutive integers afterwards.
func DuplicateSection(doc ShopSettings, id string) ShopSettings {
	index := sectionIndex(doc.Sections, id)
	if index < 0 {
		return doc
	}
	out := Clone(doc)
	original := out.Sections[index]
	clone := original
	clone.ID = util.NewID("sec")
	clone.Settings = copyBag(original.Settings)
	clone.Order = original.Order + 0.5
	out.Sections = append(out.Sections, clone)
	out.Sections = Renumber(out.Sections, renderOrderIDs(out.Sections))
	return out
}

// ToggleSection flips the enabled flag; no-op for unknown ids.
func ToggleSection(doc ShopSettings, id string) ShopSettings {
	index := sectionIndex(doc.Sections, id)
	if index < 0 {
		return doc
	}
	out := Clone(doc)
	out.Sections[index].Enabled = !out.Sections[index].Enabled
	return out
}

// MoveSection swaps the section's order with its neighbor in render order.
// Moving the first section up or the last one down is a no-op.
func MoveSection(doc ShopSettings, id string, direction MoveDirection) ShopSettings {
	sorted := SortedByOrder(doc.Sections)
	position := -1
	for i, section := range sorted {
		if section.ID == id {
			position = i
			break
		}
	}
	if position < 0 {
		return doc
	}

	neighbor := position - 1
	if direction == MoveDown {
		neighbor = position + 1
	}
	if neighbor < 0 || neighbor >= len(sorted) {
		return doc
	}

	out := Clone(doc)
	orderA, orderB := sorted[position].Order, sorted[neighbor].Order
	for i := range out.Sections {
		switch out.Sections[i].ID {
		case sorted[position].ID:
			out.Sections[i].Order = orderB
		case sorted[neighbor].ID:
			out.Sections[i].Order = orderA
		}
	}
	return out
}

// ReorderSections moves the section at render position from to render
// position to (drag-and-drop), then renumbers every order to consecutive
// integers 0..N-1. Total renumbering on every reorder prevents order-value
// drift across long editing runs. Out-of-range positions are a no-op.
func ReorderSections(doc ShopSettings, from, to int) ShopSettings {
	ids := renderOrderIDs(doc.Sections)
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) || from == to {
		return doc
	}
	moved := ids[from]
	without := make([]string, 0, len(ids)-1)
	without = append(without, ids[:from]...)
	without = append(without, ids[from+1:]...)
	wanted := make([]string, 0, len(ids))
	wanted = append(wanted, without[:to]...)
	wanted = append(wanted, moved)
	wanted = append(wanted, without[to:]...)

	out := Clone(doc)
	out.Sections = Renumber(out.Sections, wanted)
	return out
}

// UpdateSectionSettings shallow-merges the patch into the section's settings
// bag. Keys the registry does not know are preserved for forward
// compatibility. No-op for unknown ids.
func UpdateSectionSettings(doc ShopSettings, id string, patch SettingsBag) ShopSettings {
	index := sectionIndex(doc.Sections, id)
	if index < 0 {
		return doc
	}
	out := Clone(doc)
	for key, value := range copyBag(patch) {
		out.Sections[index].Settings[key] = value
	}
	return out
}

// UpdateTheme shallow-merges the patch into the theme.
func UpdateTheme(doc ShopSettings, patch ThemePatch) ShopSettings {
	out := Clone(doc)
	out.Theme = patch.apply(out.Theme)
	return out
}

// UpdateMetadata shallow-merges the patch into the shop metadata.
func UpdateMetadata(doc ShopSettings, patch MetadataPatch) ShopSettings {
	out := Clone(doc)
	out.Metadata = patch.apply(out.Metadata)
	return out
}

// Template is the payload ApplyTemplate consumes: an optional theme patch
// and an optional full replacement section list. Both are applied in one
// atomic step.
type Template struct {
	Theme    *ThemePatch    `json:"theme,omitempty"`
	Sections []SectionInput `json:"sections,omitempty"`
}

// ApplyTemplate atomically replaces theme tokens and/or the entire section
// list. A structurally invalid payload (duplicate section ids) leaves the
// document untouched and returns a DocumentError. Incoming sections are
// normalized and renumbered to consecutive integer orders.
func ApplyTemplate(doc ShopSettings, tpl Template, reg Registry) (ShopSettings, error) {
	out := Clone(doc)

	if tpl.Sections != nil {
		seen := make(map[string]struct{}, len(tpl.Sections))
		sections := make([]Section, 0, len(tpl.Sections))
		for i, in := range tpl.Sections {
			order := float64(i)
			if in.Order == nil {
				in.Order = &order
			}
			section := NormalizeSection(in, sections)
			if _, ok := seen[section.ID]; ok {
				return doc, documentError("TEMPLATE_INVALID", "template section id %q appears twice", section.ID)
			}
			seen[section.ID] = struct{}{}
			if reg != nil && len(section.Settings) == 0 {
				section.Settings = reg.Defaults(section.Type)
			}
			sections = append(sections, section)
		}
		out.Sections = Renumber(sections, renderOrderIDs(sections))
	}

	if tpl.Theme != nil {
		out.Theme = tpl.Theme.apply(out.Theme)
	}

	if err := ValidateDocument(out); err != nil {
		return doc, err
	}
	return out, nil
}

func sectionIndex(sections []Section, id string) int {
	for i, section := range sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}
