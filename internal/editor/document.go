// Package editor implements the storefront editing engine: the document
// model, the mutation operations every UI control goes through, the bounded
// undo/redo history, and the save coordination against a persistence backend.
package editor

import (
	"encoding/json"
	"math"
	"strings"

	"storeforge/api/internal/util"
)

// SectionKind names a section block type ("hero-banner", "product-grid", ...).
// The set of kinds is owned by the registry collaborator; documents may carry
// kinds the current registry does not know.
type SectionKind string

// SettingsBag holds the per-section settings. Values are scalars or string
// slices; unknown keys are preserved so renderer-only settings survive a
// round trip through the editor.
type SettingsBag map[string]any

// Section is one addressable, orderable, toggleable block of the storefront
// layout. ID and Type are immutable for the section's lifetime; the sequence
// sorted by Order defines render order.
type Section struct {
	ID       string      `json:"id"`
	Type     SectionKind `json:"type"`
	Order    float64     `json:"order"`
	Enabled  bool        `json:"enabled"`
	Settings SettingsBag `json:"settings"`
}

// Theme is the flat record of design tokens shared by every section.
// Color fields hold normalized 7-character hex strings; numeric fields are
// non-negative.
type Theme struct {
	PrimaryColor       string `json:"primaryColor"`
	SecondaryColor     string `json:"secondaryColor"`
	AccentColor        string `json:"accentColor"`
	BackgroundColor    string `json:"backgroundColor"`
	TextColor          string `json:"textColor"`
	HeadingFont        string `json:"headingFont"`
	BodyFont           string `json:"bodyFont"`
	BaseFontSize       int    `json:"baseFontSize"`
	BorderRadiusSmall  int    `json:"borderRadiusSmall"`
	BorderRadiusMedium int    `json:"borderRadiusMedium"`
	BorderRadiusLarge  int    `json:"borderRadiusLarge"`
	SectionSpacing     int    `json:"sectionSpacing"`
	ButtonStyle        string `json:"buttonStyle"`
	ButtonRounded      bool   `json:"buttonRounded"`
}

// Metadata holds the shop-level fields edited alongside the layout.
type Metadata struct {
	Name                  string  `json:"name"`
	Tagline               string  `json:"tagline"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	Address               string  `json:"address"`
	Currency              string  `json:"currency"`
	SEOTitle              string  `json:"seoTitle"`
	SEODescription        string  `json:"seoDescription"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
	ReturnWindowDays      int     `json:"returnWindowDays"`
}

// ShopSettings is the full document a single editing session operates on.
type ShopSettings struct {
	Metadata Metadata  `json:"metadata"`
	Theme    Theme     `json:"theme"`
	Sections []Section `json:"sections"`
}

// Registry supplies per-kind knowledge from the section-kind registry
// collaborator. Unknown kinds must yield an empty settings bag, not an error.
type Registry interface {
	Known(kind SectionKind) bool
	Defaults(kind SectionKind) SettingsBag
}

// SectionInput is a section as supplied by a template or an import, before
// defaults are filled in. Nil Order and Enabled mean "absent".
type SectionInput struct {
	ID       string      `json:"id"`
	Type     SectionKind `json:"type"`
	Order    *float64    `json:"order"`
	Enabled  *bool       `json:"enabled"`
	Settings SettingsBag `json:"settings"`
}

// NormalizeSection fills defaults: a fresh ID when absent, Enabled true,
// an empty settings bag, and Order = max existing order + 1 (0 for an empty
// document).
func NormalizeSection(in SectionInput, existing []Section) Section {
	section := Section{
		ID:      in.ID,
		Type:    in.Type,
		Enabled: true,
	}
	if section.ID == "" {
		section.ID = util.NewID("sec")
	}
	if in.Enabled != nil {
		section.Enabled = *in.Enabled
	}
	if in.Order != nil {
		section.Order = *in.Order
	} else {
		section.Order = nextOrder(existing)
	}
	if in.Settings != nil {
		section.Settings = copyBag(in.Settings)
	} else {
		section.Settings = SettingsBag{}
	}
	return section
}

func nextOrder(sections []Section) float64 {
	if len(sections) == 0 {
		return 0
	}
	max := math.Inf(-1)
	for _, section := range sections {
		if section.Order > max {
			max = section.Order
		}
	}
	return max + 1
}

// ValidateDocument rejects structural corruption: missing or duplicate
// section IDs, duplicate order values, and non-finite orders. Unknown
// section kinds are deliberately tolerated; the renderer shows them via a
// generic fallback instead of destroying user data.
func ValidateDocument(doc ShopSettings) error {
	seenIDs := make(map[string]struct{}, len(doc.Sections))
	seenOrders := make(map[float64]struct{}, len(doc.Sections))
	for _, section := range doc.Sections {
		if strings.TrimSpace(section.ID) == "" {
			return documentError("MISSING_SECTION_ID", "section of kind %q has no id", section.Type)
		}
		if _, ok := seenIDs[section.ID]; ok {
			return documentError("DUPLICATE_SECTION_ID", "duplicate section id %q", section.ID)
		}
		seenIDs[section.ID] = struct{}{}
		if math.IsNaN(section.Order) || math.IsInf(section.Order, 0) {
			return documentError("INVALID_ORDER", "section %q has non-finite order", section.ID)
		}
		if _, ok := seenOrders[section.Order]; ok {
			return documentError("DUPLICATE_ORDER", "duplicate order %v (section %q)", section.Order, section.ID)
		}
		seenOrders[section.Order] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy. History entries and saved snapshots hold clones
// so that no later mutation can alias into them.
func Clone(doc ShopSettings) ShopSettings {
	out := doc
	out.Sections = cloneSections(doc.Sections)
	return out
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, section := range sections {
		out[i] = section
		out[i].Settings = copyBag(section.Settings)
	}
	return out
}

func copyBag(bag SettingsBag) SettingsBag {
	out := make(SettingsBag, len(bag))
	for key, value := range bag {
		switch v := value.(type) {
		case []string:
			out[key] = append([]string(nil), v...)
		case []any:
			out[key] = append([]any(nil), v...)
		default:
			out[key] = v
		}
	}
	return out
}

// Equal reports structural equality: order-sensitive for the section
// sequence, order-independent for settings bags. Comparison goes through the
// canonical JSON encoding, which sorts map keys.
func Equal(a, b ShopSettings) bool {
	rawA, errA := json.Marshal(a)
	rawB, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(rawA) == string(rawB)
}

// normalizeHexColor canonicalizes CSS hex colors to lowercase #rrggbb.
// The short #rgb form is expanded. Returns false for anything else.
func normalizeHexColor(input string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	hexPart := s[1:]
	for _, r := range hexPart {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", false
		}
	}
	switch len(hexPart) {
	case 6:
		return s, true
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(hexPart[i])
			b.WriteByte(hexPart[i])
		}
		return b.String(), true
	default:
		return "", false
	}
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
