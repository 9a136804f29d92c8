// Package template holds the builtin storefront template gallery and the
// conversion from a gallery entry to the document change a session applies.
package template

import (
	"storeforge/api/internal/editor"
)

// Definition is one gallery entry: the metadata shown on the template card
// plus the theme and section layout the template applies.
type Definition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`

	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	HeadingFont     string `json:"headingFont"`
	BodyFont        string `json:"bodyFont"`

	Layout []editor.SectionKind `json:"layout"`

	Rating    float64 `json:"rating"`
	Downloads int     `json:"downloads"`
	Pro       bool    `json:"pro"`
}

// Change builds the atomic document change this template applies: a theme
// patch from the template's palette and a full replacement section list from
// its layout. Section settings are left empty so the caller's registry fills
// per-kind defaults.
func (d Definition) Change() editor.Template {
	sections := make([]editor.SectionInput, 0, len(d.Layout))
	for i, kind := range d.Layout {
		order := float64(i)
		sections = append(sections, editor.SectionInput{Type: kind, Order: &order})
	}
	return editor.Template{
		Theme: &editor.ThemePatch{
			PrimaryColor:    strPtr(d.PrimaryColor),
			SecondaryColor:  strPtr(d.SecondaryColor),
			AccentColor:     strPtr(d.AccentColor),
			BackgroundColor: strPtr(d.BackgroundColor),
			HeadingFont:     strPtr(d.HeadingFont),
			BodyFont:        strPtr(d.BodyFont),
		},
		Sections: sections,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Find returns the gallery entry with the given id.
func Find(id string) (Definition, bool) {
	for _, d := range Gallery {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Categories returns the distinct gallery categories in gallery order.
func Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range Gallery {
		if _, ok := seen[d.Category]; !ok {
			seen[d.Category] = struct{}{}
			out = append(out, d.Category)
		}
	}
	return out
}
