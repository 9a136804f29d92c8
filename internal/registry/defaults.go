package registry

import "storeforge/api/internal/editor"

// DefaultTheme is the starting token set for a brand-new shop.
func DefaultTheme() editor.Theme {
	return editor.Theme{
		PrimaryColor:       "#2563eb",
		SecondaryColor:     "#1e40af",
		AccentColor:        "#f59e0b",
		BackgroundColor:    "#ffffff",
		TextColor:          "#0f172a",
		HeadingFont:        "Inter",
		BodyFont:           "Inter",
		BaseFontSize:       16,
		BorderRadiusSmall:  6,
		BorderRadiusMedium: 12,
		BorderRadiusLarge:  24,
		SectionSpacing:     64,
		ButtonStyle:        "solid",
		ButtonRounded:      true,
	}
}

// DefaultStorefront builds the document every new shop starts with: a
// working skeleton (announcement bar, header, hero, products, trust badges,
// newsletter, footer) so the first editor open shows a real page instead of
// an empty canvas.
func DefaultStorefront(name string) editor.ShopSettings {
	catalog := New()
	layout := []editor.SectionKind{
		"announcement-bar",
		"header",
		"hero-banner",
		"trust-badges",
		"featured-products",
		"product-grid",
		"newsletter",
		"footer",
	}

	sections := make([]editor.Section, 0, len(layout))
	for i, kind := range layout {
		order := float64(i)
		sections = append(sections, editor.NormalizeSection(editor.SectionInput{
			Type:     kind,
			Order:    &order,
			Settings: catalog.Defaults(kind),
		}, sections))
	}

	return editor.ShopSettings{
		Metadata: editor.Metadata{
			Name:                  name,
			Tagline:               "Your favorite online store",
			Currency:              "USD",
			FreeShippingThreshold: 50,
			ReturnWindowDays:      30,
		},
		Theme:    DefaultTheme(),
		Sections: sections,
	}
}
