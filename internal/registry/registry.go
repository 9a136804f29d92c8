// Package registry owns the catalog of storefront section kinds: which kinds
// exist, how the editor palette groups and labels them, and the default
// settings a freshly added section starts with. Documents may reference kinds
// the registry does not know; those render through a generic fallback and the
// registry hands them an empty settings bag.
package registry

import (
	"sort"

	"storeforge/api/internal/editor"
)

// Kind describes one section kind for the editor palette.
type Kind struct {
	Type        editor.SectionKind `json:"type"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Icon        string             `json:"icon"`
}

// Categories for the palette sidebar, in display order.
var Categories = []string{
	"structure", "hero", "products", "categories",
	"marketing", "social", "content", "contact", "layout",
}

var kinds = []Kind{
	{Type: "announcement-bar", Name: "Announcement bar", Description: "Top banner with rotating messages", Category: "structure", Icon: "megaphone"},
	{Type: "header", Name: "Header", Description: "Logo, navigation, cart", Category: "structure", Icon: "layout-top"},
	{Type: "footer", Name: "Footer", Description: "Contact details and links", Category: "structure", Icon: "layout-bottom"},
	{Type: "hero-slider", Name: "Hero slider", Description: "Rotating full-width banner", Category: "hero", Icon: "carousel"},
	{Type: "hero-banner", Name: "Hero banner", Description: "Static full-width banner", Category: "hero", Icon: "image"},
	{Type: "hero-video", Name: "Hero video", Description: "Video background banner", Category: "hero", Icon: "video"},
	{Type: "featured-products", Name: "Featured products", Description: "Hand-picked product highlights", Category: "products", Icon: "star"},
	{Type: "product-grid", Name: "Product grid", Description: "Grid of catalog products", Category: "products", Icon: "grid"},
	{Type: "product-carousel", Name: "Product carousel", Description: "Horizontally scrolling products", Category: "products", Icon: "slider"},
	{Type: "categories-grid", Name: "Category grid", Description: "Grid of catalog categories", Category: "categories", Icon: "boxes"},
	{Type: "promo-banner", Name: "Promo banner", Description: "Campaign banner with call to action", Category: "marketing", Icon: "target"},
	{Type: "countdown-timer", Name: "Countdown timer", Description: "Sale deadline countdown", Category: "marketing", Icon: "clock"},
	{Type: "newsletter", Name: "Newsletter", Description: "Email signup form", Category: "marketing", Icon: "mail"},
	{Type: "testimonials", Name: "Testimonials", Description: "Customer reviews", Category: "social", Icon: "quote"},
	{Type: "trust-badges", Name: "Trust badges", Description: "Shop guarantees and perks", Category: "social", Icon: "shield"},
	{Type: "brand-logos", Name: "Brand logos", Description: "Partner and brand logos", Category: "social", Icon: "tag"},
	{Type: "instagram-feed", Name: "Instagram feed", Description: "Latest Instagram posts", Category: "social", Icon: "camera"},
	{Type: "faq-accordion", Name: "FAQ", Description: "Frequently asked questions", Category: "content", Icon: "help"},
	{Type: "image-with-text", Name: "Image with text", Description: "Side-by-side image and copy", Category: "content", Icon: "columns"},
	{Type: "rich-text", Name: "Rich text", Description: "Formatted text block", Category: "content", Icon: "text"},
	{Type: "blog-posts", Name: "Blog posts", Description: "Latest articles", Category: "content", Icon: "newspaper"},
	{Type: "contact-form", Name: "Contact form", Description: "Message form", Category: "contact", Icon: "envelope"},
	{Type: "map-section", Name: "Map", Description: "Store location map", Category: "contact", Icon: "map"},
	{Type: "spacer", Name: "Spacer", Description: "Vertical whitespace", Category: "layout", Icon: "arrows-vertical"},
	{Type: "divider", Name: "Divider", Description: "Horizontal rule", Category: "layout", Icon: "minus"},
	{Type: "custom-html", Name: "Custom HTML", Description: "Raw markup block", Category: "layout", Icon: "code"},
}

var defaults = map[editor.SectionKind]editor.SettingsBag{
	"announcement-bar": {
		"messages": []string{"Free shipping on orders over $50"},
		"backgroundColor": "#0f172a",
		"textColor": "#ffffff",
		"autoRotate": true,
		"rotateSpeedMs": 4000,
	},
	"header": {
		"sticky": true,
		"showSearch": true,
		"showCart": true,
		"showAccount": true,
	},
	"footer": {
		"showNewsletter": true,
		"showPayments": true,
		"columns": 4,
	},
	"hero-slider": {
		"autoplay": true,
		"speedMs": 5000,
		"showArrows": true,
		"showDots": true,
		"heightPx": 500,
		"slideCount": 3,
	},
	"hero-banner": {
		"heading": "Welcome to our store",
		"subheading": "Discover the new collection",
		"buttonText": "Shop now",
		"buttonLink": "/products",
		"heightPx": 480,
		"overlay": true,
	},
	"hero-video": {
		"videoUrl": "",
		"muted": true,
		"loop": true,
		"heightPx": 540,
	},
	"featured-products": {
		"title": "Featured products",
		"productIds": []string{},
		"columns": 4,
		"showPrices": true,
		"showRatings": true,
	},
	"product-grid": {
		"title": "Our products",
		"columns": 4,
		"rows": 2,
		"sortBy": "newest",
		"showFilter": true,
	},
	"product-carousel": {
		"title": "You may also like",
		"autoplay": false,
		"showArrows": true,
	},
	"categories-grid": {
		"title": "Shop by category",
		"columns": 6,
		"style": "cards",
	},
	"promo-banner": {
		"heading": "Seasonal sale",
		"subheading": "Up to 50% off selected items",
		"buttonText": "View deals",
		"buttonLink": "/sale",
		"backgroundColor": "#dc2626",
		"textColor": "#ffffff",
	},
	"countdown-timer": {
		"heading": "Offer ends soon",
		"deadline": "",
		"showDays": true,
	},
	"newsletter": {
		"heading": "Stay in the loop",
		"subheading": "Get news and exclusive offers",
		"buttonText": "Subscribe",
		"placeholder": "Your email address",
	},
	"testimonials": {
		"title": "What our customers say",
		"style": "cards",
		"showRatings": true,
	},
	"trust-badges": {
		"layout": "horizontal",
		"style": "minimal",
	},
	"brand-logos": {
		"title": "Brands we carry",
		"grayscale": true,
	},
	"instagram-feed": {
		"handle": "",
		"columns": 6,
	},
	"faq-accordion": {
		"title": "Frequently asked questions",
		"allowMultiple": false,
	},
	"image-with-text": {
		"heading": "Our story",
		"body": "",
		"imageUrl": "",
		"imagePosition": "left",
	},
	"rich-text": {
		"body": "",
		"alignment": "left",
		"maxWidth": 720,
	},
	"blog-posts": {
		"title": "From the blog",
		"count": 3,
		"showDates": true,
	},
	"contact-form": {
		"title": "Get in touch",
		"showPhone": false,
		"successText": "Thanks, we will get back to you soon.",
	},
	"map-section": {
		"address": "",
		"zoom": 14,
	},
	"spacer": {
		"heightPx": 48,
	},
	"divider": {
		"style": "solid",
		"widthPct": 100,
	},
	"custom-html": {
		"html": "",
	},
}

var byType = func() map[editor.SectionKind]Kind {
	m := make(map[editor.SectionKind]Kind, len(kinds))
	for _, k := range kinds {
		m[k.Type] = k
	}
	return m
}()

// Catalog exposes the builtin kind set through the editor.Registry interface.
type Catalog struct{}

// New returns the builtin catalog.
func New() Catalog { return Catalog{} }

// Known reports whether the kind is in the builtin set.
func (Catalog) Known(kind editor.SectionKind) bool {
	_, ok := byType[kind]
	return ok
}

// Defaults returns a fresh copy of the kind's default settings bag. Unknown
// kinds get an empty bag.
func (Catalog) Defaults(kind editor.SectionKind) editor.SettingsBag {
	src, ok := defaults[kind]
	if !ok {
		return editor.SettingsBag{}
	}
	out := make(editor.SettingsBag, len(src))
	for key, value := range src {
		switch v := value.(type) {
		case []string:
			out[key] = append([]string(nil), v...)
		default:
			out[key] = v
		}
	}
	return out
}

// DisplayName returns the palette label, or a generic "section: <type>"
// fallback for kinds the catalog does not know.
func (Catalog) DisplayName(kind editor.SectionKind) string {
	if k, ok := byType[kind]; ok {
		return k.Name
	}
	return "section: " + string(kind)
}

// List returns the full palette, grouped by category order then name.
func (Catalog) List() []Kind {
	out := append([]Kind(nil), kinds...)
	rank := make(map[string]int, len(Categories))
	for i, c := range Categories {
		rank[c] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return rank[out[i].Category] < rank[out[j].Category]
		}
		return out[i].Name < out[j].Name
	})
	return out
}
