package template

import "storeforge/api/internal/editor"

func layout(kinds ...editor.SectionKind) []editor.SectionKind { return kinds }

// Gallery is the builtin template catalog, grouped loosely by vertical.
var Gallery = []Definition{
	{
		ID:          "fashion-minimal",
		Name:        "Fashion Minimal",
		Category:    "fashion",
		Description: "Elegant minimalist design for fashion brands.",
		Features:    []string{"Fullscreen hero", "Lookbook gallery", "Quick view", "Size guide"},

		PrimaryColor: "#000000", SecondaryColor: "#ffffff",
		AccentColor: "#c9a86c", BackgroundColor: "#fafafa",
		HeadingFont: "Playfair Display", BodyFont: "Inter",

		Layout: layout("announcement-bar", "header", "hero-banner", "featured-products",
			"image-with-text", "product-grid", "newsletter", "footer"),
		Rating: 4.9, Downloads: 12450,
	},
	{
		ID:          "fashion-luxury",
		Name:        "Fashion Luxury",
		Category:    "fashion",
		Description: "Dark, premium look for high-end labels.",
		Features:    []string{"Video hero", "Editorial gallery", "VIP section"},

		PrimaryColor: "#1a1a2e", SecondaryColor: "#eaeaea",
		AccentColor: "#d4af37", BackgroundColor: "#0f0f0f",
		HeadingFont: "Cormorant Garamond", BodyFont: "Lato",

		Layout: layout("header", "hero-video", "featured-products", "image-with-text",
			"testimonials", "newsletter", "footer"),
		Rating: 4.8, Downloads: 8320, Pro: true,
	},
	{
		ID:          "streetwear-culture",
		Name:        "Streetwear Culture",
		Category:    "fashion",
		Description: "Bold typography and drop countdowns for streetwear.",
		Features:    []string{"Bold typography", "Drop countdown", "Community feed"},

		PrimaryColor: "#ff3366", SecondaryColor: "#00ff88",
		AccentColor: "#ffff00", BackgroundColor: "#111111",
		HeadingFont: "Bebas Neue", BodyFont: "Roboto",

		Layout: layout("announcement-bar", "header", "hero-slider", "countdown-timer",
			"product-grid", "instagram-feed", "footer"),
		Rating: 4.7, Downloads: 6780, Pro: true,
	},
	{
		ID:          "tech-store",
		Name:        "Tech Store Pro",
		Category:    "electronics",
		Description: "Clean, modern layout for electronics and gadgets.",
		Features:    []string{"Product comparison", "Spec sheets", "Support section"},

		PrimaryColor: "#0066ff", SecondaryColor: "#00d4ff",
		AccentColor: "#ff6b35", BackgroundColor: "#f5f7fa",
		HeadingFont: "Poppins", BodyFont: "Inter",

		Layout: layout("announcement-bar", "header", "hero-banner", "categories-grid",
			"featured-products", "product-grid", "trust-badges", "faq-accordion", "footer"),
		Rating: 4.9, Downloads: 18920,
	},
	{
		ID:          "gaming-zone",
		Name:        "Gaming Zone",
		Category:    "electronics",
		Description: "High-contrast neon look for gaming gear.",
		Features:    []string{"Neon palette", "Release countdowns", "Brand wall"},

		PrimaryColor: "#9945ff", SecondaryColor: "#14f195",
		AccentColor: "#ff0080", BackgroundColor: "#0a0a0a",
		HeadingFont: "Orbitron", BodyFont: "Rajdhani",

		Layout: layout("header", "hero-slider", "countdown-timer", "product-grid",
			"brand-logos", "newsletter", "footer"),
		Rating: 4.8, Downloads: 9450, Pro: true,
	},
	{
		ID:          "organic-market",
		Name:        "Organic Market",
		Category:    "food",
		Description: "Warm, natural palette for groceries and farm shops.",
		Features:    []string{"Recipe section", "Subscription boxes", "Farm stories"},

		PrimaryColor: "#2d5a27", SecondaryColor: "#8bc34a",
		AccentColor: "#ff9800", BackgroundColor: "#fefefe",
		HeadingFont: "Merriweather", BodyFont: "Open Sans",

		Layout: layout("announcement-bar", "header", "hero-banner", "categories-grid",
			"image-with-text", "product-grid", "testimonials", "newsletter", "footer"),
		Rating: 4.7, Downloads: 7890,
	},
	{
		ID:          "restaurant-delivery",
		Name:        "Restaurant & Delivery",
		Category:    "food",
		Description: "Appetizing layout for restaurants with delivery.",
		Features:    []string{"Menu grid", "Opening hours", "Location map"},

		PrimaryColor: "#c62828", SecondaryColor: "#ffb300",
		AccentColor: "#4caf50", BackgroundColor: "#fff8f0",
		HeadingFont: "Playfair Display", BodyFont: "Nunito",

		Layout: layout("header", "hero-banner", "product-grid", "image-with-text",
			"testimonials", "map-section", "contact-form", "footer"),
		Rating: 4.9, Downloads: 11230, Pro: true,
	},
	{
		ID:          "beauty-glamour",
		Name:        "Beauty Glamour",
		Category:    "beauty",
		Description: "Soft, elegant design for cosmetics.",
		Features:    []string{"Shade finder", "Beauty quiz", "Tutorials"},

		PrimaryColor: "#e91e63", SecondaryColor: "#f8bbd9",
		AccentColor: "#9c27b0", BackgroundColor: "#fff5f8",
		HeadingFont: "Cormorant Garamond", BodyFont: "Quicksand",

		Layout: layout("announcement-bar", "header", "hero-slider", "featured-products",
			"image-with-text", "instagram-feed", "newsletter", "footer"),
		Rating: 4.8, Downloads: 9870,
	},
	{
		ID:          "skincare-lab",
		Name:        "Skincare Lab",
		Category:    "beauty",
		Description: "Clinical, ingredient-first look for skincare.",
		Features:    []string{"Ingredient glossary", "Routine builder", "Expert advice"},

		PrimaryColor: "#00695c", SecondaryColor: "#b2dfdb",
		AccentColor: "#ff7043", BackgroundColor: "#ffffff",
		HeadingFont: "Montserrat", BodyFont: "Source Sans Pro",

		Layout: layout("header", "hero-banner", "image-with-text", "product-grid",
			"faq-accordion", "testimonials", "newsletter", "footer"),
		Rating: 4.9, Downloads: 6540, Pro: true,
	},
	{
		ID:          "modern-living",
		Name:        "Modern Living",
		Category:    "home",
		Description: "Airy showcase for furniture and interior goods.",
		Features:    []string{"Room gallery", "Material guides", "Delivery info"},

		PrimaryColor: "#3e2723", SecondaryColor: "#d7ccc8",
		AccentColor: "#ff8a65", BackgroundColor: "#fafafa",
		HeadingFont: "DM Serif Display", BodyFont: "Inter",

		Layout: layout("header", "hero-banner", "categories-grid", "image-with-text",
			"featured-products", "trust-badges", "footer"),
		Rating: 4.6, Downloads: 5310,
	},
	{
		ID:          "jewelry-luxe",
		Name:        "Jewelry Luxe",
		Category:    "jewelry",
		Description: "Refined dark-gold stage for fine jewelry.",
		Features:    []string{"Collection stories", "Gift guide", "Care instructions"},

		PrimaryColor: "#212121", SecondaryColor: "#bfa046",
		AccentColor: "#ffffff", BackgroundColor: "#141414",
		HeadingFont: "Cinzel", BodyFont: "Lora",

		Layout: layout("announcement-bar", "header", "hero-banner", "featured-products",
			"image-with-text", "testimonials", "footer"),
		Rating: 4.8, Downloads: 4720, Pro: true,
	},
}
