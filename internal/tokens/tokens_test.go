package tokens

import (
	"strings"
	"testing"

	"storeforge/api/internal/editor"
)

func testTheme() editor.Theme {
	return editor.Theme{
		PrimaryColor:       "#2563eb",
		SecondaryColor:     "#1e40af",
		AccentColor:        "#f59e0b",
		BackgroundColor:    "#ffffff",
		TextColor:          "#0f172a",
		HeadingFont:        "Playfair Display",
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

func TestCompile(t *testing.T) {
	set := Compile(testTheme())

	want := map[string]string{
		"color-primary":  "#2563eb",
		"font-heading":   `"Playfair Display", sans-serif`,
		"font-body":      "Inter, sans-serif",
		"font-size-base": "16px",
		"radius-md":      "12px",
		"spacing-section": "64px",
		"button-style":   "solid",
		"button-radius":  "12px",
	}
	for name, value := range want {
		if set[name] != value {
			t.Errorf("token %s = %q, want %q", name, set[name], value)
		}
	}
}

func TestCompileSquareButtons(t *testing.T) {
	theme := testTheme()
	theme.ButtonRounded = false
	if got := Compile(theme)["button-radius"]; got != "0" {
		t.Fatalf("square buttons should compile to radius 0, got %q", got)
	}
}

func TestCompileEmptyFontFallsBack(t *testing.T) {
	theme := testTheme()
	theme.BodyFont = ""
	if got := Compile(theme)["font-body"]; got != "sans-serif" {
		t.Fatalf("empty font should fall back to sans-serif, got %q", got)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	a := Compile(testTheme()).CSS(":root")
	b := Compile(testTheme()).CSS(":root")
	if a != b {
		t.Fatal("compilation must be byte-stable")
	}
}

func TestDiff(t *testing.T) {
	prev := Compile(testTheme())

	theme := testTheme()
	theme.PrimaryColor = "#dc2626"
	theme.SectionSpacing = 48
	next := Compile(theme)

	changed := Diff(prev, next)
	if len(changed) != 2 {
		t.Fatalf("expected 2 changed tokens, got %v", changed)
	}
	if changed["color-primary"] != "#dc2626" || changed["spacing-section"] != "48px" {
		t.Fatalf("unexpected diff: %v", changed)
	}

	if len(Diff(prev, prev)) != 0 {
		t.Fatal("identical sets must diff empty")
	}

	delete(next, "button-style")
	if got := Diff(prev, next)["button-style"]; got != "" {
		t.Fatalf("removed token should diff to empty string, got %q", got)
	}
}

func TestCSSOutput(t *testing.T) {
	css := TokenSet{"color-primary": "#2563eb", "radius-md": "12px"}.CSS(":root")

	if !strings.HasPrefix(css, ":root {\n") || !strings.HasSuffix(css, "}\n") {
		t.Fatalf("malformed block:\n%s", css)
	}
	if !strings.Contains(css, "  --color-primary: #2563eb;\n") {
		t.Fatalf("missing property:\n%s", css)
	}
	// Sorted: color-primary before radius-md.
	if strings.Index(css, "--color-primary") > strings.Index(css, "--radius-md") {
		t.Fatalf("properties not sorted:\n%s", css)
	}
}
