// Package tokens compiles a theme record into the flat design-token set the
// storefront renderer consumes as CSS custom properties. Compilation is pure
// and deterministic: the same theme always yields the same token set, so
// published artifacts diff cleanly.
package tokens

import (
	"fmt"
	"sort"
	"strings"

	"storeforge/api/internal/editor"
)

// TokenSet maps token names ("color-primary") to their rendered CSS values.
type TokenSet map[string]string

// Compile derives the full token set from a theme. Every theme field maps to
// at least one token; pixel-valued fields get a "px" suffix here so the
// renderer never does unit math.
func Compile(theme editor.Theme) TokenSet {
	buttonRadius := "0"
	if theme.ButtonRounded {
		buttonRadius = px(theme.BorderRadiusMedium)
	}
	return TokenSet{
		"color-primary":    theme.PrimaryColor,
		"color-secondary":  theme.SecondaryColor,
		"color-accent":     theme.AccentColor,
		"color-background": theme.BackgroundColor,
		"color-text":       theme.TextColor,
		"font-heading":     fontStack(theme.HeadingFont),
		"font-body":        fontStack(theme.BodyFont),
		"font-size-base":   px(theme.BaseFontSize),
		"radius-sm":        px(theme.BorderRadiusSmall),
		"radius-md":        px(theme.BorderRadiusMedium),
		"radius-lg":        px(theme.BorderRadiusLarge),
		"spacing-section":  px(theme.SectionSpacing),
		"button-style":     theme.ButtonStyle,
		"button-radius":    buttonRadius,
	}
}

// Diff returns the tokens whose value in next differs from prev, including
// tokens absent on either side (removed tokens map to the empty string). An
// empty result means the compiled themes are identical.
func Diff(prev, next TokenSet) map[string]string {
	changed := make(map[string]string)
	for name, value := range next {
		if prev[name] != value {
			changed[name] = value
		}
	}
	for name := range prev {
		if _, ok := next[name]; !ok {
			changed[name] = ""
		}
	}
	return changed
}

// CSS renders the set as a custom-property block under the given selector,
// with token names sorted for byte-stable output.
func (t TokenSet) CSS(selector string) string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  --%s: %s;\n", name, t[name])
	}
	b.WriteString("}\n")
	return b.String()
}

func px(v int) string {
	return fmt.Sprintf("%dpx", v)
}

// fontStack quotes multi-word family names and appends the generic fallback.
func fontStack(family string) string {
	family = strings.TrimSpace(family)
	if family == "" {
		return "sans-serif"
	}
	if strings.ContainsAny(family, " \t") {
		family = `"` + family + `"`
	}
	return family + ", sans-serif"
}
