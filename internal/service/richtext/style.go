package richtext

import (
	"fmt"
	"strconv"
	"strings"
)

// fontSizes maps toolbar sizes 1..7 to CSS font sizes. Size 7 has no keyword
// that survives sanitisation, so it uses the pixel size browsers give it.
var fontSizes = [...]string{"", "x-small", "small", "medium", "large", "x-large", "xx-large", "48px"}

func fontSizeKeyword(size int) string {
	if size < 1 || size >= len(fontSizes) {
		return ""
	}
	return fontSizes[size]
}

func fontSizeFromKeyword(keyword string) int {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	for i, k := range fontSizes {
		if i > 0 && k == keyword {
			return i
		}
	}
	return 0
}

// normalizeColor accepts #rgb, #rrggbb (with or without '#') and rgb(r, g, b).
// It returns a lowercase hex colour or "" when the value is not understood.
func normalizeColor(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(v, "rgb("), ")"), ",")
		if len(parts) != 3 {
			return ""
		}
		var rgb [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return ""
			}
			rgb[i] = n
		}
		return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
	}

	v = strings.TrimPrefix(v, "#")
	if len(v) != 3 && len(v) != 6 {
		return ""
	}
	for _, r := range v {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return ""
		}
	}
	return "#" + v
}

// parseStyle splits an inline style attribute into lowercase property/value pairs.
func parseStyle(style string) map[string]string {
	decls := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		decls[strings.ToLower(strings.TrimSpace(prop))] = strings.TrimSpace(value)
	}
	return decls
}
