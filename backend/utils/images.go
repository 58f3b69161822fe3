package utils

import "fmt"

// PlaceholderImage builds a deterministic-looking placeholder URL seeded by
// the entity name, used whenever no image was uploaded or generated.
func PlaceholderImage(seed string, width, height int) string {
	if seed == "" {
		seed = "preview"
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", stripSpaces(seed), width, height)
}

func stripSpaces(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
