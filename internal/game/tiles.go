package game

import (
	"strings"

	"spritemap/internal/atlas"
)

// tileList returns the atlas indices matching query and the raygui
// ListView text for them.
func tileList(desc *atlas.Descriptor, query string) ([]int, string) {
	indices := desc.Filter(query)
	names := make([]string, len(indices))
	for i, idx := range indices {
		// ';' separates ListView rows
		names[i] = strings.ReplaceAll(desc.Frames[idx].Filename, ";", ",")
	}
	return indices, strings.Join(names, ";")
}

// rowOf is the ListView row showing tile, or -1.
func rowOf(indices []int, tile int) int32 {
	for i, idx := range indices {
		if idx == tile {
			return int32(i)
		}
	}
	return -1
}
