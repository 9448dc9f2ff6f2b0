package catalog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tikkit/tikkit/internal/model"
)

// Asset files follow the convention Category_Item Name_Price.png, with an
// optional trailing single-digit orientation suffix:
// Category_Item Name_Price_N.png. The number of files sharing a
// (category, name, price) key is the item's orientation variant count.
// The catalog only consumes the counts; asset content is a presentation
// concern.

// scanAssets counts orientation variants per item name. A missing or
// unreadable directory yields no overrides.
func scanAssets(dir string) map[model.ItemName]int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	counts := make(map[model.ItemName]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := parseAssetName(entry.Name())
		if !ok {
			continue
		}
		counts[name]++
	}
	return counts
}

// parseAssetName extracts the item name from an asset file name, or
// reports false for files that do not follow the convention.
func parseAssetName(filename string) (model.ItemName, bool) {
	if !strings.EqualFold(filepath.Ext(filename), ".png") {
		return "", false
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(base, "_")

	// Category_Name_Price_N: single-digit orientation suffix.
	if len(parts) >= 4 && isDigits(parts[len(parts)-1]) && len(parts[len(parts)-1]) == 1 && isDigits(parts[len(parts)-2]) {
		return model.ItemName(strings.Join(parts[1:len(parts)-2], " ")), true
	}
	// Category_Name_Price: single orientation.
	if len(parts) >= 3 && isDigits(parts[len(parts)-1]) {
		return model.ItemName(strings.Join(parts[1:len(parts)-1], " ")), true
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil && !strings.ContainsAny(s, "+-")
}
