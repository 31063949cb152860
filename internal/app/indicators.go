package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IndicatorMeta describes one pluggable indicator computation. RequiresPrice
// marks indicators that only make sense on an absolute price axis; enabling
// one forces the price view.
type IndicatorMeta struct {
	Name          string
	RequiresPrice bool
}

// DiscoverIndicators scans a directory of indicator scripts (*.py) and
// returns their metadata sorted by name. A script declares the price
// requirement with a "REQUIRES_PRICE = True" line. A missing or unreadable
// directory yields an empty list; the indicators themselves run in the
// delegated chart generator, not here.
func DiscoverIndicators(dir string) []IndicatorMeta {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []IndicatorMeta
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".py") {
			continue
		}
		stem := strings.TrimSuffix(name, ".py")
		if stem == "__init__" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		out = append(out, IndicatorMeta{
			Name:          stem,
			RequiresPrice: strings.Contains(string(content), "REQUIRES_PRICE = True"),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
