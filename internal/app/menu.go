package app

import "fmt"

// ItemKind tags a settings-menu entry with its activation behaviour. Items
// carry their behaviour as data; nothing dispatches on list position.
type ItemKind int

const (
	ItemSubmenuIndicators ItemKind = iota
	ItemSubmenuTimeframe
	ItemSubmenuInterval
	ItemToggleView
	ItemToggleChartKind
	ItemToggle24h
	ItemToggleHeader
	ItemSaveExit
)

// SettingsItem is one entry of the root settings menu.
type SettingsItem struct {
	Kind ItemKind
}

// settingsItems is the fixed root menu, in display order.
func settingsItems() []SettingsItem {
	return []SettingsItem{
		{Kind: ItemSubmenuIndicators},
		{Kind: ItemSubmenuTimeframe},
		{Kind: ItemSubmenuInterval},
		{Kind: ItemToggleView},
		{Kind: ItemToggleChartKind},
		{Kind: ItemToggle24h},
		{Kind: ItemToggleHeader},
		{Kind: ItemSaveExit},
	}
}

// Label renders the entry text with the live setting values folded in.
func (it SettingsItem) Label(s *State) string {
	switch it.Kind {
	case ItemSubmenuIndicators:
		return "Indicators >"
	case ItemSubmenuTimeframe:
		return fmt.Sprintf("Timeframe: %s", s.Timeframe)
	case ItemSubmenuInterval:
		return fmt.Sprintf("Interval: %s", s.Interval)
	case ItemToggleView:
		if s.PriceView {
			return "View: Price"
		}
		return "View: % Change"
	case ItemToggleChartKind:
		if s.ChartKind == ChartKindCandle {
			return "Type: Candle"
		}
		return "Type: Line"
	case ItemToggle24h:
		if s.Use24h {
			return "Time: 24h"
		}
		return "Time: 12h"
	case ItemToggleHeader:
		if s.ShowHeader {
			return "Header: Show"
		}
		return "Header: Hide"
	case ItemSaveExit:
		return "Save & Exit"
	}
	return ""
}

// cycle advances a cursor by delta over n entries, wrapping at both ends.
func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	i = (i + delta) % n
	if i < 0 {
		i += n
	}
	return i
}
