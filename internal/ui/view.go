package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockterm/internal/app"
)

// headerHeight is the title bar plus the two stat lines.
const headerHeight = 3

// Styles.
var (
	titleBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	symbolStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	priceStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lossStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	gainLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	checkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	starStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	backStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	popupStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(0, 1)
	popupTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("3"))
)

// render draws the whole frame from the view model.
func render(vm app.ViewModel, width, height int) string {
	var b strings.Builder

	bodyH := height - 1 // footer
	if vm.ShowHeader {
		b.WriteString(renderHeader(vm, width))
		bodyH -= headerHeight
	}

	b.WriteString(renderBody(vm, width, bodyH))
	b.WriteString(renderFooter(vm, width))
	return b.String()
}

func renderHeader(vm app.ViewModel, width int) string {
	title := fmt.Sprintf(" stockterm  %s | %s (%s) ", vm.Ticker, vm.TickerName, vm.TickerKind)

	var line1, line2 string
	switch {
	case vm.Err != "":
		line1 = errStyle.Render(" Error: " + vm.Err)
		line2 = dimStyle.Render(" showing last good data")
		if vm.Quote == nil {
			line2 = ""
		}
	case vm.Quote == nil:
		line1 = dimStyle.Render(" waiting for first quote...")
	default:
		q := vm.Quote
		trend, icon := gainStyle, "▲"
		if q.ChangePct < 0 {
			trend, icon = lossStyle, "▼"
		}
		line1 = " " + symbolStyle.Render(q.Symbol) + "  " +
			priceStyle.Render(fmt.Sprintf("%s %s", FormatPrice(q.Price), q.Currency)) + "  " +
			trend.Render(fmt.Sprintf("%s %.2f (%.2f%%)", icon, q.Change, absf(q.ChangePct)))
		line2 = dimStyle.Render(fmt.Sprintf(" O: %s  H: %s  L: %s  Vol: %s",
			FormatPrice(q.Open), FormatPrice(q.High), FormatPrice(q.Low), FormatVolume(q.Volume)))
	}

	return titleBarStyle.Render(padOrTrunc(title, width)) + "\n" + line1 + "\n" + line2 + "\n"
}

func renderBody(vm app.ViewModel, width, height int) string {
	if height < 2 {
		return ""
	}

	view := "% Change"
	if vm.PriceView {
		view = "Price"
	}
	session := ""
	if vm.ShowPreMarket {
		session = "  [pre-market]"
	}
	chartTitle := dimStyle.Render(fmt.Sprintf(" %s %s (%s)%s", vm.Timeframe, view, vm.Interval, session))

	var body string
	switch {
	case vm.Mode == app.ModeSearch:
		body = overlay(renderSearch(vm), width, height-1)
	case vm.Mode.Modal():
		body = overlay(renderMenu(vm), width, height-1)
	case vm.ShowHelp:
		body = overlay(renderHelp(), width, height-1)
	case len(vm.Points) == 0:
		body = overlay(dimStyle.Render("Loading data..."), width, height-1)
	default:
		lineStyle := gainLineStyle
		if vm.Quote != nil && vm.Quote.ChangePct < 0 {
			lineStyle = lossLineStyle
		}
		body = renderChart(vm.Points, vm.Window, width, height-1, vm.PriceView, vm.Use24h, lineStyle)
	}

	return chartTitle + "\n" + body + "\n"
}

func renderFooter(vm app.ViewModel, width int) string {
	left := " ctrl+o ticker  ctrl+s settings  ctrl+p pre-market  ctrl+h help  q quit"
	right := fmt.Sprintf("next %ds ", int(vm.NextRefresh.Seconds()))
	gap := width - len(left) - len(right)
	if gap < 0 {
		gap = 0
	}
	return footerStyle.Render(padOrTrunc(left+strings.Repeat(" ", gap)+right, width))
}

// overlay centers popup content within the body area.
func overlay(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// maxResultRows caps the search popup height.
const maxResultRows = 12

func renderSearch(vm app.ViewModel) string {
	var b strings.Builder
	b.WriteString(popupTitle.Render("Select Ticker"))
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Render(vm.SearchView))
	b.WriteString("\n")

	if len(vm.Results) == 0 {
		b.WriteString(dimStyle.Render("  (no matches)"))
	}
	for i, r := range vm.Results {
		if i >= maxResultRows {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(vm.Results)-maxResultRows)))
			break
		}
		marker := "   "
		row := fmt.Sprintf("%-6s %s (%s)", r.Symbol, r.Name, r.Kind)
		if i == vm.ResultCursor {
			marker = ">> "
			row = cursorStyle.Render(row)
		}
		b.WriteString(marker + row + "\n")
	}
	return popupStyle.Render(b.String())
}

func renderMenu(vm app.ViewModel) string {
	var b strings.Builder
	b.WriteString(popupTitle.Render(vm.MenuTitle))
	b.WriteString("\n")

	for _, e := range vm.Menu {
		marker := "  "
		if e.Selected {
			marker = "> "
		}

		var row string
		switch {
		case vm.Mode == app.ModeSettingsRoot:
			row = e.Label
		case e.Back:
			row = backStyle.Render(e.Label)
		default:
			box := "[ ] "
			if e.Checked {
				box = "[x] "
				if vm.Mode != app.ModeSettingsIndicators {
					box = "[*] "
				}
			}
			row = checkStyle.Render(box) + e.Label
			if e.Starred {
				row += starStyle.Render(" (*)")
			}
		}
		if e.Selected {
			row = cursorStyle.Render(row)
		}
		b.WriteString(marker + row + "\n")
	}
	return popupStyle.Render(b.String())
}

func renderHelp() string {
	bold := lipgloss.NewStyle().Bold(true)
	lines := []string{
		popupTitle.Render("stockterm help"),
		"",
		bold.Render("ctrl+o") + "  search ticker",
		bold.Render("ctrl+s") + "  settings",
		bold.Render("ctrl+p") + "  toggle pre-market",
		bold.Render("ctrl+h") + "  toggle help",
		bold.Render("q / esc") + " quit",
	}
	return popupStyle.Render(strings.Join(lines, "\n"))
}

// padOrTrunc pads s with spaces to width, or truncates if longer.
func padOrTrunc(s string, width int) string {
	n := len(s)
	if n >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-n)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
