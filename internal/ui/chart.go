package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockterm/internal/quote"
)

// Braille dot offsets for a 2x4 dot cell, indexed [x][y].
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// canvas is a braille dot grid: each terminal cell holds 2x4 dots.
type canvas struct {
	w, h  int // cells
	cells []rune
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, cells: make([]rune, w*h)}
}

// set lights a single dot. Coordinates are in dot space (2w x 4h),
// origin top-left.
func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.w*2 || y >= c.h*4 {
		return
	}
	idx := (y/4)*c.w + x/2
	c.cells[idx] |= brailleBits[x%2][y%4]
}

// line lights the dots between two points, stepping the longer axis.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		c.set(x0, y0)
		return
	}
	for i := 0; i <= steps; i++ {
		c.set(x0+dx*i/steps, y0+dy*i/steps)
	}
}

func (c *canvas) row(y int) string {
	var b strings.Builder
	for x := 0; x < c.w; x++ {
		r := c.cells[y*c.w+x]
		if r == 0 {
			b.WriteRune(' ')
		} else {
			b.WriteRune(0x2800 + r)
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// yGutterWidth is reserved on the left for axis labels.
const yGutterWidth = 9

// renderChart plots the session-filtered points as a braille line chart
// with y labels on the left and the window's anchor times along the bottom.
// In percent view a dashed zero baseline is drawn and the y bounds always
// include zero.
func renderChart(pts []quote.Point, w quote.Window, width, height int, priceView, use24h bool, lineStyle lipgloss.Style) string {
	plotW := width - yGutterWidth
	plotH := height - 1 // bottom row for x labels
	if plotW < 4 || plotH < 2 {
		return ""
	}

	minY, maxY := 0.0, 0.0
	if priceView && len(pts) > 0 {
		minY, maxY = pts[0].Y, pts[0].Y
	}
	for _, p := range pts {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	// Pad so the line does not hug the border.
	span := maxY - minY
	pad := span * 0.05
	if span == 0 {
		pad = 0.05
	}
	loBound, hiBound := minY-pad, maxY+pad

	dotW, dotH := plotW*2, plotH*4
	cv := newCanvas(plotW, plotH)

	xDot := func(minute float64) int {
		return int((minute - float64(w.Start)) / float64(w.End-w.Start) * float64(dotW-1))
	}
	yDot := func(v float64) int {
		return int((hiBound - v) / (hiBound - loBound) * float64(dotH-1))
	}

	if !priceView {
		// Dashed baseline at 0%.
		by := yDot(0)
		for x := 0; x < dotW; x += 4 {
			cv.set(x, by)
			cv.set(x+1, by)
		}
	}

	for i, p := range pts {
		x, y := xDot(p.X), yDot(p.Y)
		if i == 0 {
			cv.set(x, y)
			continue
		}
		px, py := xDot(pts[i-1].X), yDot(pts[i-1].Y)
		cv.line(px, py, x, y)
	}

	yLabel := func(v float64) string {
		if priceView {
			return fmt.Sprintf("%8.2f", v)
		}
		return fmt.Sprintf("%7.2f%%", v)
	}

	var b strings.Builder
	for row := 0; row < plotH; row++ {
		gutter := strings.Repeat(" ", yGutterWidth-1) + "│"
		switch row {
		case 0:
			gutter = yLabel(hiBound)[:yGutterWidth-1] + "┤"
		case plotH / 2:
			gutter = yLabel((hiBound + loBound) / 2)[:yGutterWidth-1] + "┤"
		case plotH - 1:
			gutter = yLabel(loBound)[:yGutterWidth-1] + "┤"
		}
		b.WriteString(gutter)
		b.WriteString(lineStyle.Render(cv.row(row)))
		b.WriteString("\n")
	}

	b.WriteString(xLabelRow(w, plotW, use24h))
	return b.String()
}

// xLabelRow lays the three anchor labels under the plot at their scaled
// positions.
func xLabelRow(w quote.Window, plotW int, use24h bool) string {
	row := []rune(strings.Repeat(" ", yGutterWidth+plotW))
	for _, anchor := range w.Anchors {
		label := quote.FormatMinute(anchor, use24h)
		pos := yGutterWidth + int(float64(anchor-w.Start)/float64(w.End-w.Start)*float64(plotW-1))
		// Keep the last label inside the row.
		if pos+len(label) > len(row) {
			pos = len(row) - len(label)
		}
		copy(row[pos:], []rune(label))
	}
	return string(row)
}
