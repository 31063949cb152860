package quote

import "time"

// Market-session boundaries in minutes since midnight, US Eastern.
const (
	ExtendedOpenMinute = 4 * 60
	RegularOpenMinute  = 9*60 + 30
	CloseMinute        = 16 * 60
)

// Window is a span of local market minutes shown on the chart. It doubles as
// the point filter: a point is included only when its minute-of-day falls
// inside the window.
type Window struct {
	Name    string
	Start   int    // inclusive, minutes since midnight ET
	End     int    // inclusive
	Anchors [3]int // x-axis label positions (start, mid, end)
}

var (
	// Regular covers regular trading hours, 09:30-16:00 ET.
	Regular = Window{
		Name:    "regular",
		Start:   RegularOpenMinute,
		End:     CloseMinute,
		Anchors: [3]int{RegularOpenMinute, 13 * 60, CloseMinute},
	}

	// Extended includes the pre-market session, 04:00-16:00 ET.
	Extended = Window{
		Name:    "extended",
		Start:   ExtendedOpenMinute,
		End:     CloseMinute,
		Anchors: [3]int{ExtendedOpenMinute, RegularOpenMinute, CloseMinute},
	}
)

// Contains reports whether a minute-of-day falls inside the window.
func (w Window) Contains(minute int) bool {
	return minute >= w.Start && minute <= w.End
}

var eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// No tzdata on the host; EST keeps the bucketing usable.
		return time.FixedZone("EST", -5*3600)
	}
	return loc
}

// MarketLocation returns the exchange-local time zone used for bucketing.
func MarketLocation() *time.Location { return eastern }

// MinuteOfDay buckets an epoch-seconds timestamp into minutes since
// midnight in the exchange-local time zone.
func MinuteOfDay(ts int64) int {
	t := time.Unix(ts, 0).In(eastern)
	return t.Hour()*60 + t.Minute()
}

// Point is a chart point: X is minutes since midnight ET, Y is either the
// percent change from the previous close or the raw price, depending on the
// display mode.
type Point struct {
	X float64
	Y float64
}

// ChartPoints derives the render series from a cleaned intraday series:
// timestamps are bucketed into market minutes, filtered to the session
// window, and mapped to percent change unless priceView is set. Percent
// change is 0 for every point when the previous close is 0.
func ChartPoints(s Series, previousClose float64, w Window, priceView bool) []Point {
	pts := make([]Point, 0, s.Len())
	for i, ts := range s.Timestamps {
		minute := MinuteOfDay(ts)
		if !w.Contains(minute) {
			continue
		}
		y := s.Prices[i]
		if !priceView {
			if previousClose != 0 {
				y = (s.Prices[i] - previousClose) / previousClose * 100
			} else {
				y = 0
			}
		}
		pts = append(pts, Point{X: float64(minute), Y: y})
	}
	return pts
}

// FormatMinute renders a minute-of-day as an axis label, honouring the
// 12h/24h clock toggle.
func FormatMinute(minute int, use24h bool) string {
	h, m := minute/60, minute%60
	t := time.Date(2000, 1, 1, h, m, 0, 0, time.UTC)
	if use24h {
		return t.Format("15:04")
	}
	return t.Format("3:04PM")
}
