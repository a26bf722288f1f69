package core

import (
	"fmt"
	"math"
	"strconv"
)

// ChartSlice is one rendered segment of the expense ring chart. Paths
// and label anchors are precomputed here so templates only interpolate.
type ChartSlice struct {
	Name    string
	Color   string
	Amount  Money
	Percent float64 // share of the total, 0..100
	Label   string  // "Food: 42%"
	Tooltip string  // "Food — $123.45"
	Path    string  // SVG path data for the donut segment
	LabelX  float64
	LabelY  float64
}

// Ring geometry matching the original dashboard chart proportions.
const (
	ringCX     = 175.0
	ringCY     = 175.0
	ringOuterR = 120.0
	ringInnerR = 60.0
	ringGapDeg = 3.0 // padding angle between slices
)

// BuildRing transforms the backend's per-category expense totals into
// donut segments. Empty or all-zero input yields no slices; callers
// render the "no data" placeholder instead of an empty chart.
func BuildRing(items []ChartItem) []ChartSlice {
	var total int64
	for _, it := range items {
		if it.Amount.Cents > 0 {
			total += it.Amount.Cents
		}
	}
	if total == 0 {
		return nil
	}

	slices := make([]ChartSlice, 0, len(items))
	start := -90.0 // twelve o'clock
	for _, it := range items {
		if it.Amount.Cents <= 0 {
			continue
		}
		share := float64(it.Amount.Cents) / float64(total)
		sweep := share * 360.0
		gap := ringGapDeg
		if len(items) == 1 || sweep <= gap {
			gap = 0
		}
		color := it.Color
		if color == "" {
			color = DefaultCategoryColor
		}
		pct := share * 100
		mid := start + sweep/2
		labelR := ringOuterR + 24
		slices = append(slices, ChartSlice{
			Name:    it.Category,
			Color:   color,
			Amount:  it.Amount,
			Percent: pct,
			Label:   it.Category + ": " + strconv.Itoa(int(math.Round(pct))) + "%",
			Tooltip: it.Category + " — $" + it.Amount.Decimal(),
			Path:    donutPath(start+gap/2, start+sweep-gap/2),
			LabelX:  round1(ringCX + labelR*cosDeg(mid)),
			LabelY:  round1(ringCY + labelR*sinDeg(mid)),
		})
		start += sweep
	}
	return slices
}

// donutPath builds the path data for a ring segment between the two
// angles (degrees). A near-full sweep is clamped just short of 360 so
// the arc does not collapse into a point.
func donutPath(fromDeg, toDeg float64) string {
	if toDeg-fromDeg >= 360 {
		toDeg = fromDeg + 359.99
	}
	large := 0
	if toDeg-fromDeg > 180 {
		large = 1
	}
	ox1 := ringCX + ringOuterR*cosDeg(fromDeg)
	oy1 := ringCY + ringOuterR*sinDeg(fromDeg)
	ox2 := ringCX + ringOuterR*cosDeg(toDeg)
	oy2 := ringCY + ringOuterR*sinDeg(toDeg)
	ix1 := ringCX + ringInnerR*cosDeg(toDeg)
	iy1 := ringCY + ringInnerR*sinDeg(toDeg)
	ix2 := ringCX + ringInnerR*cosDeg(fromDeg)
	iy2 := ringCY + ringInnerR*sinDeg(fromDeg)
	return fmt.Sprintf("M %.1f %.1f A %.0f %.0f 0 %d 1 %.1f %.1f L %.1f %.1f A %.0f %.0f 0 %d 0 %.1f %.1f Z",
		ox1, oy1, ringOuterR, ringOuterR, large, ox2, oy2,
		ix1, iy1, ringInnerR, ringInnerR, large, ix2, iy2)
}

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
