package history

import (
	"github.com/yourorg/crypticker/internal/model"
)

// chartHeadroom scales the series maximum so the chart's top sample does not
// touch the upper edge.
const chartHeadroom = 1.02

// SeriesStats summarizes a price series for display.
type SeriesStats struct {
	// Latest is the value of the most recent sample
	Latest float64 `json:"latest"`

	// Max is the highest value in the series
	Max float64 `json:"max"`

	// Min is the lowest value in the series
	Min float64 `json:"min"`

	// ChartCeiling is the suggested upper bound for a line chart of the series
	ChartCeiling float64 `json:"chart_ceiling"`
}

// Summarize computes display statistics over an ascending price series.
// An empty series yields zero statistics.
func Summarize(points []model.PricePoint) SeriesStats {
	if len(points) == 0 {
		return SeriesStats{}
	}

	stats := SeriesStats{
		Latest: points[len(points)-1].Value,
		Max:    points[0].Value,
		Min:    points[0].Value,
	}

	for _, p := range points[1:] {
		if p.Value > stats.Max {
			stats.Max = p.Value
		}
		if p.Value < stats.Min {
			stats.Min = p.Value
		}
	}

	stats.ChartCeiling = stats.Max * chartHeadroom
	return stats
}
