// Package history provides time-window selection and series statistics over
// the 30-day price history.
package history

import (
	"time"

	"github.com/yourorg/crypticker/internal/model"
)

// YesterdaysPrice returns the most recent point whose timestamp falls within
// the calendar day immediately preceding now's calendar day in loc, and false
// when no point qualifies.
//
// The series is ascending by time, so the scan runs backward: the first
// qualifying point is also the most recent one in that day.
func YesterdaysPrice(points []model.PricePoint, now time.Time, loc *time.Location) (model.PricePoint, bool) {
	if loc == nil {
		loc = time.Local
	}

	// Day bounds via time.Date so daylight-saving shifts inside the day
	// do not move the window edges.
	local := now.In(loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	for i := len(points) - 1; i >= 0; i-- {
		t := points[i].Time.In(loc)
		if !t.Before(yesterdayStart) && t.Before(todayStart) {
			return points[i], true
		}
	}

	return model.PricePoint{}, false
}

// PriceDifference derives the change of the current price against yesterday's
// sample. Absent when the history holds no qualifying point.
func PriceDifference(stats model.Stats, points []model.PricePoint, now time.Time, loc *time.Location) (model.PriceDelta, bool) {
	yesterday, ok := YesterdaysPrice(points, now, loc)
	if !ok {
		return model.PriceDelta{}, false
	}

	return model.PriceDelta{
		Value:     stats.MarketPriceUSD - yesterday.Value,
		Yesterday: yesterday,
	}, true
}
