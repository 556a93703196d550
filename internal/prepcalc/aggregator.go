// Package prepcalc derives prep-sheet requirements from historical sales usage.
// It is pure computation over plain records: the storage layer feeds it, the
// service layer persists what comes out.
package prepcalc

import (
	"math"
	"time"
)

// UsageRecord is one prep item's derived usage on one sale date.
type UsageRecord struct {
	PrepItemID int64
	Date       time.Time
	Quantity   float64
}

// WeekdayBucket holds the averaged usage signal for a single day of week.
type WeekdayBucket struct {
	Day              string  `json:"day"`
	AverageQuantity  float64 `json:"average_quantity"`
	PercentageOfPeak int     `json:"percentage_of_peak"` // 0-100, relative to the busiest weekday
}

var dayLabels = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// AggregateByWeekday buckets usage records for one prep item by day of week and
// returns exactly 7 buckets, Sunday first. Average is the arithmetic mean of
// that weekday's quantities, 0 when the weekday has no records. PercentageOfPeak
// is relative to the highest weekday average; 0 when there is no usage at all.
func AggregateByWeekday(records []UsageRecord) [7]WeekdayBucket {
	var sums [7]float64
	var counts [7]int
	for _, r := range records {
		wd := int(r.Date.Weekday()) // time.Sunday == 0
		sums[wd] += r.Quantity
		counts[wd]++
	}

	var buckets [7]WeekdayBucket
	peak := 0.0
	for i := range buckets {
		avg := 0.0
		if counts[i] > 0 {
			avg = sums[i] / float64(counts[i])
		}
		buckets[i] = WeekdayBucket{Day: dayLabels[i], AverageQuantity: avg}
		if avg > peak {
			peak = avg
		}
	}

	if peak > 0 {
		for i := range buckets {
			buckets[i].PercentageOfPeak = int(math.Round(100 * buckets[i].AverageQuantity / peak))
		}
	}
	return buckets
}
