package prepcalc

import (
	"math"
	"time"
)

// NextDayRolloverWeight is the fixed share of tomorrow's average folded into
// today's total, so the evening shift starts with half the next day covered.
// It is independent of the configurable buffer percentage applied by
// BufferedQuantity; the two are separate figures and are never merged.
const NextDayRolloverWeight = 0.5

// PrepCalculation is the weekday breakdown and rolled-up requirement for one
// prep item on a given date.
type PrepCalculation struct {
	ItemID            int64            `json:"item_id"`
	Name              string           `json:"name"`
	Unit              string           `json:"unit"`
	DailyRequirements [7]WeekdayBucket `json:"daily_requirements"` // Sunday..Saturday
	TotalRequired     int              `json:"total_required"`
	BufferPercentage  float64          `json:"buffer_percentage"` // carried as metadata only
}

// BuildCalculation combines today's and tomorrow's weekday averages into a
// single required quantity:
//
//	totalRequired = ceil(today.avg + NextDayRolloverWeight * tomorrow.avg)
//
// An item with no history yields TotalRequired 0, which is a valid result.
func BuildCalculation(itemID int64, name, unit string, buckets [7]WeekdayBucket, current time.Time, bufferPercentage float64) PrepCalculation {
	today := int(current.Weekday())
	tomorrow := (today + 1) % 7

	total := int(math.Ceil(buckets[today].AverageQuantity + NextDayRolloverWeight*buckets[tomorrow].AverageQuantity))

	return PrepCalculation{
		ItemID:            itemID,
		Name:              name,
		Unit:              unit,
		DailyRequirements: buckets,
		TotalRequired:     total,
		BufferPercentage:  bufferPercentage,
	}
}

// BufferedQuantity applies the configurable percentage buffer to a raw required
// quantity and clamps the result to the per-item minimum:
//
//	max(ceil(raw * (1 + bufferPercentage/100)), minimum)
//
// The result is never below ceil(raw) for a non-negative buffer percentage.
func BufferedQuantity(raw, bufferPercentage, minimum float64) float64 {
	buffered := math.Ceil(raw * (1 + bufferPercentage/100))
	return math.Max(buffered, minimum)
}
