package prepcalc

import (
	"testing"
	"time"
)

// day builds a date known to fall on the given weekday in January 2024
// (2024-01-07 was a Sunday).
func day(weekday time.Weekday, week int) time.Time {
	return time.Date(2024, 1, 7+int(weekday)+7*week, 0, 0, 0, 0, time.UTC)
}

func TestAggregateByWeekday(t *testing.T) {
	tests := []struct {
		name         string
		records      []UsageRecord
		wantAverages [7]float64
		wantPercents [7]int
	}{
		{
			name:         "NoRecords",
			records:      nil,
			wantAverages: [7]float64{},
			wantPercents: [7]int{},
		},
		{
			name: "AllZeroQuantities",
			records: []UsageRecord{
				{Date: day(time.Monday, 0), Quantity: 0},
				{Date: day(time.Tuesday, 0), Quantity: 0},
				{Date: day(time.Monday, 1), Quantity: 0},
			},
			wantAverages: [7]float64{},
			wantPercents: [7]int{},
		},
		{
			name: "MeansPerWeekday",
			records: []UsageRecord{
				{Date: day(time.Monday, 0), Quantity: 10},
				{Date: day(time.Monday, 1), Quantity: 20},
				{Date: day(time.Friday, 0), Quantity: 30},
			},
			wantAverages: [7]float64{0, 15, 0, 0, 0, 30, 0},
			wantPercents: [7]int{0, 50, 0, 0, 0, 100, 0},
		},
		{
			name: "RoundedPercentage",
			records: []UsageRecord{
				{Date: day(time.Sunday, 0), Quantity: 1},
				{Date: day(time.Wednesday, 0), Quantity: 3},
			},
			wantAverages: [7]float64{1, 0, 0, 3, 0, 0, 0},
			wantPercents: [7]int{33, 0, 0, 100, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := AggregateByWeekday(tt.records)
			for i, b := range buckets {
				if b.AverageQuantity != tt.wantAverages[i] {
					t.Errorf("bucket[%d].AverageQuantity = %v, want %v", i, b.AverageQuantity, tt.wantAverages[i])
				}
				if b.PercentageOfPeak != tt.wantPercents[i] {
					t.Errorf("bucket[%d].PercentageOfPeak = %v, want %v", i, b.PercentageOfPeak, tt.wantPercents[i])
				}
				if b.PercentageOfPeak < 0 || b.PercentageOfPeak > 100 {
					t.Errorf("bucket[%d].PercentageOfPeak = %v, outside [0,100]", i, b.PercentageOfPeak)
				}
			}
		})
	}
}

func TestAggregateByWeekdayLabels(t *testing.T) {
	buckets := AggregateByWeekday(nil)
	want := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	for i, b := range buckets {
		if b.Day != want[i] {
			t.Errorf("bucket[%d].Day = %q, want %q", i, b.Day, want[i])
		}
	}
}
