package prepcalc

import (
	"testing"
	"time"
)

func TestBuildCalculationTotalRequired(t *testing.T) {
	tests := []struct {
		name    string
		records []UsageRecord
		current time.Time
		want    int
	}{
		{
			// Monday and Tuesday both average 10; on a Monday the total is
			// ceil(10 + 0.5*10) = 15.
			name: "TodayPlusHalfTomorrow",
			records: []UsageRecord{
				{Date: day(time.Monday, 0), Quantity: 10},
				{Date: day(time.Monday, 1), Quantity: 10},
				{Date: day(time.Tuesday, 0), Quantity: 10},
				{Date: day(time.Tuesday, 1), Quantity: 10},
			},
			current: day(time.Monday, 2),
			want:    15,
		},
		{
			name:    "NoHistory",
			records: nil,
			current: day(time.Wednesday, 0),
			want:    0,
		},
		{
			name: "CeilsFractionalTotal",
			records: []UsageRecord{
				{Date: day(time.Thursday, 0), Quantity: 2.2},
				{Date: day(time.Friday, 0), Quantity: 1},
			},
			current: day(time.Thursday, 1),
			want:    3, // ceil(2.2 + 0.5)
		},
		{
			// Saturday wraps to Sunday for the rollover share.
			name: "WeekWraparound",
			records: []UsageRecord{
				{Date: day(time.Saturday, 0), Quantity: 4},
				{Date: day(time.Sunday, 0), Quantity: 6},
			},
			current: day(time.Saturday, 1),
			want:    7, // ceil(4 + 3)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := AggregateByWeekday(tt.records)
			calc := BuildCalculation(1, "Wing Sauce", "quarts", buckets, tt.current, 50)
			if calc.TotalRequired != tt.want {
				t.Errorf("TotalRequired = %d, want %d", calc.TotalRequired, tt.want)
			}
			if calc.TotalRequired < 0 {
				t.Errorf("TotalRequired = %d, must be non-negative", calc.TotalRequired)
			}
		})
	}
}

func TestBuildCalculationCarriesMetadata(t *testing.T) {
	buckets := AggregateByWeekday(nil)
	calc := BuildCalculation(42, "Ranch", "quarts", buckets, day(time.Monday, 0), 25)
	if calc.ItemID != 42 || calc.Name != "Ranch" || calc.Unit != "quarts" {
		t.Errorf("item metadata not carried: %+v", calc)
	}
	if calc.BufferPercentage != 25 {
		t.Errorf("BufferPercentage = %v, want 25", calc.BufferPercentage)
	}
}

func TestBufferedQuantity(t *testing.T) {
	tests := []struct {
		name             string
		raw              float64
		bufferPercentage float64
		minimum          float64
		want             float64
	}{
		{"BufferBeatsMinimum", 7, 50, 10, 11}, // ceil(7*1.5)=11 > 10
		{"MinimumBeatsBuffer", 3, 0, 5, 5},    // ceil(3)=3 < 5
		{"ZeroRawZeroMinimum", 0, 50, 0, 0},
		{"ZeroRawWithMinimum", 0, 50, 4, 4},
		{"NoBufferNoMinimum", 6, 0, 0, 6},
		{"FractionalRaw", 2.1, 10, 0, 3}, // ceil(2.31)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BufferedQuantity(tt.raw, tt.bufferPercentage, tt.minimum)
			if got != tt.want {
				t.Errorf("BufferedQuantity(%v, %v, %v) = %v, want %v",
					tt.raw, tt.bufferPercentage, tt.minimum, got, tt.want)
			}
			if got < tt.minimum {
				t.Errorf("buffered quantity %v below minimum %v", got, tt.minimum)
			}
		})
	}
}
