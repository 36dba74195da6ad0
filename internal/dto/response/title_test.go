package response

import (
	"testing"
)

func TestRatingFromAverage(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		avg  *float64
		want *int
	}{
		{"no reviews", nil, nil},
		{"exact", ptr(7.0), intPtr(7)},
		{"rounds down", ptr(8.4), intPtr(8)},
		{"rounds half up", ptr(8.5), intPtr(9)},
		{"rounds up", ptr(9.6), intPtr(10)},
		{"minimum", ptr(1.0), intPtr(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RatingFromAverage(tt.avg)

			switch {
			case got == nil && tt.want == nil:
				// null rating for unreviewed titles
			case got == nil || tt.want == nil:
				t.Errorf("RatingFromAverage() = %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Errorf("RatingFromAverage() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
