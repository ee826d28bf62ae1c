package common

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPreviousTradingDay(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		offset int
		want   time.Time
	}{
		{"monday back one skips weekend", date(2025, time.June, 16), 1, date(2025, time.June, 13)},
		{"tuesday back one", date(2025, time.June, 17), 1, date(2025, time.June, 16)},
		{"monday back two", date(2025, time.June, 16), 2, date(2025, time.June, 12)},
		{"friday back one", date(2025, time.June, 13), 1, date(2025, time.June, 12)},
		{"sunday back one lands friday", date(2025, time.June, 15), 1, date(2025, time.June, 13)},
		{"monday back three", date(2025, time.June, 16), 3, date(2025, time.June, 11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviousTradingDay(tt.from, tt.offset)
			if !got.Equal(tt.want) {
				t.Errorf("PreviousTradingDay(%v, %d) = %v, want %v", tt.from, tt.offset, got, tt.want)
			}
		})
	}
}

func TestIsTradingDay(t *testing.T) {
	if IsTradingDay(date(2025, time.June, 14)) {
		t.Error("saturday should not be a trading day")
	}
	if !IsTradingDay(date(2025, time.June, 16)) {
		t.Error("monday should be a trading day")
	}
}
