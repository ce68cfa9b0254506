package utils

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	old := Now
	defer func() { Now = old }()
	Now = func() time.Time { return time.Date(2024, 8, 2, 23, 59, 0, 0, time.Local) }

	if got := Today(); got != "2024-08-02" {
		t.Errorf("Today() = %q, want %q", got, "2024-08-02")
	}
}

func TestGregorianMonthKey(t *testing.T) {
	tests := []struct {
		date    string
		want    string
		wantErr bool
	}{
		{date: "2024-08-02", want: "2024-08"},
		{date: "2023-12-31", want: "2023-12"},
		{date: "2024-02-30", wantErr: true},
		{date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := GregorianMonthKey(tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GregorianMonthKey(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GregorianMonthKey(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}
