package model

import (
	"testing"
	"time"
)

func at(hh, mm int) time.Time {
	return time.Date(2024, 10, 8, hh, mm, 0, 0, time.UTC)
}

func TestPeriod_Overlaps(t *testing.T) {
	booked := Period{Start: at(10, 0), End: at(12, 0)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"fully inside", at(10, 0), at(10, 30), true},
		{"covers booked", at(9, 0), at(13, 0), true},
		{"overlaps start", at(9, 0), at(10, 15), true},
		{"overlaps end", at(11, 45), at(12, 30), true},
		{"ends exactly at start", at(9, 0), at(10, 0), false},
		{"starts exactly at end", at(12, 0), at(12, 30), false},
		{"well before", at(6, 0), at(7, 0), false},
		{"well after", at(14, 0), at(15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := booked.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.start.Format("15:04"), tt.end.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestBerth_Fits(t *testing.T) {
	b := &Berth{Name: "B1", MaxLength: 300, MaxDepth: 15, MaxBeam: 1, MaxDisplacement: 1, CargoCategory: "Container"}

	tests := []struct {
		name string
		req  VesselVisitRequest
		want bool
	}{
		{"fits", VesselVisitRequest{LengthOverall: 250, Draft: 10, CargoCategory: "Container"}, true},
		{"exact limits", VesselVisitRequest{LengthOverall: 300, Draft: 15, CargoCategory: "Container"}, true},
		{"too long", VesselVisitRequest{LengthOverall: 301, Draft: 10, CargoCategory: "Container"}, false},
		{"too deep", VesselVisitRequest{LengthOverall: 250, Draft: 15.5, CargoCategory: "Container"}, false},
		{"wrong category", VesselVisitRequest{LengthOverall: 250, Draft: 10, CargoCategory: "Bulk"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Fits(&tt.req); got != tt.want {
				t.Errorf("Fits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBerth_CloneIsDeep(t *testing.T) {
	b := &Berth{Name: "B1", BookedPeriods: map[string]Period{"V1": {Start: at(10, 0), End: at(12, 0)}}}
	c := b.Clone()
	c.BookedPeriods["V2"] = Period{Start: at(13, 0), End: at(14, 0)}

	if len(b.BookedPeriods) != 1 {
		t.Errorf("original map mutated through clone, has %d entries", len(b.BookedPeriods))
	}
}

func TestBerth_Schedule(t *testing.T) {
	b := &Berth{BookedPeriods: map[string]Period{
		"V3": {Start: at(14, 0), End: at(15, 0)},
		"V1": {Start: at(8, 0), End: at(9, 0)},
		"V2": {Start: at(10, 0), End: at(12, 0)},
	}}

	got := b.Schedule()
	want := []string{"V1", "V2", "V3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, v := range want {
		if got[i].VesselNumber != v {
			t.Errorf("entry %d: expected %s, got %s", i, v, got[i].VesselNumber)
		}
	}
}
