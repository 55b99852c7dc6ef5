package model

import (
	"sort"
	"time"
)

// Period is a half-open [Start, End) reservation interval.
type Period struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// Overlaps reports whether p and [start, end) share any instant.
func (p Period) Overlaps(start, end time.Time) bool {
	return !(!end.After(p.Start) || !start.Before(p.End))
}

type Berth struct {
	Name            string            `json:"name" bson:"_id" validate:"required,min=1,max=64,berth_name"`
	MaxLength       float64           `json:"max_length" bson:"max_length" validate:"required,gt=0"`
	MaxDepth        float64           `json:"max_depth" bson:"max_depth" validate:"required,gt=0"`
	MaxBeam         float64           `json:"max_beam" bson:"max_beam" validate:"required,gt=0"`
	MaxDisplacement float64           `json:"max_displacement" bson:"max_displacement" validate:"required,gt=0"`
	CargoCategory   string            `json:"cargo_category" bson:"cargo_category" validate:"required,min=1,max=64"`
	BookedPeriods   map[string]Period `json:"booked_periods" bson:"booked_periods"`
	Version         int64             `json:"version" bson:"version"`
	CreatedAt       time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" bson:"updated_at"`
}

// Fits reports whether a vessel with the given envelope passes the berth's static filter.
// Beam and displacement capacity are not consulted.
func (b *Berth) Fits(req *VesselVisitRequest) bool {
	return b.CargoCategory == req.CargoCategory &&
		req.LengthOverall <= b.MaxLength &&
		req.Draft <= b.MaxDepth
}

// IsFree reports whether no booked period overlaps [start, end).
func (b *Berth) IsFree(start, end time.Time) bool {
	for _, p := range b.BookedPeriods {
		if p.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers can mutate the booked-period map safely.
func (b *Berth) Clone() *Berth {
	c := *b
	c.BookedPeriods = make(map[string]Period, len(b.BookedPeriods))
	for k, v := range b.BookedPeriods {
		c.BookedPeriods[k] = v
	}
	return &c
}

// ScheduleEntry is one row of a berth's schedule.
type ScheduleEntry struct {
	VesselNumber string    `json:"vessel_number"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

// Schedule lists the booked periods ordered by start, then vessel number.
func (b *Berth) Schedule() []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(b.BookedPeriods))
	for vessel, p := range b.BookedPeriods {
		entries = append(entries, ScheduleEntry{VesselNumber: vessel, Start: p.Start, End: p.End})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Start.Equal(entries[j].Start) {
			return entries[i].VesselNumber < entries[j].VesselNumber
		}
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries
}
