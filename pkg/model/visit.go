package model

import "time"

type VesselVisitRequest struct {
	VesselNumber  string    `json:"vesselNumber" validate:"required,vessel_number"`
	LengthOverall float64   `json:"loa" validate:"required,gt=0"`
	Draft         float64   `json:"draft" validate:"required,gt=0"`
	CargoCategory string    `json:"cargoCategory" validate:"required,min=1,max=64"`
	ETA           time.Time `json:"eta" validate:"required"`
	ETD           time.Time `json:"etd" validate:"required,gtfield=ETA"`
}

type ReservationOutcome struct {
	Success       bool      `json:"success"`
	AssignedBerth string    `json:"assignedBerth"`
	AdjustedETA   time.Time `json:"adjustedEta"`
	AdjustedETD   time.Time `json:"adjustedEtd"`
	Error         string    `json:"error,omitempty"`
}

// Unassigned builds the failure outcome that echoes the requested window.
func Unassigned(req *VesselVisitRequest) *ReservationOutcome {
	return &ReservationOutcome{
		Success:     false,
		AdjustedETA: req.ETA,
		AdjustedETD: req.ETD,
	}
}

// BerthAssignedEvent is published after an assignment is durably stored.
type BerthAssignedEvent struct {
	VesselNumber  string    `json:"vessel_number"`
	Berth         string    `json:"berth"`
	CargoCategory string    `json:"cargo_category"`
	RequestedETA  time.Time `json:"requested_eta"`
	RequestedETD  time.Time `json:"requested_etd"`
	ReservedStart time.Time `json:"reserved_start"`
	ReservedEnd   time.Time `json:"reserved_end"`
	Shifts        int       `json:"shifts"`
	AssignedAt    time.Time `json:"assigned_at"`
}
