//go:build integration

package testutil

import (
	"time"

	"portcall/pkg/model"
)

type BerthBuilder struct {
	b model.Berth
}

func NewBerthBuilder() *BerthBuilder {
	return &BerthBuilder{
		b: model.Berth{
			Name:            "B1",
			MaxLength:       300,
			MaxDepth:        15,
			MaxBeam:         50,
			MaxDisplacement: 150000,
			CargoCategory:   "Container",
		},
	}
}

func (b *BerthBuilder) WithName(name string) *BerthBuilder {
	b.b.Name = name
	return b
}

func (b *BerthBuilder) WithCategory(category string) *BerthBuilder {
	b.b.CargoCategory = category
	return b
}

func (b *BerthBuilder) WithLimits(maxLength, maxDepth float64) *BerthBuilder {
	b.b.MaxLength = maxLength
	b.b.MaxDepth = maxDepth
	return b
}

func (b *BerthBuilder) Build() *model.Berth {
	out := b.b
	return &out
}

// Day is a fixed reference date so expected windows are stable.
var Day = time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)

func At(hour, minute int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func Visit(vessel, category string, loa, draft float64, eta, etd time.Time) *model.VesselVisitRequest {
	return &model.VesselVisitRequest{
		VesselNumber:  vessel,
		LengthOverall: loa,
		Draft:         draft,
		CargoCategory: category,
		ETA:           eta,
		ETD:           etd,
	}
}
