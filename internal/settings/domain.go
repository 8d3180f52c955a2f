// Package settings holds the single application-wide configuration row:
// exchange rates, forwarder rates and the markup band applied at pricing time.
package settings

import "time"

// Defaults written on first initialisation.
const (
	DefaultCNYToPHPRate            = 7.8
	DefaultForwarderBuyServiceRate = 8.6
	DefaultForwarderRatePerKg      = 480.0
	DefaultMarkupMin               = 700.0
	DefaultMarkupMax               = 850.0
)

// Settings is the singleton configuration record.
type Settings struct {
	CNYToPHPRate            float64   `json:"cnyToPhpRate"`
	ForwarderBuyServiceRate float64   `json:"forwarderBuyServiceRate"`
	DefaultForwarderRate    float64   `json:"defaultForwarderRate"`
	MarkupMin               float64   `json:"markupMin"`
	MarkupMax               float64   `json:"markupMax"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// Snapshot is the read-only view of settings captured at the moment an item
// is created. Passing it explicitly keeps item derivation independent of
// later settings edits.
type Snapshot struct {
	CNYToPHPRate            float64
	ForwarderBuyServiceRate float64
	DefaultForwarderRate    float64
}

// Snapshot extracts the rate snapshot used for item creation.
func (s Settings) Snapshot() Snapshot {
	return Snapshot{
		CNYToPHPRate:            s.CNYToPHPRate,
		ForwarderBuyServiceRate: s.ForwarderBuyServiceRate,
		DefaultForwarderRate:    s.DefaultForwarderRate,
	}
}

// UpdateSettingsRequest is a partial patch on the singleton row.
type UpdateSettingsRequest struct {
	CNYToPHPRate            *float64 `json:"cnyToPhpRate,omitempty" validate:"omitempty,gt=0"`
	ForwarderBuyServiceRate *float64 `json:"forwarderBuyServiceRate,omitempty" validate:"omitempty,gt=0"`
	DefaultForwarderRate    *float64 `json:"defaultForwarderRate,omitempty" validate:"omitempty,gt=0"`
	MarkupMin               *float64 `json:"markupMin,omitempty" validate:"omitempty,gte=0"`
	MarkupMax               *float64 `json:"markupMax,omitempty" validate:"omitempty,gte=0"`
}

// Default returns the settings written when no row exists yet.
func Default(now time.Time) Settings {
	return Settings{
		CNYToPHPRate:            DefaultCNYToPHPRate,
		ForwarderBuyServiceRate: DefaultForwarderBuyServiceRate,
		DefaultForwarderRate:    DefaultForwarderRatePerKg,
		MarkupMin:               DefaultMarkupMin,
		MarkupMax:               DefaultMarkupMax,
		UpdatedAt:               now,
	}
}
