// Package costing derives every monetary field of an item from its raw
// pricing and shipping inputs. All rates are inputs, never globals, so the
// same snapshot always yields the same figures.
package costing

import "math"

// Business constants for the forwarder buy service. The forwarder charges a
// 10% commission plus a flat 10 CNY handling fee, and a flat 150 PHP QC fee.
const (
	ForwarderBuyCommissionRate = 0.1
	ForwarderBuyFlatFeeCNY     = 10
	ForwarderBuyQCFeePHP       = 150
)

// Inputs is a self-contained snapshot of the fields the derivation reads.
// Optional fields are pointers; nil means the caller never supplied a value.
type Inputs struct {
	PriceCNY             float64
	ExchangeRateUsed     float64
	HasLocalShipping     bool
	LocalShippingCNY     *float64
	WeightKg             *float64
	ForwarderRatePerKg   float64
	IsForwarderBuy       bool
	ForwarderBuyRateUsed *float64
	LalamoveFee          *float64
	SellingPrice         *float64
}

// Derived holds every computed monetary field, each independently rounded to
// two decimals. A nil field means its triggering condition was not met, which
// is distinct from a computed zero: presentation and analytics layers render
// conditionally on presence.
type Derived struct {
	PricePHP           float64  `json:"pricePHP"`
	LocalShippingPHP   *float64 `json:"localShippingPHP,omitempty"`
	ForwarderFee       *float64 `json:"forwarderFee,omitempty"`
	ForwarderBuyFeePHP *float64 `json:"forwarderBuyFeePHP,omitempty"`
	QCServiceFeePHP    *float64 `json:"qcServiceFeePHP,omitempty"`
	TotalCost          float64  `json:"totalCost"`
	Profit             *float64 `json:"profit,omitempty"`
	MarkupPercent      *float64 `json:"markupPercent,omitempty"`
}

// Compute derives all monetary fields from the snapshot. It is total over
// well-typed numeric inputs, has no side effects, and is idempotent: the same
// snapshot always produces bit-identical output.
func Compute(in Inputs) Derived {
	out := Derived{
		PricePHP: round2(in.PriceCNY * in.ExchangeRateUsed),
	}

	if in.HasLocalShipping && in.LocalShippingCNY != nil && *in.LocalShippingCNY > 0 {
		out.LocalShippingPHP = ptr(round2(*in.LocalShippingCNY * in.ExchangeRateUsed))
	}

	// Zero weight behaves the same as no weight: no forwarder shipping fee.
	if in.WeightKg != nil && *in.WeightKg > 0 {
		out.ForwarderFee = ptr(round2(*in.WeightKg * in.ForwarderRatePerKg))
	}

	if in.IsForwarderBuy {
		rate := 0.0
		if in.ForwarderBuyRateUsed != nil {
			rate = *in.ForwarderBuyRateUsed
		}
		feeCNY := in.PriceCNY*ForwarderBuyCommissionRate + ForwarderBuyFlatFeeCNY
		out.ForwarderBuyFeePHP = ptr(round2(feeCNY * rate))
		out.QCServiceFeePHP = ptr(float64(ForwarderBuyQCFeePHP))
	}

	out.TotalCost = round2(out.PricePHP +
		deref(out.LocalShippingPHP) +
		deref(out.ForwarderFee) +
		deref(in.LalamoveFee) +
		deref(out.ForwarderBuyFeePHP) +
		deref(out.QCServiceFeePHP))

	if in.SellingPrice != nil {
		out.Profit = ptr(round2(*in.SellingPrice - out.TotalCost))
		if out.TotalCost > 0 && *in.SellingPrice > 0 {
			out.MarkupPercent = ptr(round2((*in.SellingPrice - out.TotalCost) / out.TotalCost * 100))
		}
	}

	return out
}

// round2 rounds to the cent, half away from zero.
func round2(n float64) float64 {
	return math.Round(n*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
