package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransportMode is the freight mode used to pick a costing basis.
type TransportMode string

const (
	ModeSea  TransportMode = "sea"
	ModeAir  TransportMode = "air"
	ModeRoad TransportMode = "road"
	ModeRail TransportMode = "rail"
)

// ParseTransportMode normalizes a mode label. An empty label means sea.
// Unrecognized labels are kept as-is and are costed by weight.
func ParseTransportMode(raw string) TransportMode {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		return ModeSea
	}
	return TransportMode(mode)
}

var (
	// VolumetricFactor converts cubic metres into volumetric kilograms.
	VolumetricFactor  = decimal.NewFromInt(167)
	DefaultRatePerKg  = decimal.RequireFromString("2.5")
	DefaultRatePerCbm = decimal.NewFromInt(150)
)

// FreightInput holds the cargo measurements and tariff used for a freight estimate.
type FreightInput struct {
	WeightKg   decimal.Decimal
	VolumeCbm  decimal.Decimal
	RatePerKg  decimal.Decimal
	RatePerCbm decimal.Decimal
	Mode       TransportMode
}

// NewFreightInput returns a sea freight input using the default tariff.
func NewFreightInput(weightKg, volumeCbm decimal.Decimal) FreightInput {
	return FreightInput{
		WeightKg:   weightKg,
		VolumeCbm:  volumeCbm,
		RatePerKg:  DefaultRatePerKg,
		RatePerCbm: DefaultRatePerCbm,
		Mode:       ModeSea,
	}
}

// FreightEstimate is the outcome of EstimateFreight. Weights are unrounded;
// Cost is rounded to two decimals.
type FreightEstimate struct {
	Mode             TransportMode
	VolumetricWeight decimal.Decimal
	ChargeableWeight decimal.Decimal
	Cost             decimal.Decimal
}

// EstimateFreight computes the freight charge for a shipment.
//
// Sea freight is billed on volume, air freight on chargeable weight (the
// greater of actual and volumetric weight) and every other mode, including
// unrecognized ones, on actual weight.
func EstimateFreight(in FreightInput) (FreightEstimate, error) {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"weightKg", in.WeightKg},
		{"volumeCbm", in.VolumeCbm},
		{"ratePerKg", in.RatePerKg},
		{"ratePerCbm", in.RatePerCbm},
	} {
		if err := nonNegative(f.name, f.value); err != nil {
			return FreightEstimate{}, err
		}
	}

	mode := in.Mode
	if mode == "" {
		mode = ModeSea
	}

	volumetric := in.VolumeCbm.Mul(VolumetricFactor)
	chargeable := decimal.Max(in.WeightKg, volumetric)

	var cost decimal.Decimal
	switch mode {
	case ModeSea:
		cost = in.VolumeCbm.Mul(in.RatePerCbm)
	case ModeAir:
		cost = chargeable.Mul(in.RatePerKg)
	default:
		cost = in.WeightKg.Mul(in.RatePerKg)
	}

	return FreightEstimate{
		Mode:             mode,
		VolumetricWeight: volumetric,
		ChargeableWeight: chargeable,
		Cost:             Round2(cost),
	}, nil
}
