package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	DefaultInsurancePercent   = decimal.NewFromInt(2)
	DefaultCustomsDutyPercent = decimal.NewFromInt(10)
	DefaultHandlingFee        = decimal.Zero
)

// LandedCostInput carries the values needed to land goods at destination.
type LandedCostInput struct {
	ProductValue       decimal.Decimal
	FreightCost        decimal.Decimal
	InsurancePercent   decimal.Decimal
	CustomsDutyPercent decimal.Decimal
	HandlingFee        decimal.Decimal
	OriginCountry      string
	DestinationCountry string
}

// LandedCostBreakdown lists each cost component, rounded independently.
type LandedCostBreakdown struct {
	ProductValue  decimal.Decimal
	FreightCost   decimal.Decimal
	InsuranceCost decimal.Decimal
	CustomsValue  decimal.Decimal
	CustomsDuty   decimal.Decimal
	HandlingFee   decimal.Decimal
}

// LandedCost is the result of CalculateLandedCost.
type LandedCost struct {
	Breakdown                LandedCostBreakdown
	TotalLandedCost          decimal.Decimal
	PercentageOfProductValue decimal.Decimal
	Route                    string
}

// CalculateLandedCost computes the landed cost with duty assessed on a CIF
// basis (product value + freight + insurance).
//
// Totals are computed from unrounded components and rounded last, so the sum
// of the rounded breakdown may differ from TotalLandedCost by a cent.
func CalculateLandedCost(in LandedCostInput) (LandedCost, error) {
	if in.ProductValue.IsNegative() {
		return LandedCost{}, invalid("productValue", ErrNegative)
	}
	if in.ProductValue.IsZero() {
		return LandedCost{}, invalid("productValue", ErrZeroProductValue)
	}
	if err := nonNegative("freightCost", in.FreightCost); err != nil {
		return LandedCost{}, err
	}
	if err := nonNegative("insurancePercent", in.InsurancePercent); err != nil {
		return LandedCost{}, err
	}
	if err := nonNegative("customsDutyPercent", in.CustomsDutyPercent); err != nil {
		return LandedCost{}, err
	}
	if err := nonNegative("handlingFee", in.HandlingFee); err != nil {
		return LandedCost{}, err
	}

	insurance := percentOf(in.ProductValue, in.InsurancePercent)
	customsValue := in.ProductValue.Add(in.FreightCost).Add(insurance)
	duty := percentOf(customsValue, in.CustomsDutyPercent)
	total := in.ProductValue.
		Add(in.FreightCost).
		Add(insurance).
		Add(duty).
		Add(in.HandlingFee)
	percentage := total.Div(in.ProductValue).Mul(hundred)

	return LandedCost{
		Breakdown: LandedCostBreakdown{
			ProductValue:  Round2(in.ProductValue),
			FreightCost:   Round2(in.FreightCost),
			InsuranceCost: Round2(insurance),
			CustomsValue:  Round2(customsValue),
			CustomsDuty:   Round2(duty),
			HandlingFee:   Round2(in.HandlingFee),
		},
		TotalLandedCost:          Round2(total),
		PercentageOfProductValue: Round2(percentage),
		Route:                    FormatRoute(in.OriginCountry, in.DestinationCountry),
	}, nil
}

// FormatRoute renders an origin/destination pair for display.
func FormatRoute(origin, destination string) string {
	return fmt.Sprintf("%s → %s", origin, destination)
}
