package pricing

import "github.com/shopspring/decimal"

// Markup is the result of ApplyMarkup. MarkupPercent is echoed unrounded.
type Markup struct {
	BaseCost      decimal.Decimal
	MarkupPercent decimal.Decimal
	MarkupAmount  decimal.Decimal
	FinalPrice    decimal.Decimal
}

// ApplyMarkup adds markupPercent of baseCost on top of baseCost.
func ApplyMarkup(baseCost, markupPercent decimal.Decimal) (Markup, error) {
	if err := nonNegative("baseCost", baseCost); err != nil {
		return Markup{}, err
	}
	if err := nonNegative("markupPercent", markupPercent); err != nil {
		return Markup{}, err
	}

	amount := percentOf(baseCost, markupPercent)
	return Markup{
		BaseCost:      Round2(baseCost),
		MarkupPercent: markupPercent,
		MarkupAmount:  Round2(amount),
		FinalPrice:    Round2(baseCost.Add(amount)),
	}, nil
}
