package pricing

import "github.com/shopspring/decimal"

// OrderLine holds the priced fields of an order item.
type OrderLine struct {
	Qty             int64
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
}

// DeriveOrderLine returns line with LineTotal recomputed from quantity, unit
// price and discount. Any LineTotal already set on line is discarded.
//
// The unit price is normalized to cents before multiplying; the discounted
// total is rounded once more at the end.
func DeriveOrderLine(line OrderLine) (OrderLine, error) {
	if line.Qty < 1 {
		return OrderLine{}, invalid("qty", ErrQuantity)
	}
	if err := nonNegative("unitPrice", line.UnitPrice); err != nil {
		return OrderLine{}, err
	}
	if err := percentInRange("discountPercent", line.DiscountPercent); err != nil {
		return OrderLine{}, err
	}

	base := decimal.NewFromInt(line.Qty).Mul(Round2(line.UnitPrice))
	if line.DiscountPercent.IsPositive() {
		base = base.Sub(percentOf(base, line.DiscountPercent))
	}

	line.LineTotal = Round2(base)
	return line, nil
}

// SumLineTotals adds up already derived line totals.
func SumLineTotals(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return Round2(total)
}

// QuoteCosts holds the priced fields of a quote.
type QuoteCosts struct {
	FreightCost     decimal.Decimal
	InsuranceCost   decimal.Decimal
	CustomsDuty     decimal.Decimal
	HandlingCharges decimal.Decimal
	MarkupPercent   decimal.Decimal
	TotalLandedCost decimal.Decimal
}

// Subtotal is the sum of the quote's cost components before markup.
func (q QuoteCosts) Subtotal() decimal.Decimal {
	return q.FreightCost.Add(q.InsuranceCost).Add(q.CustomsDuty).Add(q.HandlingCharges)
}

// DeriveQuote returns q with its cost components rounded to cents and
// TotalLandedCost recomputed from those rounded components plus markup,
// rounded to two decimals. Any TotalLandedCost already set on q is
// discarded. MarkupPercent is kept as given.
func DeriveQuote(q QuoteCosts) (QuoteCosts, error) {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"freightCost", q.FreightCost},
		{"insuranceCost", q.InsuranceCost},
		{"customsDuty", q.CustomsDuty},
		{"handlingCharges", q.HandlingCharges},
		{"markupPercent", q.MarkupPercent},
	} {
		if err := nonNegative(f.name, f.value); err != nil {
			return QuoteCosts{}, err
		}
	}

	q.FreightCost = Round2(q.FreightCost)
	q.InsuranceCost = Round2(q.InsuranceCost)
	q.CustomsDuty = Round2(q.CustomsDuty)
	q.HandlingCharges = Round2(q.HandlingCharges)

	subtotal := q.Subtotal()
	q.TotalLandedCost = Round2(subtotal.Add(percentOf(subtotal, q.MarkupPercent)))
	return q, nil
}
