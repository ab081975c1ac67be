package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var (
	// ErrNegative reports an amount, rate or quantity below zero.
	ErrNegative = errors.New("must be greater than or equal to 0")
	// ErrQuantity reports an order line quantity below one.
	ErrQuantity = errors.New("must be at least 1")
	// ErrPercentRange reports a percentage outside [0, 100].
	ErrPercentRange = errors.New("must be between 0 and 100")
	// ErrZeroProductValue reports a landed cost request without product value,
	// for which the percentage of product value is undefined.
	ErrZeroProductValue = errors.New("must be greater than 0")
)

// InputError describes an input field rejected by a calculator.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &InputError{Field: field, Err: err}
}

// Round2 rounds d to two decimal places, halves away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percentOf returns d * percent / 100 without intermediate rounding.
func percentOf(d, percent decimal.Decimal) decimal.Decimal {
	return d.Mul(percent.Shift(-2))
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, ErrNegative)
	}
	return nil
}

func percentInRange(field string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return invalid(field, ErrPercentRange)
	}
	return nil
}
