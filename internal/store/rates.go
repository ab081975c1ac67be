package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/exportsuite/internal/pricing"
)

// Document kinds with their own number prefix.
const (
	KindQuote    = "quote"
	KindOrder    = "order"
	KindShipment = "shipment"
)

// DefaultPrefixes are used when document_prefixes has no row for a kind.
var DefaultPrefixes = map[string]string{
	KindQuote:    "QT",
	KindOrder:    "ORD",
	KindShipment: "SHP",
}

// RateConfig holds the tariff and percentages applied when a pricing
// request omits them.
type RateConfig struct {
	RatePerKg          decimal.Decimal
	RatePerCbm         decimal.Decimal
	InsurancePercent   decimal.Decimal
	CustomsDutyPercent decimal.Decimal
	HandlingFee        decimal.Decimal
	Currency           string
	UpdatedAt          time.Time
}

// DefaultRateConfig returns the built-in pricing defaults.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		RatePerKg:          pricing.DefaultRatePerKg,
		RatePerCbm:         pricing.DefaultRatePerCbm,
		InsurancePercent:   pricing.DefaultInsurancePercent,
		CustomsDutyPercent: pricing.DefaultCustomsDutyPercent,
		HandlingFee:        pricing.DefaultHandlingFee,
		Currency:           "USD",
	}
}

// Validate rejects negative rates and percentages.
func (rc RateConfig) Validate() error {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"ratePerKg", rc.RatePerKg},
		{"ratePerCbm", rc.RatePerCbm},
		{"insurancePercent", rc.InsurancePercent},
		{"customsDutyPercent", rc.CustomsDutyPercent},
		{"handlingFee", rc.HandlingFee},
	} {
		if f.value.IsNegative() {
			return &pricing.InputError{Field: f.name, Err: pricing.ErrNegative}
		}
	}
	if strings.TrimSpace(rc.Currency) == "" {
		return &pricing.InputError{Field: "currency", Err: errors.New("is required")}
	}
	return nil
}

// GetRateConfig loads the rate config singleton, falling back to
// DefaultRateConfig when it has not been seeded.
func (s *Store) GetRateConfig(ctx context.Context) (RateConfig, error) {
	var rc RateConfig
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT rate_per_kg, rate_per_cbm, insurance_percent, customs_duty_percent, handling_fee, currency, updated_at
		FROM rate_config
		WHERE id = 1
	`).Scan(
		&rc.RatePerKg,
		&rc.RatePerCbm,
		&rc.InsurancePercent,
		&rc.CustomsDutyPercent,
		&rc.HandlingFee,
		&rc.Currency,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultRateConfig(), nil
	}
	if err != nil {
		return RateConfig{}, fmt.Errorf("query rate_config: %w", err)
	}
	rc.UpdatedAt = parseTimestamp(updatedAt)
	return rc, nil
}

// UpdateRateConfig validates and stores the rate config singleton.
func (s *Store) UpdateRateConfig(ctx context.Context, rc RateConfig) (RateConfig, error) {
	rc.Currency = strings.ToUpper(strings.TrimSpace(rc.Currency))
	if err := rc.Validate(); err != nil {
		return RateConfig{}, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_config (
			id,
			rate_per_kg,
			rate_per_cbm,
			insurance_percent,
			customs_duty_percent,
			handling_fee,
			currency
		) VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rate_per_kg = excluded.rate_per_kg,
			rate_per_cbm = excluded.rate_per_cbm,
			insurance_percent = excluded.insurance_percent,
			customs_duty_percent = excluded.customs_duty_percent,
			handling_fee = excluded.handling_fee,
			currency = excluded.currency,
			updated_at = CURRENT_TIMESTAMP
	`,
		rc.RatePerKg.String(),
		rc.RatePerCbm.String(),
		rc.InsurancePercent.String(),
		rc.CustomsDutyPercent.String(),
		money(rc.HandlingFee),
		rc.Currency,
	)
	if err != nil {
		return RateConfig{}, fmt.Errorf("update rate_config: %w", err)
	}

	return s.GetRateConfig(ctx)
}

// DocumentPrefix returns the number prefix configured for kind.
func (s *Store) DocumentPrefix(ctx context.Context, kind string) (string, error) {
	var prefix string
	err := s.db.QueryRowContext(ctx, `SELECT prefix FROM document_prefixes WHERE kind = ?`, kind).Scan(&prefix)
	if errors.Is(err, sql.ErrNoRows) {
		if fallback, ok := DefaultPrefixes[kind]; ok {
			return fallback, nil
		}
		return "", fmt.Errorf("document prefix %q: %w", kind, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query document prefix %q: %w", kind, err)
	}
	return prefix, nil
}

func (s *Store) nextNumber(ctx context.Context, kind string) (string, error) {
	prefix, err := s.DocumentPrefix(ctx, kind)
	if err != nil {
		return "", err
	}
	return s.numbers.Next(prefix), nil
}
