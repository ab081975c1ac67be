package seed

import (
	"database/sql"
	"fmt"

	"github.com/Simplici0/exportsuite/internal/store"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureRateConfig(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for _, kind := range []string{store.KindQuote, store.KindOrder, store.KindShipment} {
		if err := ensurePrefix(tx, kind, store.DefaultPrefixes[kind], &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRateConfig(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM rate_config WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check rate config existence: %w", err)
	}
	if exists {
		return nil
	}

	rc := store.DefaultRateConfig()
	if _, err := tx.Exec(`
		INSERT INTO rate_config (
			id,
			rate_per_kg,
			rate_per_cbm,
			insurance_percent,
			customs_duty_percent,
			handling_fee,
			currency
		)
		VALUES (1, ?, ?, ?, ?, ?, ?)
	`,
		rc.RatePerKg.String(),
		rc.RatePerCbm.String(),
		rc.InsurancePercent.String(),
		rc.CustomsDutyPercent.String(),
		rc.HandlingFee.StringFixed(2),
		rc.Currency,
	); err != nil {
		return fmt.Errorf("insert rate config singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensurePrefix(tx *sql.Tx, kind, prefix string, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM document_prefixes WHERE kind = ? LIMIT 1)`, kind).Scan(&exists); err != nil {
		return fmt.Errorf("check %s prefix existence: %w", kind, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO document_prefixes (kind, prefix) VALUES (?, ?)`, kind, prefix); err != nil {
		return fmt.Errorf("insert %s prefix: %w", kind, err)
	}
	stats.Inserts++
	return nil
}
