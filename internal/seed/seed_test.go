package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/exportsuite/internal/db"
	"github.com/Simplici0/exportsuite/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 4 {
				t.Fatalf("expected 4 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM rate_config WHERE id = 1`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM document_prefixes`, nil, 3)
	assertCount(t, database, `SELECT COUNT(*) FROM document_prefixes WHERE kind = ? AND prefix = ?`, []any{"quote", "QT"}, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM document_prefixes WHERE kind = ? AND prefix = ?`, []any{"shipment", "SHP"}, 1)

	var ratePerKg, ratePerCbm, insurance, duty, handling string
	if err := database.QueryRow(`
		SELECT rate_per_kg, rate_per_cbm, insurance_percent, customs_duty_percent, handling_fee
		FROM rate_config WHERE id = 1
	`).Scan(&ratePerKg, &ratePerCbm, &insurance, &duty, &handling); err != nil {
		t.Fatalf("query rate config: %v", err)
	}
	if ratePerKg != "2.5" || ratePerCbm != "150" || insurance != "2" || duty != "10" || handling != "0.00" {
		t.Fatalf("unexpected seeded rates: %s %s %s %s %s", ratePerKg, ratePerCbm, insurance, duty, handling)
	}
}

func TestRunKeepsEditedPrefix(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO document_prefixes (kind, prefix) VALUES ('order', 'SO')`); err != nil {
		t.Fatalf("insert prefix: %v", err)
	}

	stats, err := Run(database)
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 3 {
		t.Fatalf("expected 3 inserts, got %d", stats.Inserts)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM document_prefixes WHERE kind = ? AND prefix = ?`, []any{"order", "SO"}, 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
