package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Simplici0/exportsuite/internal/pricing"
)

// Quote is a freight/landed-cost quote sent to a buyer. Route and trade
// fields are stored as given; only Costs.TotalLandedCost is derived.
type Quote struct {
	ID              int64
	QuoteNo         string
	Buyer           string
	OriginPort      string
	DestinationPort string
	TransportMode   pricing.TransportMode
	Incoterm        string
	Currency        string
	Costs           pricing.QuoteCosts
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *Store) deriveQuote(q Quote) (Quote, error) {
	costs, err := pricing.DeriveQuote(q.Costs)
	if err != nil {
		return Quote{}, err
	}
	s.observer.ObserveDerivation(KindQuote)

	q.Costs = costs
	q.QuoteNo = strings.TrimSpace(q.QuoteNo)
	q.Incoterm = strings.ToUpper(strings.TrimSpace(q.Incoterm))
	q.Currency = strings.ToUpper(strings.TrimSpace(q.Currency))
	if q.TransportMode == "" {
		q.TransportMode = pricing.ModeSea
	}
	return q, nil
}

// CreateQuote derives the quote total, assigns a quote number when none is
// given and inserts the quote. A number collision returns ErrConflict.
func (s *Store) CreateQuote(ctx context.Context, q Quote) (Quote, error) {
	q, err := s.deriveQuote(q)
	if err != nil {
		return Quote{}, err
	}

	if q.QuoteNo == "" {
		if q.QuoteNo, err = s.nextNumber(ctx, KindQuote); err != nil {
			return Quote{}, err
		}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			quote_no,
			buyer,
			origin_port,
			destination_port,
			transport_mode,
			incoterm,
			currency,
			freight_cost,
			insurance_cost,
			customs_duty,
			handling_charges,
			markup_percent,
			total_landed_cost,
			notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		q.QuoteNo,
		q.Buyer,
		q.OriginPort,
		q.DestinationPort,
		string(q.TransportMode),
		q.Incoterm,
		q.Currency,
		money(q.Costs.FreightCost),
		money(q.Costs.InsuranceCost),
		money(q.Costs.CustomsDuty),
		money(q.Costs.HandlingCharges),
		q.Costs.MarkupPercent.String(),
		money(q.Costs.TotalLandedCost),
		q.Notes,
	)
	if err != nil {
		return Quote{}, writeError("insert quote", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Quote{}, fmt.Errorf("read quote id: %w", err)
	}

	return s.GetQuote(ctx, id)
}

// UpdateQuote derives the quote total and overwrites quote id. An empty
// QuoteNo keeps the stored number.
func (s *Store) UpdateQuote(ctx context.Context, id int64, q Quote) (Quote, error) {
	q, err := s.deriveQuote(q)
	if err != nil {
		return Quote{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE quotes
		SET
			quote_no = COALESCE(NULLIF(?, ''), quote_no),
			buyer = ?,
			origin_port = ?,
			destination_port = ?,
			transport_mode = ?,
			incoterm = ?,
			currency = ?,
			freight_cost = ?,
			insurance_cost = ?,
			customs_duty = ?,
			handling_charges = ?,
			markup_percent = ?,
			total_landed_cost = ?,
			notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		q.QuoteNo,
		q.Buyer,
		q.OriginPort,
		q.DestinationPort,
		string(q.TransportMode),
		q.Incoterm,
		q.Currency,
		money(q.Costs.FreightCost),
		money(q.Costs.InsuranceCost),
		money(q.Costs.CustomsDuty),
		money(q.Costs.HandlingCharges),
		q.Costs.MarkupPercent.String(),
		money(q.Costs.TotalLandedCost),
		q.Notes,
		id,
	)
	if err != nil {
		return Quote{}, writeError("update quote", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Quote{}, fmt.Errorf("update quote: %w", err)
	}
	if affected == 0 {
		return Quote{}, fmt.Errorf("quote %d: %w", id, ErrNotFound)
	}

	return s.GetQuote(ctx, id)
}

const quoteColumns = `
	id,
	quote_no,
	buyer,
	origin_port,
	destination_port,
	transport_mode,
	incoterm,
	currency,
	freight_cost,
	insurance_cost,
	customs_duty,
	handling_charges,
	markup_percent,
	total_landed_cost,
	COALESCE(notes, ''),
	created_at,
	updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (Quote, error) {
	var q Quote
	var mode, createdAt, updatedAt string
	err := row.Scan(
		&q.ID,
		&q.QuoteNo,
		&q.Buyer,
		&q.OriginPort,
		&q.DestinationPort,
		&mode,
		&q.Incoterm,
		&q.Currency,
		&q.Costs.FreightCost,
		&q.Costs.InsuranceCost,
		&q.Costs.CustomsDuty,
		&q.Costs.HandlingCharges,
		&q.Costs.MarkupPercent,
		&q.Costs.TotalLandedCost,
		&q.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return Quote{}, err
	}
	q.TransportMode = pricing.TransportMode(mode)
	q.CreatedAt = parseTimestamp(createdAt)
	q.UpdatedAt = parseTimestamp(updatedAt)
	return q, nil
}

// GetQuote loads quote id.
func (s *Store) GetQuote(ctx context.Context, id int64) (Quote, error) {
	q, err := scanQuote(s.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("quote %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quote %d: %w", id, err)
	}
	return q, nil
}

// ListQuotes returns quotes newest first. A non-empty query filters on
// quote number, buyer and notes.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]Quote, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+`
		FROM quotes
		WHERE (? = '' OR quote_no LIKE ? OR buyer LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}
