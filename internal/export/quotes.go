// Package export renders stored records as spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/exportsuite/internal/store"
)

const quotesSheet = "Quotes"

var quoteHeaders = []any{
	"Quote No",
	"Created",
	"Buyer",
	"Origin",
	"Destination",
	"Mode",
	"Incoterm",
	"Currency",
	"Freight",
	"Insurance",
	"Customs Duty",
	"Handling",
	"Markup %",
	"Total Landed Cost",
}

// moneyColumns are the inclusive column spans holding amounts: Freight
// through Handling, and Total Landed Cost.
var moneyColumns = [][2]int{{9, 12}, {14, 14}}

// QuotesWorkbook renders quotes as an XLSX workbook with one row per quote.
// Amounts are written as numbers with a two-decimal format; the markup
// percentage keeps the general format so it is shown unrounded.
func QuotesWorkbook(quotes []store.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quotesSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFormat := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	if err := f.SetSheetRow(quotesSheet, "A1", &quoteHeaders); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	if err := f.SetCellStyle(quotesSheet, "A1", "N1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	for i, q := range quotes {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}

		values := []any{
			q.QuoteNo,
			q.CreatedAt.Format("2006-01-02"),
			q.Buyer,
			q.OriginPort,
			q.DestinationPort,
			string(q.TransportMode),
			q.Incoterm,
			q.Currency,
			q.Costs.FreightCost.InexactFloat64(),
			q.Costs.InsuranceCost.InexactFloat64(),
			q.Costs.CustomsDuty.InexactFloat64(),
			q.Costs.HandlingCharges.InexactFloat64(),
			q.Costs.MarkupPercent.InexactFloat64(),
			q.Costs.TotalLandedCost.InexactFloat64(),
		}
		if err := f.SetSheetRow(quotesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write quote %s: %w", q.QuoteNo, err)
		}

		for _, span := range moneyColumns {
			from, _ := excelize.CoordinatesToCellName(span[0], row)
			to, _ := excelize.CoordinatesToCellName(span[1], row)
			if err := f.SetCellStyle(quotesSheet, from, to, moneyStyle); err != nil {
				return nil, fmt.Errorf("style quote %s: %w", q.QuoteNo, err)
			}
		}
	}

	if err := f.SetColWidth(quotesSheet, "A", "C", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
