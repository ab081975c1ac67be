package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/exportsuite/internal/pricing"
	"github.com/Simplici0/exportsuite/internal/store"
)

func TestQuotesWorkbook(t *testing.T) {
	quotes := []store.Quote{
		{
			QuoteNo:         "QT-202610-0001",
			Buyer:           "Hamburg Imports GmbH",
			OriginPort:      "INNSA",
			DestinationPort: "DEHAM",
			TransportMode:   pricing.ModeSea,
			Incoterm:        "CIF",
			Currency:        "USD",
			CreatedAt:       time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC),
			Costs: pricing.QuoteCosts{
				FreightCost:     decimal.RequireFromString("100"),
				InsuranceCost:   decimal.RequireFromString("20"),
				MarkupPercent:   decimal.RequireFromString("10"),
				TotalLandedCost: decimal.RequireFromString("132.00"),
			},
		},
	}

	data, err := QuotesWorkbook(quotes)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(quotesSheet, "N1")
	require.NoError(t, err)
	require.Equal(t, "Total Landed Cost", header)

	quoteNo, err := f.GetCellValue(quotesSheet, "A2")
	require.NoError(t, err)
	require.Equal(t, "QT-202610-0001", quoteNo)

	created, err := f.GetCellValue(quotesSheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "2026-10-01", created)

	total, err := f.GetCellValue(quotesSheet, "N2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Equal(t, "132", total)
}

func TestQuotesWorkbookEmpty(t *testing.T) {
	data, err := QuotesWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(quotesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestQuotesWorkbookKeepsMarkupPercentUnrounded(t *testing.T) {
	data, err := QuotesWorkbook([]store.Quote{{
		QuoteNo: "QT-202610-0002",
		Costs: pricing.QuoteCosts{
			FreightCost:     decimal.RequireFromString("100"),
			MarkupPercent:   decimal.RequireFromString("12.345"),
			TotalLandedCost: decimal.RequireFromString("112.35"),
		},
	}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	markup, err := f.GetCellValue(quotesSheet, "M2")
	require.NoError(t, err)
	require.Equal(t, "12.345", markup)

	freight, err := f.GetCellValue(quotesSheet, "I2")
	require.NoError(t, err)
	require.Equal(t, "100.00", freight)
}
