package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLandedCostEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/pricing/landed-cost", map[string]any{
		"productValue":       1000,
		"freightCost":        100,
		"handlingFee":        5,
		"originCountry":      "India",
		"destinationCountry": "Germany",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[landedCostResponse](t, rec)
	require.Equal(t, "20.00", resp.Breakdown.InsuranceCost)
	require.Equal(t, "1120.00", resp.Breakdown.CustomsValue)
	require.Equal(t, "112.00", resp.Breakdown.CustomsDuty)
	require.Equal(t, "5.00", resp.Breakdown.HandlingFee)
	require.Equal(t, "1237.00", resp.TotalLandedCost)
	require.Equal(t, "123.70", resp.PercentageOfProductValue)
	require.Equal(t, "India → Germany", resp.Route)
}

func TestLandedCostEndpointRejectsZeroProductValue(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/pricing/landed-cost", map[string]any{
		"productValue": 0,
		"freightCost":  100,
	})
	resp := requireErrorCode(t, rec, http.StatusBadRequest, "invalid_input")
	require.Equal(t, "productValue", resp.Details["field"])
}

func TestFreightEndpointUsesStoredRates(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		mode string
		want string
	}{
		{"", "300.00"},
		{"sea", "300.00"},
		{"air", "1250.00"},
		{"road", "1250.00"},
	}

	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/pricing/freight", map[string]any{
				"weightKg":        500,
				"volumeCbm":       2,
				"modeOfTransport": tt.mode,
			})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.Equal(t, tt.want, decodeBody[freightResponse](t, rec).FreightCost)
		})
	}
}

func TestFreightEndpointRateOverride(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/pricing/freight", map[string]any{
		"weightKg":        100,
		"volumeCbm":       2,
		"ratePerKg":       3,
		"modeOfTransport": "air",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[freightResponse](t, rec)
	require.Equal(t, "air", resp.ModeOfTransport)
	require.Equal(t, "334", resp.ChargeableWeight)
	require.Equal(t, "1002.00", resp.FreightCost)
}

func TestMarkupEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/pricing/markup", map[string]any{
		"baseCost":      99.99,
		"markupPercent": 12.345,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, markupResponse{
		BaseCost:      "99.99",
		MarkupPercent: "12.345",
		MarkupAmount:  "12.34",
		FinalPrice:    "112.33",
	}, decodeBody[markupResponse](t, rec))
}

func TestMarkupEndpointRejectsNegativeBase(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/pricing/markup", map[string]any{"baseCost": -1, "markupPercent": 5})
	resp := requireErrorCode(t, rec, http.StatusBadRequest, "invalid_input")
	require.Equal(t, "baseCost", resp.Details["field"])
}
