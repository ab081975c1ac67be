package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateOrderDerivesLineTotals(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]any{
		"buyer":    "Hamburg Imports GmbH",
		"currency": "EUR",
		"items": []map[string]any{
			{"sku": "TEA-01", "qty": 3, "unitPrice": 19.999, "lineTotal": 1},
			{"sku": "TEA-02", "qty": 10, "unitPrice": 5, "discountPercent": 10},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	o := decodeBody[orderResponse](t, rec)
	require.Equal(t, "ORD-202610-0042", o.OrderNo)
	require.Len(t, o.Items, 2)
	require.Equal(t, "60.00", o.Items[0].LineTotal)
	require.Equal(t, "45.00", o.Items[1].LineTotal)
	require.Equal(t, "105.00", o.Total)

	rec = doJSON(t, h, http.MethodGet, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "105.00", decodeBody[orderResponse](t, rec).Total)
}

func TestCreateOrderRejectsBadItem(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]any{
		"items": []map[string]any{
			{"qty": 1, "unitPrice": 5},
			{"qty": 0, "unitPrice": 5},
		},
	})
	resp := requireErrorCode(t, rec, http.StatusBadRequest, "invalid_input")
	require.Equal(t, "items[1].qty", resp.Details["field"])
}

func TestOrderItemEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]any{"buyer": "Osaka Foods"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/orders/1/items", map[string]any{
		"sku": "RICE-5", "qty": 5, "unitPrice": 5, "lineTotal": 999,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody[orderItemResponse](t, rec)
	require.Equal(t, "25.00", item.LineTotal)

	rec = doJSON(t, h, http.MethodPut, "/api/orders/1/items/1", map[string]any{
		"sku": "RICE-5", "qty": 8, "unitPrice": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "40.00", decodeBody[orderItemResponse](t, rec).LineTotal)

	rec = doJSON(t, h, http.MethodGet, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "40.00", decodeBody[orderResponse](t, rec).Total)
}

func TestOrderItemEndpointsNotFound(t *testing.T) {
	h := newTestServer(t)

	body := map[string]any{"qty": 1, "unitPrice": 1}
	requireErrorCode(t, doJSON(t, h, http.MethodPost, "/api/orders/7/items", body), http.StatusNotFound, "not_found")
	requireErrorCode(t, doJSON(t, h, http.MethodPut, "/api/orders/7/items/1", body), http.StatusNotFound, "not_found")
	requireErrorCode(t, doJSON(t, h, http.MethodGet, "/api/orders/7", nil), http.StatusNotFound, "not_found")
}
