package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/exportsuite/internal/export"
	"github.com/Simplici0/exportsuite/internal/pricing"
	"github.com/Simplici0/exportsuite/internal/store"
)

// cargoRequest lets a quote carry cargo measurements instead of a freight
// amount; the freight cost is then estimated for the quote's mode.
type cargoRequest struct {
	WeightKg   decimal.Decimal  `json:"weightKg"`
	VolumeCbm  decimal.Decimal  `json:"volumeCbm"`
	RatePerKg  *decimal.Decimal `json:"ratePerKg"`
	RatePerCbm *decimal.Decimal `json:"ratePerCbm"`
}

type quoteRequest struct {
	QuoteNo         string           `json:"quoteNo"`
	Buyer           string           `json:"buyer"`
	OriginPort      string           `json:"originPort"`
	DestinationPort string           `json:"destinationPort"`
	TransportMode   string           `json:"transportMode"`
	Incoterm        string           `json:"incoterm"`
	Currency        string           `json:"currency"`
	FreightCost     *decimal.Decimal `json:"freightCost"`
	InsuranceCost   decimal.Decimal  `json:"insuranceCost"`
	CustomsDuty     decimal.Decimal  `json:"customsDuty"`
	HandlingCharges decimal.Decimal  `json:"handlingCharges"`
	MarkupPercent   decimal.Decimal  `json:"markupPercent"`
	Cargo           *cargoRequest    `json:"cargo"`
	Notes           string           `json:"notes"`
}

type quoteResponse struct {
	ID              int64     `json:"id"`
	QuoteNo         string    `json:"quoteNo"`
	Buyer           string    `json:"buyer"`
	OriginPort      string    `json:"originPort"`
	DestinationPort string    `json:"destinationPort"`
	TransportMode   string    `json:"transportMode"`
	Incoterm        string    `json:"incoterm"`
	Currency        string    `json:"currency"`
	FreightCost     string    `json:"freightCost"`
	InsuranceCost   string    `json:"insuranceCost"`
	CustomsDuty     string    `json:"customsDuty"`
	HandlingCharges string    `json:"handlingCharges"`
	MarkupPercent   string    `json:"markupPercent"`
	TotalLandedCost string    `json:"totalLandedCost"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func newQuoteResponse(q store.Quote) quoteResponse {
	return quoteResponse{
		ID:              q.ID,
		QuoteNo:         q.QuoteNo,
		Buyer:           q.Buyer,
		OriginPort:      q.OriginPort,
		DestinationPort: q.DestinationPort,
		TransportMode:   string(q.TransportMode),
		Incoterm:        q.Incoterm,
		Currency:        q.Currency,
		FreightCost:     amount(q.Costs.FreightCost),
		InsuranceCost:   amount(q.Costs.InsuranceCost),
		CustomsDuty:     amount(q.Costs.CustomsDuty),
		HandlingCharges: amount(q.Costs.HandlingCharges),
		MarkupPercent:   q.Costs.MarkupPercent.String(),
		TotalLandedCost: amount(q.Costs.TotalLandedCost),
		Notes:           q.Notes,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// toQuote builds the record to persist. The total is left for the store to
// derive.
func (s *server) toQuote(r *http.Request, req quoteRequest) (store.Quote, error) {
	mode := pricing.ParseTransportMode(req.TransportMode)

	freight := decimal.Zero
	switch {
	case req.FreightCost != nil:
		freight = *req.FreightCost
	case req.Cargo != nil:
		rates, err := s.store.GetRateConfig(r.Context())
		if err != nil {
			return store.Quote{}, err
		}
		estimate, err := pricing.EstimateFreight(pricing.FreightInput{
			WeightKg:   req.Cargo.WeightKg,
			VolumeCbm:  req.Cargo.VolumeCbm,
			RatePerKg:  orDefault(req.Cargo.RatePerKg, rates.RatePerKg),
			RatePerCbm: orDefault(req.Cargo.RatePerCbm, rates.RatePerCbm),
			Mode:       mode,
		})
		if err != nil {
			return store.Quote{}, err
		}
		freight = estimate.Cost
	}

	return store.Quote{
		QuoteNo:         req.QuoteNo,
		Buyer:           strings.TrimSpace(req.Buyer),
		OriginPort:      strings.TrimSpace(req.OriginPort),
		DestinationPort: strings.TrimSpace(req.DestinationPort),
		TransportMode:   mode,
		Incoterm:        req.Incoterm,
		Currency:        req.Currency,
		Costs: pricing.QuoteCosts{
			FreightCost:     freight,
			InsuranceCost:   req.InsuranceCost,
			CustomsDuty:     req.CustomsDuty,
			HandlingCharges: req.HandlingCharges,
			MarkupPercent:   req.MarkupPercent,
		},
		Notes: strings.TrimSpace(req.Notes),
	}, nil
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.store.ListQuotes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	resp := make([]quoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, newQuoteResponse(q))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	q, err := s.toQuote(r, req)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	created, err := s.store.CreateQuote(r.Context(), q)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newQuoteResponse(created))
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	q, err := s.store.GetQuote(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuoteResponse(q))
}

func (s *server) handleQuoteUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req quoteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	q, err := s.toQuote(r, req)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	updated, err := s.store.UpdateQuote(r.Context(), id, q)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuoteResponse(updated))
}

func (s *server) handleQuotesExport(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.store.ListQuotes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	data, err := export.QuotesWorkbook(quotes)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="quotes.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
