package main

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/exportsuite/internal/store"
)

// ratesRequest is a partial update: omitted fields keep their stored value.
type ratesRequest struct {
	RatePerKg          *decimal.Decimal `json:"ratePerKg"`
	RatePerCbm         *decimal.Decimal `json:"ratePerCbm"`
	InsurancePercent   *decimal.Decimal `json:"insurancePercent"`
	CustomsDutyPercent *decimal.Decimal `json:"customsDutyPercent"`
	HandlingFee        *decimal.Decimal `json:"handlingFee"`
	Currency           *string          `json:"currency"`
}

type ratesResponse struct {
	RatePerKg          string    `json:"ratePerKg"`
	RatePerCbm         string    `json:"ratePerCbm"`
	InsurancePercent   string    `json:"insurancePercent"`
	CustomsDutyPercent string    `json:"customsDutyPercent"`
	HandlingFee        string    `json:"handlingFee"`
	Currency           string    `json:"currency"`
	UpdatedAt          time.Time `json:"updatedAt,omitzero"`
}

func newRatesResponse(rc store.RateConfig) ratesResponse {
	return ratesResponse{
		RatePerKg:          rc.RatePerKg.String(),
		RatePerCbm:         rc.RatePerCbm.String(),
		InsurancePercent:   rc.InsurancePercent.String(),
		CustomsDutyPercent: rc.CustomsDutyPercent.String(),
		HandlingFee:        amount(rc.HandlingFee),
		Currency:           rc.Currency,
		UpdatedAt:          rc.UpdatedAt,
	}
}

func (s *server) handleRatesGet(w http.ResponseWriter, r *http.Request) {
	rc, err := s.store.GetRateConfig(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRatesResponse(rc))
}

func (s *server) handleRatesUpdate(w http.ResponseWriter, r *http.Request) {
	var req ratesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	rc, err := s.store.GetRateConfig(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	rc.RatePerKg = orDefault(req.RatePerKg, rc.RatePerKg)
	rc.RatePerCbm = orDefault(req.RatePerCbm, rc.RatePerCbm)
	rc.InsurancePercent = orDefault(req.InsurancePercent, rc.InsurancePercent)
	rc.CustomsDutyPercent = orDefault(req.CustomsDutyPercent, rc.CustomsDutyPercent)
	rc.HandlingFee = orDefault(req.HandlingFee, rc.HandlingFee)
	if req.Currency != nil {
		rc.Currency = *req.Currency
	}

	updated, err := s.store.UpdateRateConfig(r.Context(), rc)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRatesResponse(updated))
}
