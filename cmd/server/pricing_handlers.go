package main

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/exportsuite/internal/pricing"
	"github.com/Simplici0/exportsuite/internal/store"
)

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func orDefault(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

type landedCostRequest struct {
	ProductValue       decimal.Decimal  `json:"productValue"`
	FreightCost        decimal.Decimal  `json:"freightCost"`
	InsurancePercent   *decimal.Decimal `json:"insurancePercent"`
	CustomsDutyPercent *decimal.Decimal `json:"customsDutyPercent"`
	HandlingFee        *decimal.Decimal `json:"handlingFee"`
	OriginCountry      string           `json:"originCountry"`
	DestinationCountry string           `json:"destinationCountry"`
}

type landedCostBreakdown struct {
	ProductValue  string `json:"productValue"`
	FreightCost   string `json:"freightCost"`
	InsuranceCost string `json:"insuranceCost"`
	CustomsValue  string `json:"customsValue"`
	CustomsDuty   string `json:"customsDuty"`
	HandlingFee   string `json:"handlingFee"`
}

type landedCostResponse struct {
	Breakdown                landedCostBreakdown `json:"breakdown"`
	TotalLandedCost          string              `json:"totalLandedCost"`
	PercentageOfProductValue string              `json:"percentageOfProductValue"`
	Route                    string              `json:"route"`
}

func (s *server) handleLandedCost(w http.ResponseWriter, r *http.Request) {
	var req landedCostRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	rates, err := s.store.GetRateConfig(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	result, err := pricing.CalculateLandedCost(pricing.LandedCostInput{
		ProductValue:       req.ProductValue,
		FreightCost:        req.FreightCost,
		InsurancePercent:   orDefault(req.InsurancePercent, rates.InsurancePercent),
		CustomsDutyPercent: orDefault(req.CustomsDutyPercent, rates.CustomsDutyPercent),
		HandlingFee:        orDefault(req.HandlingFee, rates.HandlingFee),
		OriginCountry:      req.OriginCountry,
		DestinationCountry: req.DestinationCountry,
	})
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	b := result.Breakdown
	writeJSON(w, http.StatusOK, landedCostResponse{
		Breakdown: landedCostBreakdown{
			ProductValue:  amount(b.ProductValue),
			FreightCost:   amount(b.FreightCost),
			InsuranceCost: amount(b.InsuranceCost),
			CustomsValue:  amount(b.CustomsValue),
			CustomsDuty:   amount(b.CustomsDuty),
			HandlingFee:   amount(b.HandlingFee),
		},
		TotalLandedCost:          amount(result.TotalLandedCost),
		PercentageOfProductValue: amount(result.PercentageOfProductValue),
		Route:                    result.Route,
	})
}

type freightRequest struct {
	WeightKg        decimal.Decimal  `json:"weightKg"`
	VolumeCbm       decimal.Decimal  `json:"volumeCbm"`
	RatePerKg       *decimal.Decimal `json:"ratePerKg"`
	RatePerCbm      *decimal.Decimal `json:"ratePerCbm"`
	ModeOfTransport string           `json:"modeOfTransport"`
}

type freightResponse struct {
	ModeOfTransport  string `json:"modeOfTransport"`
	VolumetricWeight string `json:"volumetricWeight"`
	ChargeableWeight string `json:"chargeableWeight"`
	FreightCost      string `json:"freightCost"`
}

func freightInput(req freightRequest, rates store.RateConfig) pricing.FreightInput {
	return pricing.FreightInput{
		WeightKg:   req.WeightKg,
		VolumeCbm:  req.VolumeCbm,
		RatePerKg:  orDefault(req.RatePerKg, rates.RatePerKg),
		RatePerCbm: orDefault(req.RatePerCbm, rates.RatePerCbm),
		Mode:       pricing.ParseTransportMode(req.ModeOfTransport),
	}
}

func (s *server) handleFreightEstimate(w http.ResponseWriter, r *http.Request) {
	var req freightRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	rates, err := s.store.GetRateConfig(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	estimate, err := pricing.EstimateFreight(freightInput(req, rates))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, freightResponse{
		ModeOfTransport:  string(estimate.Mode),
		VolumetricWeight: estimate.VolumetricWeight.String(),
		ChargeableWeight: estimate.ChargeableWeight.String(),
		FreightCost:      amount(estimate.Cost),
	})
}

type markupRequest struct {
	BaseCost      decimal.Decimal `json:"baseCost"`
	MarkupPercent decimal.Decimal `json:"markupPercent"`
}

type markupResponse struct {
	BaseCost      string `json:"baseCost"`
	MarkupPercent string `json:"markupPercent"`
	MarkupAmount  string `json:"markupAmount"`
	FinalPrice    string `json:"finalPrice"`
}

func (s *server) handleMarkup(w http.ResponseWriter, r *http.Request) {
	var req markupRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := pricing.ApplyMarkup(req.BaseCost, req.MarkupPercent)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, markupResponse{
		BaseCost:      amount(result.BaseCost),
		MarkupPercent: result.MarkupPercent.String(),
		MarkupAmount:  amount(result.MarkupAmount),
		FinalPrice:    amount(result.FinalPrice),
	})
}
