package main

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/exportsuite/internal/pricing"
	"github.com/Simplici0/exportsuite/internal/store"
)

type orderItemRequest struct {
	SKU             string          `json:"sku"`
	Description     string          `json:"description"`
	Qty             int64           `json:"qty"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

func (req orderItemRequest) item() store.OrderItem {
	return store.OrderItem{
		SKU:         req.SKU,
		Description: req.Description,
		Line: pricing.OrderLine{
			Qty:             req.Qty,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: req.DiscountPercent,
		},
	}
}

type orderRequest struct {
	OrderNo  string             `json:"orderNo"`
	Buyer    string             `json:"buyer"`
	Currency string             `json:"currency"`
	Items    []orderItemRequest `json:"items"`
}

type orderItemResponse struct {
	ID              int64  `json:"id"`
	OrderID         int64  `json:"orderId"`
	SKU             string `json:"sku"`
	Description     string `json:"description"`
	Qty             int64  `json:"qty"`
	UnitPrice       string `json:"unitPrice"`
	DiscountPercent string `json:"discountPercent"`
	LineTotal       string `json:"lineTotal"`
}

func newOrderItemResponse(item store.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:              item.ID,
		OrderID:         item.OrderID,
		SKU:             item.SKU,
		Description:     item.Description,
		Qty:             item.Line.Qty,
		UnitPrice:       amount(item.Line.UnitPrice),
		DiscountPercent: item.Line.DiscountPercent.String(),
		LineTotal:       amount(item.Line.LineTotal),
	}
}

type orderResponse struct {
	ID        int64               `json:"id"`
	OrderNo   string              `json:"orderNo"`
	Buyer     string              `json:"buyer"`
	Currency  string              `json:"currency"`
	Items     []orderItemResponse `json:"items"`
	Total     string              `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
}

func newOrderResponse(o store.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, newOrderItemResponse(item))
	}
	return orderResponse{
		ID:        o.ID,
		OrderNo:   o.OrderNo,
		Buyer:     o.Buyer,
		Currency:  o.Currency,
		Items:     items,
		Total:     amount(o.Total),
		CreatedAt: o.CreatedAt,
	}
}

func (s *server) handleOrderCreate(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	o := store.Order{OrderNo: req.OrderNo, Buyer: req.Buyer, Currency: req.Currency}
	for _, item := range req.Items {
		o.Items = append(o.Items, item.item())
	}

	created, err := s.store.CreateOrder(r.Context(), o)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newOrderResponse(created))
}

func (s *server) handleOrderGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	o, err := s.store.GetOrder(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(o))
}

func (s *server) handleOrderItemAdd(w http.ResponseWriter, r *http.Request) {
	orderID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req orderItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	item, err := s.store.AddOrderItem(r.Context(), orderID, req.item())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newOrderItemResponse(item))
}

func (s *server) handleOrderItemUpdate(w http.ResponseWriter, r *http.Request) {
	orderID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := s.pathID(w, r, "itemID")
	if !ok {
		return
	}

	var req orderItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	item, err := s.store.UpdateOrderItem(r.Context(), orderID, itemID, req.item())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderItemResponse(item))
}
