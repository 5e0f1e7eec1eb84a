package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	Number            string
	Status            string
	Email             string
	SubTotalAmount    decimal.Decimal
	ShippingAmount    decimal.Decimal
	TaxAmount         decimal.Decimal
	TotalAmount       decimal.Decimal
	ItemCount         int64
	OrderItems        []OrderItem
	PaymentReference  string
	PlacedAt          time.Time
	EstimatedDelivery time.Time
}

type OrderItem struct {
	ProductID       string
	Name            string
	Size            string
	Color           string
	UnitAmount      decimal.Decimal
	Quantity        int64
	LineTotalAmount decimal.Decimal
}

type CreateOrderRequest struct {
	Email            string
	ShippingAmount   decimal.Decimal
	TaxAmount        decimal.Decimal
	PaymentReference string
	Items            []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID  string
	Name       string
	Size       string
	Color      string
	UnitAmount decimal.Decimal
	Quantity   int64
}
