package domain

import "github.com/shopspring/decimal"

type QuoteLine struct {
	Key       string
	ProductID string
	Name      string
	Size      string
	Color     string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Quote struct {
	Lines     []QuoteLine
	ItemCount int64
	Summary
}

// Form is what the shopper submits on the checkout page.
type Form struct {
	Shipping ShippingInfo `json:"shipping"`
	Payment  PaymentInfo  `json:"payment"`

	SaveInfo      bool `json:"save_info"`
	SameAsBilling bool `json:"same_as_billing"`
}

type ShippingInfo struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Address   string `json:"address" validate:"required,max=200"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	ZipCode   string `json:"zip_code" validate:"required,max=16"`
	Country   string `json:"country" validate:"required,iso3166_1_alpha2"`
}

type PaymentInfo struct {
	CardNumber string `json:"card_number" validate:"required,credit_card"`
	ExpiryDate string `json:"expiry_date" validate:"required,expiry"`
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
	CardName   string `json:"card_name" validate:"required,max=100"`
}

// Last4 returns the trailing four digits of the card number for receipts.
func (p PaymentInfo) Last4() string {
	digits := make([]rune, 0, len(p.CardNumber))
	for _, r := range p.CardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

const DefaultCountry = "US"

// Normalize fills defaults the checkout page pre-selects.
func (f *Form) Normalize() {
	if f.Shipping.Country == "" {
		f.Shipping.Country = DefaultCountry
	}
}
