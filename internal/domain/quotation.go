package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/crm-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
	QuotationStatusExpired  = "expired"
)

var QuotationStatuses = []string{QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired}

type QuotationItem struct {
	ProductID       *string `json:"product_id,omitempty"`
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	TaxRate         float64 `json:"tax_rate"`
	LineTotal       float64 `json:"line_total"`
}

// QuotationItems é persistido como jsonb
type QuotationItems []QuotationItem

func (q QuotationItems) Value() (driver.Value, error) {
	if q == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(q)
}

func (q *QuotationItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*q = QuotationItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for quotation items: %T", src)
	}
	return json.Unmarshal(raw, q)
}

type Quotation struct {
	Base
	Ownership
	Number        string         `json:"number" db:"number"`
	AccountID     string         `json:"account_id" db:"account_id"`
	ContactID     *string        `json:"contact_id" db:"contact_id"`
	DealID        *string        `json:"deal_id" db:"deal_id"`
	Status        string         `json:"status" db:"status"`
	ValidUntil    *time.Time     `json:"valid_until" db:"valid_until"`
	Items         QuotationItems `json:"items" db:"items"`
	Subtotal      float64        `json:"subtotal" db:"subtotal"`
	DiscountTotal float64        `json:"discount_total" db:"discount_total"`
	TaxTotal      float64        `json:"tax_total" db:"tax_total"`
	GrandTotal    float64        `json:"grand_total" db:"grand_total"`
	AmountInWords string         `json:"amount_in_words" db:"amount_in_words"`
	Notes         string         `json:"notes" db:"notes"`
}

func (q *Quotation) ReferencePrefix() string {
	return "QT"
}

func (q *Quotation) Reference() string {
	return q.Number
}

func (q *Quotation) SetReference(ref string) {
	q.Number = ref
}

func (q *Quotation) Validate() error {
	trimAll(&q.AccountID)

	v := &validator{}
	v.required("account_id", q.AccountID)
	v.oneOf("status", &q.Status, QuotationStatuses)
	if len(q.Items) == 0 {
		v.add("items", ReasonRequired, "at least one item")
	}
	for i, item := range q.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.Quantity <= 0 {
			v.add(field+".quantity", ReasonInvalid, "must be greater than zero")
		}
		v.nonNegative(field+".unit_price", item.UnitPrice)
		v.between(field+".discount_percent", item.DiscountPercent, 0, 100)
		v.between(field+".tax_rate", item.TaxRate, 0, 100)
	}
	return v.err()
}

// Compute recalcula os totais das linhas e da cotação; o imposto incide sobre o valor já descontado
func (q *Quotation) Compute() {
	var subtotal, discount, tax float64
	for i := range q.Items {
		item := &q.Items[i]
		gross := item.Quantity * item.UnitPrice
		lineDiscount := gross * item.DiscountPercent / 100
		lineTax := (gross - lineDiscount) * item.TaxRate / 100
		item.LineTotal = utils.RoundWithTwoDecimalPlace(gross - lineDiscount + lineTax)

		subtotal += gross
		discount += lineDiscount
		tax += lineTax
	}

	q.Subtotal = utils.RoundWithTwoDecimalPlace(subtotal)
	q.DiscountTotal = utils.RoundWithTwoDecimalPlace(discount)
	q.TaxTotal = utils.RoundWithTwoDecimalPlace(tax)
	q.GrandTotal = utils.RoundWithTwoDecimalPlace(subtotal - discount + tax)
}
