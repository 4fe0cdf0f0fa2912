package domain

import "time"

const (
	AMCStatusActive    = "active"
	AMCStatusPending   = "pending"
	AMCStatusExpired   = "expired"
	AMCStatusRenewed   = "renewed"
	AMCStatusCancelled = "cancelled"

	BillingYearly     = "yearly"
	BillingHalfYearly = "half_yearly"
	BillingQuarterly  = "quarterly"
	BillingMonthly    = "monthly"
	BillingOneTime    = "one_time"
)

var (
	AMCStatuses       = []string{AMCStatusActive, AMCStatusPending, AMCStatusExpired, AMCStatusRenewed, AMCStatusCancelled}
	BillingFrequences = []string{BillingYearly, BillingHalfYearly, BillingQuarterly, BillingMonthly, BillingOneTime}
)

// AMCContract é um contrato anual de manutenção
type AMCContract struct {
	Base
	Ownership
	ContractNumber      string     `json:"contract_number" db:"contract_number"`
	AccountID           string     `json:"account_id" db:"account_id"`
	ProductID           *string    `json:"product_id" db:"product_id"`
	StartDate           *time.Time `json:"start_date" db:"start_date"`
	EndDate             *time.Time `json:"end_date" db:"end_date"`
	ContractValue       float64    `json:"contract_value" db:"contract_value"`
	BillingFrequency    string     `json:"billing_frequency" db:"billing_frequency"`
	VisitsPerYear       int        `json:"visits_per_year" db:"visits_per_year"`
	Status              string     `json:"status" db:"status"`
	RenewalReminderSent bool       `json:"renewal_reminder_sent" db:"renewal_reminder_sent"`
	RenewedFromID       *string    `json:"renewed_from_id" db:"renewed_from_id"`
	Notes               string     `json:"notes" db:"notes"`
}

func (a *AMCContract) Validate() error {
	trimAll(&a.ContractNumber, &a.AccountID)

	v := &validator{}
	v.required("contract_number", a.ContractNumber)
	v.required("account_id", a.AccountID)
	if a.StartDate == nil {
		v.add("start_date", ReasonRequired, "")
	}
	if a.EndDate == nil {
		v.add("end_date", ReasonRequired, "")
	}
	if a.StartDate != nil && a.EndDate != nil && !a.EndDate.After(*a.StartDate) {
		v.add("end_date", ReasonInvalid, "must be after start_date")
	}
	v.oneOf("status", &a.Status, AMCStatuses)
	v.oneOf("billing_frequency", &a.BillingFrequency, BillingFrequences)
	v.nonNegative("contract_value", a.ContractValue)
	v.nonNegative("visits_per_year", float64(a.VisitsPerYear))
	return v.err()
}

// DaysUntilExpiry considera apenas a data, ignorando o horário
func (a *AMCContract) DaysUntilExpiry(now time.Time) int {
	if a.EndDate == nil {
		return 0
	}
	end := truncateDay(*a.EndDate)
	return int(end.Sub(truncateDay(now)).Hours() / 24)
}

type RenewAMCRequest struct {
	ContractValue *float64   `json:"contract_value"`
	EndDate       *time.Time `json:"end_date"`
}

type Installment struct {
	Number  int       `json:"number"`
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
}

type AMCSchedule struct {
	ContractID   string        `json:"contract_id"`
	Frequency    string        `json:"billing_frequency"`
	Total        float64       `json:"total"`
	Installments []Installment `json:"installments"`
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
