package domain

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	LeadStatusNew         = "new"
	LeadStatusContacted   = "contacted"
	LeadStatusQualified   = "qualified"
	LeadStatusUnqualified = "unqualified"
	LeadStatusConverted   = "converted"
	LeadStatusLost        = "lost"

	LeadSourceWebsite       = "website"
	LeadSourceReferral      = "referral"
	LeadSourceTradeShow     = "trade_show"
	LeadSourceColdCall      = "cold_call"
	LeadSourceAdvertisement = "advertisement"
	LeadSourceEmailCampaign = "email_campaign"
	LeadSourceOther         = "other"

	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"

	GradeHot  = "hot"
	GradeWarm = "warm"
	GradeCold = "cold"
)

var (
	LeadStatuses = []string{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusUnqualified, LeadStatusConverted, LeadStatusLost}
	LeadSources  = []string{LeadSourceWebsite, LeadSourceReferral, LeadSourceTradeShow, LeadSourceColdCall, LeadSourceAdvertisement, LeadSourceEmailCampaign, LeadSourceOther}
	// medium primeiro para ser o padrão
	LeadPriorities = []string{PriorityMedium, PriorityLow, PriorityHigh}
)

type Lead struct {
	Base
	Ownership
	FirstName          string         `json:"first_name" db:"first_name"`
	LastName           string         `json:"last_name" db:"last_name"`
	Company            string         `json:"company" db:"company"`
	Title              string         `json:"title" db:"title"`
	Email              string         `json:"email" db:"email"`
	Phone              string         `json:"phone" db:"phone"`
	Source             string         `json:"source" db:"source"`
	Status             string         `json:"status" db:"status"`
	Industry           string         `json:"industry" db:"industry"`
	City               string         `json:"city" db:"city"`
	Budget             float64        `json:"budget" db:"budget"`
	Priority           string         `json:"priority" db:"priority"`
	Notes              string         `json:"notes" db:"notes"`
	Tags               pq.StringArray `json:"tags" db:"tags"`
	Score              int            `json:"score" db:"score"`
	Grade              string         `json:"grade" db:"grade"`
	LastContactedAt    *time.Time     `json:"last_contacted_at" db:"last_contacted_at"`
	ConvertedAccountID *string        `json:"converted_account_id" db:"converted_account_id"`
}

func (l *Lead) Validate() error {
	trimAll(&l.FirstName, &l.LastName, &l.Company, &l.Email, &l.Phone)
	l.Email = strings.ToLower(l.Email)

	v := &validator{}
	v.required("first_name", l.FirstName)
	v.required("company", l.Company)
	v.email("email", l.Email)
	v.oneOf("status", &l.Status, LeadStatuses)
	v.oneOf("source", &l.Source, LeadSources)
	v.oneOf("priority", &l.Priority, LeadPriorities)
	v.nonNegative("budget", l.Budget)
	return v.err()
}

func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// IsClosed indica se o lead não gera mais ações de acompanhamento
func (l *Lead) IsClosed() bool {
	return l.Status == LeadStatusConverted || l.Status == LeadStatusLost || l.Status == LeadStatusUnqualified
}

// LeadConversion é o resultado da conversão de um lead
type LeadConversion struct {
	Lead    *Lead    `json:"lead"`
	Account *Account `json:"account"`
	Contact *Contact `json:"contact"`
	Deal    *Deal    `json:"deal,omitempty"`
}
