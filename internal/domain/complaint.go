package domain

import "time"

const (
	ComplaintStatusOpen          = "open"
	ComplaintStatusInvestigating = "investigating"
	ComplaintStatusEscalated     = "escalated"
	ComplaintStatusResolved      = "resolved"
	ComplaintStatusClosed        = "closed"
)

var (
	ComplaintStatuses   = []string{ComplaintStatusOpen, ComplaintStatusInvestigating, ComplaintStatusEscalated, ComplaintStatusResolved, ComplaintStatusClosed}
	ComplaintSeverities = []string{PriorityMedium, PriorityLow, PriorityHigh, PriorityCritical}
	ComplaintChannels   = []string{OriginPhone, OriginEmail, OriginWeb, OriginVisit, OriginDealer}
)

type Complaint struct {
	Base
	Ownership
	Number      string     `json:"number" db:"number"`
	AccountID   string     `json:"account_id" db:"account_id"`
	ContactID   *string    `json:"contact_id" db:"contact_id"`
	ProductID   *string    `json:"product_id" db:"product_id"`
	Subject     string     `json:"subject" db:"subject"`
	Description string     `json:"description" db:"description"`
	Severity    string     `json:"severity" db:"severity"`
	Status      string     `json:"status" db:"status"`
	Channel     string     `json:"channel" db:"channel"`
	Resolution  string     `json:"resolution" db:"resolution"`
	EscalatedAt *time.Time `json:"escalated_at" db:"escalated_at"`
	ResolvedAt  *time.Time `json:"resolved_at" db:"resolved_at"`
}

func (c *Complaint) ReferencePrefix() string {
	return "CP"
}

func (c *Complaint) Reference() string {
	return c.Number
}

func (c *Complaint) SetReference(ref string) {
	c.Number = ref
}

func (c *Complaint) Validate() error {
	trimAll(&c.AccountID, &c.Subject)

	v := &validator{}
	v.required("account_id", c.AccountID)
	v.required("subject", c.Subject)
	v.oneOf("status", &c.Status, ComplaintStatuses)
	v.oneOf("severity", &c.Severity, ComplaintSeverities)
	v.oneOf("channel", &c.Channel, ComplaintChannels)
	return v.err()
}

// CanEscalate indica se a reclamação ainda está em tratamento inicial
func (c *Complaint) CanEscalate() bool {
	return c.Status == ComplaintStatusOpen || c.Status == ComplaintStatusInvestigating
}

type EscalateComplaintRequest struct {
	Reason string `json:"reason"`
}
