package domain

import "time"

const (
	ActionCall             = "call"
	ActionInitialOutreach  = "initial_outreach"
	ActionFollowUp         = "follow_up"
	ActionSendQuotation    = "send_quotation"
	ActionCollectEmail     = "collect_email"
	ActionEscalateCase     = "escalate_case"
	ActionCustomerFollowUp = "customer_follow_up"
	ActionRenewalReminder  = "renewal_reminder"
	ActionMarkExpired      = "mark_expired"
)

// ScoreRule é uma regra aplicada ao calcular o score de um lead
type ScoreRule struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

type LeadScore struct {
	LeadID    string      `json:"lead_id"`
	Score     int         `json:"score"`
	Grade     string      `json:"grade"`
	Breakdown []ScoreRule `json:"breakdown"`
}

// SuggestedAction é uma ação de acompanhamento sugerida pelas regras de negócio
type SuggestedAction struct {
	Kind     Kind      `json:"entity"`
	EntityID string    `json:"entity_id"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Priority string    `json:"priority"`
	Reason   string    `json:"reason"`
	DueDate  time.Time `json:"due_date"`
}

type LeadInsight struct {
	Lead    *Lead             `json:"lead"`
	Score   LeadScore         `json:"score"`
	Actions []SuggestedAction `json:"actions"`
}
