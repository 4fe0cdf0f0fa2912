package domain

import "time"

const (
	CaseStatusNew        = "new"
	CaseStatusInProgress = "in_progress"
	CaseStatusOnHold     = "on_hold"
	CaseStatusResolved   = "resolved"
	CaseStatusClosed     = "closed"

	CaseTypeProblem        = "problem"
	CaseTypeQuestion       = "question"
	CaseTypeFeatureRequest = "feature_request"
	CaseTypeInstallation   = "installation"
	CaseTypeMaintenance    = "maintenance"

	OriginPhone  = "phone"
	OriginEmail  = "email"
	OriginWeb    = "web"
	OriginVisit  = "visit"
	OriginDealer = "dealer"
)

var (
	CaseStatuses   = []string{CaseStatusNew, CaseStatusInProgress, CaseStatusOnHold, CaseStatusResolved, CaseStatusClosed}
	CaseTypes      = []string{CaseTypeProblem, CaseTypeQuestion, CaseTypeFeatureRequest, CaseTypeInstallation, CaseTypeMaintenance}
	CaseOrigins    = []string{OriginPhone, OriginEmail, OriginWeb, OriginVisit}
	CasePriorities = []string{PriorityMedium, PriorityLow, PriorityHigh, PriorityCritical}
)

type Case struct {
	Base
	Ownership
	Number      string     `json:"number" db:"number"`
	AccountID   string     `json:"account_id" db:"account_id"`
	ContactID   *string    `json:"contact_id" db:"contact_id"`
	ProductID   *string    `json:"product_id" db:"product_id"`
	Subject     string     `json:"subject" db:"subject"`
	Description string     `json:"description" db:"description"`
	Type        string     `json:"type" db:"type"`
	Priority    string     `json:"priority" db:"priority"`
	Status      string     `json:"status" db:"status"`
	Origin      string     `json:"origin" db:"origin"`
	AssignedTo  *int       `json:"assigned_to" db:"assigned_to"`
	SolutionID  *string    `json:"solution_id" db:"solution_id"`
	ResolvedAt  *time.Time `json:"resolved_at" db:"resolved_at"`
}

func (c *Case) ReferencePrefix() string {
	return "CS"
}

func (c *Case) Reference() string {
	return c.Number
}

func (c *Case) SetReference(ref string) {
	c.Number = ref
}

func (c *Case) Validate() error {
	trimAll(&c.AccountID, &c.Subject)

	v := &validator{}
	v.required("account_id", c.AccountID)
	v.required("subject", c.Subject)
	v.oneOf("status", &c.Status, CaseStatuses)
	v.oneOf("type", &c.Type, CaseTypes)
	v.oneOf("priority", &c.Priority, CasePriorities)
	v.oneOf("origin", &c.Origin, CaseOrigins)
	return v.err()
}

func (c *Case) IsOpen() bool {
	return c.Status != CaseStatusResolved && c.Status != CaseStatusClosed
}

// ResolveCaseRequest vincula uma solução existente ou cria uma nova
type ResolveCaseRequest struct {
	SolutionID *string   `json:"solution_id"`
	Solution   *Solution `json:"solution"`
}

type CaseResolution struct {
	Case     *Case     `json:"case"`
	Solution *Solution `json:"solution"`
}
