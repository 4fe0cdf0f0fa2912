package domain

import "time"

const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

var ProjectStatuses = []string{ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled}

type Project struct {
	Base
	Ownership
	Name        string     `json:"name" db:"name"`
	AccountID   *string    `json:"account_id" db:"account_id"`
	DealerID    *string    `json:"dealer_id" db:"dealer_id"`
	Status      string     `json:"status" db:"status"`
	StartDate   *time.Time `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date" db:"end_date"`
	Budget      float64    `json:"budget" db:"budget"`
	Description string     `json:"description" db:"description"`
}

func (p *Project) Validate() error {
	trimAll(&p.Name)

	v := &validator{}
	v.required("name", p.Name)
	v.oneOf("status", &p.Status, ProjectStatuses)
	v.dateOrder("end_date", p.StartDate, p.EndDate)
	v.nonNegative("budget", p.Budget)
	return v.err()
}
