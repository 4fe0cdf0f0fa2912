package domain

import "time"

const (
	DealStageProspecting   = "prospecting"
	DealStageQualification = "qualification"
	DealStageProposal      = "proposal"
	DealStageNegotiation   = "negotiation"
	DealStageClosedWon     = "closed_won"
	DealStageClosedLost    = "closed_lost"
)

var DealStages = []string{DealStageProspecting, DealStageQualification, DealStageProposal, DealStageNegotiation, DealStageClosedWon, DealStageClosedLost}

type Deal struct {
	Base
	Ownership
	AccountID         string     `json:"account_id" db:"account_id"`
	ContactID         *string    `json:"contact_id" db:"contact_id"`
	LeadID            *string    `json:"lead_id" db:"lead_id"`
	Name              string     `json:"name" db:"name"`
	Stage             string     `json:"stage" db:"stage"`
	Amount            float64    `json:"amount" db:"amount"`
	Probability       int        `json:"probability" db:"probability"`
	ExpectedCloseDate *time.Time `json:"expected_close_date" db:"expected_close_date"`
	Description       string     `json:"description" db:"description"`
}

func (d *Deal) Validate() error {
	trimAll(&d.AccountID, &d.Name)

	v := &validator{}
	v.required("account_id", d.AccountID)
	v.required("name", d.Name)
	v.oneOf("stage", &d.Stage, DealStages)
	v.nonNegative("amount", d.Amount)
	v.between("probability", float64(d.Probability), 0, 100)
	return v.err()
}

func (d *Deal) IsOpen() bool {
	return d.Stage != DealStageClosedWon && d.Stage != DealStageClosedLost
}
