package domain

import "time"

type Dashboard struct {
	Counts               map[Kind]int       `json:"counts"`
	LeadsByStatus        map[string]int     `json:"leads_by_status"`
	LeadsByGrade         map[string]int     `json:"leads_by_grade"`
	OpenCasesByPriority  map[string]int     `json:"open_cases_by_priority"`
	OpenComplaints       int                `json:"open_complaints"`
	PipelineByStage      map[string]float64 `json:"pipeline_by_stage"`
	ExpiringAMCContracts []*AMCContract     `json:"expiring_amc_contracts"`
	GeneratedAt          time.Time          `json:"generated_at"`
}
