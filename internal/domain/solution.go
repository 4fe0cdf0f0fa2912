package domain

const (
	SolutionStatusDraft     = "draft"
	SolutionStatusPublished = "published"
	SolutionStatusArchived  = "archived"
)

var SolutionStatuses = []string{SolutionStatusDraft, SolutionStatusPublished, SolutionStatusArchived}

type Solution struct {
	Base
	CaseID          *string `json:"case_id" db:"case_id"`
	Title           string  `json:"title" db:"title"`
	Description     string  `json:"description" db:"description"`
	ResolutionSteps string  `json:"resolution_steps" db:"resolution_steps"`
	Category        string  `json:"category" db:"category"`
	Status          string  `json:"status" db:"status"`
}

func (s *Solution) Validate() error {
	trimAll(&s.Title)

	v := &validator{}
	v.required("title", s.Title)
	v.oneOf("status", &s.Status, SolutionStatuses)
	return v.err()
}
