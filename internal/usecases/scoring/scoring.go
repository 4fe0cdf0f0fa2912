// Package scoring contém as regras determinísticas de score de leads e de ações sugeridas
package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/utils"
)

const (
	MinScore = 0
	MaxScore = 100

	HotThreshold  = 70
	WarmThreshold = 40

	day = 24 * time.Hour
)

type keywordGroup struct {
	name     string
	points   int
	keywords []string
}

// Ordenados do maior para o menor peso; apenas o primeiro grupo encontrado pontua
var companyKeywords = []keywordGroup{
	{name: "education", points: 25, keywords: []string{"university", "college", "institute", "school"}},
	{name: "healthcare_research", points: 20, keywords: []string{"hospital", "research", "laboratory", "pharma"}},
	{name: "government", points: 15, keywords: []string{"government", "ministry", "municipal"}},
}

var statusPoints = map[string]int{
	domain.LeadStatusQualified:   20,
	domain.LeadStatusContacted:   10,
	domain.LeadStatusNew:         5,
	domain.LeadStatusUnqualified: -15,
	domain.LeadStatusLost:        -25,
}

var sourcePoints = map[string]int{
	domain.LeadSourceReferral:      15,
	domain.LeadSourceTradeShow:     10,
	domain.LeadSourceWebsite:       10,
	domain.LeadSourceEmailCampaign: 5,
	domain.LeadSourceAdvertisement: 5,
}

var priorityPoints = map[string]int{
	domain.PriorityHigh: 10,
	domain.PriorityLow:  -5,
}

var priorityRank = map[string]int{
	domain.PriorityCritical: 0,
	domain.PriorityHigh:     1,
	domain.PriorityMedium:   2,
	domain.PriorityLow:      3,
}

// ScoreLead calcula o score do lead e o detalhamento de cada regra aplicada
func ScoreLead(lead *domain.Lead, now time.Time) domain.LeadScore {
	var breakdown []domain.ScoreRule
	add := func(rule string, points int) {
		if points != 0 {
			breakdown = append(breakdown, domain.ScoreRule{Rule: rule, Points: points})
		}
	}

	company := strings.ToLower(lead.Company)
	for _, group := range companyKeywords {
		if keyword, ok := matchKeyword(company, group.keywords); ok {
			add("company:"+keyword, group.points)
			break
		}
	}

	add("status:"+lead.Status, statusPoints[lead.Status])
	add("source:"+lead.Source, sourcePoints[lead.Source])

	switch {
	case lead.Budget >= 1_000_000:
		add("budget:>=1000000", 20)
	case lead.Budget >= 500_000:
		add("budget:>=500000", 15)
	case lead.Budget >= 100_000:
		add("budget:>=100000", 10)
	case lead.Budget > 0:
		add("budget:>0", 5)
	}

	add("priority:"+lead.Priority, priorityPoints[lead.Priority])

	if lead.Email != "" {
		add("contact:email", 5)
	}
	if lead.Phone != "" {
		add("contact:phone", 5)
	}
	if lead.Title != "" {
		add("contact:title", 3)
	}

	switch days, contacted := daysSince(lead.LastContactedAt, now); {
	case !contacted:
		add("recency:never_contacted", -5)
	case days <= 7:
		add("recency:<=7d", 10)
	case days > 30:
		add("recency:>30d", -10)
	}

	total := 0
	for _, rule := range breakdown {
		total += rule.Points
	}
	total = clamp(total)

	if breakdown == nil {
		breakdown = []domain.ScoreRule{}
	}

	return domain.LeadScore{
		LeadID:    lead.ID,
		Score:     total,
		Grade:     Grade(total),
		Breakdown: breakdown,
	}
}

// Apply grava score e grade no próprio lead
func Apply(lead *domain.Lead, now time.Time) domain.LeadScore {
	score := ScoreLead(lead, now)
	lead.Score = score.Score
	lead.Grade = score.Grade
	return score
}

func Grade(score int) string {
	switch {
	case score >= HotThreshold:
		return domain.GradeHot
	case score >= WarmThreshold:
		return domain.GradeWarm
	default:
		return domain.GradeCold
	}
}

// LeadActions sugere os próximos passos para um lead; leads encerrados não geram ações
func LeadActions(lead *domain.Lead, score domain.LeadScore, now time.Time) []domain.SuggestedAction {
	actions := []domain.SuggestedAction{}
	if lead.IsClosed() {
		return actions
	}

	today := utils.StartOfDay(now)
	name := lead.FullName()
	if name == "" {
		name = lead.Company
	}

	action := func(actionType, priority, title, reason string, due time.Time) {
		actions = append(actions, domain.SuggestedAction{
			Kind:     domain.KindLead,
			EntityID: lead.ID,
			Title:    title,
			Type:     actionType,
			Priority: priority,
			Reason:   reason,
			DueDate:  due,
		})
	}

	days, contacted := daysSince(lead.LastContactedAt, now)

	if score.Grade == domain.GradeHot && (!contacted || days > 2) {
		action(domain.ActionCall, domain.PriorityHigh, "Call "+name,
			fmt.Sprintf("hot lead with score %d", score.Score), today)
	}

	if !contacted {
		action(domain.ActionInitialOutreach, domain.PriorityMedium, "Reach out to "+name,
			"lead has never been contacted", today.Add(day))
	} else if days > 14 {
		action(domain.ActionFollowUp, domain.PriorityMedium, "Follow up with "+name,
			fmt.Sprintf("last contact was %d days ago", days), today.Add(2*day))
	}

	if lead.Status == domain.LeadStatusQualified && lead.Budget > 0 {
		action(domain.ActionSendQuotation, domain.PriorityHigh, "Send quotation to "+name,
			fmt.Sprintf("qualified lead with budget %.2f", lead.Budget), today.Add(day))
	}

	if lead.Email == "" {
		action(domain.ActionCollectEmail, domain.PriorityLow, "Collect email for "+name,
			"lead has no email address", today.Add(7*day))
	}

	return actions
}

// CaseActions sugere escalonamento e acompanhamento para casos abertos há muito tempo
func CaseActions(c *domain.Case, now time.Time) []domain.SuggestedAction {
	actions := []domain.SuggestedAction{}
	if !c.IsOpen() {
		return actions
	}

	today := utils.StartOfDay(now)
	age := int(now.Sub(c.CreatedAt) / day)

	urgent := c.Priority == domain.PriorityCritical || c.Priority == domain.PriorityHigh
	if urgent && age > 2 {
		actions = append(actions, domain.SuggestedAction{
			Kind:     domain.KindCase,
			EntityID: c.ID,
			Title:    fmt.Sprintf("Escalate case %s", c.Number),
			Type:     domain.ActionEscalateCase,
			Priority: domain.PriorityCritical,
			Reason:   fmt.Sprintf("%s priority case open for %d days", c.Priority, age),
			DueDate:  today,
		})
	}

	if age > 7 {
		actions = append(actions, domain.SuggestedAction{
			Kind:     domain.KindCase,
			EntityID: c.ID,
			Title:    fmt.Sprintf("Update customer on case %s", c.Number),
			Type:     domain.ActionCustomerFollowUp,
			Priority: domain.PriorityMedium,
			Reason:   fmt.Sprintf("case open for %d days", age),
			DueDate:  today.Add(day),
		})
	}

	return actions
}

// AMCActions sugere lembrete de renovação dentro da janela e expiração de contratos vencidos
func AMCActions(contract *domain.AMCContract, now time.Time, reminderDays int) []domain.SuggestedAction {
	actions := []domain.SuggestedAction{}
	if contract.Status != domain.AMCStatusActive || contract.EndDate == nil {
		return actions
	}

	today := utils.StartOfDay(now)
	remaining := contract.DaysUntilExpiry(now)

	switch {
	case remaining < 0:
		actions = append(actions, domain.SuggestedAction{
			Kind:     domain.KindAMCContract,
			EntityID: contract.ID,
			Title:    fmt.Sprintf("Mark contract %s as expired", contract.ContractNumber),
			Type:     domain.ActionMarkExpired,
			Priority: domain.PriorityHigh,
			Reason:   fmt.Sprintf("contract ended %d days ago", -remaining),
			DueDate:  today,
		})
	case remaining <= reminderDays:
		priority := domain.PriorityMedium
		if remaining <= 7 {
			priority = domain.PriorityHigh
		}
		actions = append(actions, domain.SuggestedAction{
			Kind:     domain.KindAMCContract,
			EntityID: contract.ID,
			Title:    fmt.Sprintf("Renew contract %s", contract.ContractNumber),
			Type:     domain.ActionRenewalReminder,
			Priority: priority,
			Reason:   fmt.Sprintf("contract ends in %d days", remaining),
			DueDate:  today,
		})
	}

	return actions
}

// SortActions ordena por prioridade e depois pela data limite
func SortActions(actions []domain.SuggestedAction) {
	sort.SliceStable(actions, func(i, j int) bool {
		ri, rj := rank(actions[i].Priority), rank(actions[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return actions[i].DueDate.Before(actions[j].DueDate)
	})
}

func rank(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return len(priorityRank)
}

func matchKeyword(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}

func daysSince(t *time.Time, now time.Time) (int, bool) {
	if t == nil || t.IsZero() {
		return 0, false
	}
	return int(utils.StartOfDay(now).Sub(utils.StartOfDay(*t)) / day), true
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
