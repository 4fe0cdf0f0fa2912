package contracts

import (
	"fmt"
	"math"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/utils"
)

const DefaultInstallmentFormula = "contract_value / installments"

// Meses cobertos por parcela em cada frequência; one_time é tratado à parte
var periodMonths = map[string]int{
	domain.BillingMonthly:    1,
	domain.BillingQuarterly:  3,
	domain.BillingHalfYearly: 6,
	domain.BillingYearly:     12,
}

// Planner calcula parcelas de contratos AMC com uma fórmula configurável
type Planner struct {
	formula *govaluate.EvaluableExpression
}

// NewPlanner valida a fórmula; as variáveis disponíveis são contract_value, installments e months
func NewPlanner(formula string) (*Planner, error) {
	if formula == "" {
		formula = DefaultInstallmentFormula
	}

	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return nil, fmt.Errorf("fórmula de parcelas inválida %q: %w", formula, err)
	}

	return &Planner{formula: expr}, nil
}

// ContractMonths conta os meses inteiros do contrato, considerando a data final inclusiva
func ContractMonths(start, end time.Time) int {
	endExclusive := end.AddDate(0, 0, 1)
	months := (endExclusive.Year()-start.Year())*12 + int(endExclusive.Month()-start.Month())
	if endExclusive.Day() < start.Day() {
		months--
	}
	if months < 1 {
		months = 1
	}
	return months
}

// InstallmentCount aplica a proporção de parcelas por ano ao período do contrato
func InstallmentCount(frequency string, months int) int {
	period, ok := periodMonths[frequency]
	if !ok {
		return 1
	}
	return int(math.Ceil(float64(months) / float64(period)))
}

func (p *Planner) Schedule(contract *domain.AMCContract) (*domain.AMCSchedule, error) {
	if contract.StartDate == nil || contract.EndDate == nil {
		return nil, fmt.Errorf("contrato %s sem período definido", contract.ID)
	}

	months := ContractMonths(*contract.StartDate, *contract.EndDate)
	count := InstallmentCount(contract.BillingFrequency, months)

	result, err := p.formula.Evaluate(map[string]any{
		"contract_value": contract.ContractValue,
		"installments":   float64(count),
		"months":         float64(months),
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao avaliar fórmula de parcelas: %w", err)
	}

	amount, ok := result.(float64)
	if !ok || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("fórmula de parcelas retornou valor inválido: %v", result)
	}

	total := utils.RoundWithTwoDecimalPlace(amount * float64(count))
	installment := utils.RoundWithTwoDecimalPlace(amount)
	period := periodMonths[contract.BillingFrequency]

	schedule := &domain.AMCSchedule{
		ContractID:   contract.ID,
		Frequency:    contract.BillingFrequency,
		Total:        total,
		Installments: make([]domain.Installment, 0, count),
	}

	var allocated float64
	for i := 0; i < count; i++ {
		value := installment
		// o resíduo do arredondamento fica na última parcela
		if i == count-1 {
			value = utils.RoundWithTwoDecimalPlace(total - allocated)
		}
		allocated += value

		schedule.Installments = append(schedule.Installments, domain.Installment{
			Number:  i + 1,
			DueDate: contract.StartDate.AddDate(0, i*period, 0),
			Amount:  value,
		})
	}

	return schedule, nil
}
