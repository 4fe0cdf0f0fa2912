package importing

import (
	"regexp"
	"strings"

	"github.com/vfg2006/crm-api/internal/domain"
)

var nonWord = regexp.MustCompile(`[^a-z0-9_]+`)

// Apelidos comuns de cabeçalho; o primeiro candidato aceito pelo tipo é usado
var headerAliases = map[string][]string{
	"email_address":    {"email"},
	"e_mail":           {"email"},
	"mail":             {"email"},
	"mobile":           {"phone"},
	"mobile_number":    {"phone"},
	"phone_number":     {"phone"},
	"contact_number":   {"phone"},
	"telephone":        {"phone"},
	"firstname":        {"first_name"},
	"first":            {"first_name"},
	"lastname":         {"last_name"},
	"surname":          {"last_name"},
	"last":             {"last_name"},
	"company_name":     {"company", "name"},
	"organization":     {"company", "name"},
	"organisation":     {"company", "name"},
	"institution":      {"company", "name"},
	"account_name":     {"name", "company"},
	"job_title":        {"title", "designation"},
	"position":         {"designation", "title"},
	"lead_source":      {"source"},
	"lead_status":      {"status"},
	"estimated_budget": {"budget"},
	"product_code":     {"code"},
	"sku":              {"code"},
	"item_code":        {"code"},
	"product_name":     {"name"},
	"price":            {"unit_price"},
	"rate":             {"unit_price"},
	"mrp":              {"unit_price"},
	"gst":              {"tax_rate"},
	"tax":              {"tax_rate"},
	"tax_percent":      {"tax_rate"},
	"uom":              {"unit"},
	"revenue":          {"annual_revenue"},
	"last_contacted":   {"last_contacted_at"},
	"last_contact":     {"last_contacted_at"},
	"value":            {"contract_value", "amount", "budget"},
	"frequency":        {"billing_frequency"},
	"start":            {"start_date"},
	"end":              {"end_date"},
	"steps":            {"resolution_steps"},
}

// NormalizeHeader converte "Email Address" em "email_address"
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.NewReplacer(" ", "_", "-", "_", ".", "_", "/", "_").Replace(h)
	h = nonWord.ReplaceAllString(h, "")
	for strings.Contains(h, "__") {
		h = strings.ReplaceAll(h, "__", "_")
	}
	return strings.Trim(h, "_")
}

// MapHeaders devolve, para cada posição do cabeçalho, a coluna de importação correspondente ou "" quando desconhecida
func MapHeaders(headers []string, schema domain.Schema) []string {
	allowed := make(map[string]bool, len(schema.ImportColumns))
	for _, column := range schema.ImportColumns {
		allowed[column] = true
	}

	used := map[string]bool{}
	mapped := make([]string, len(headers))
	for i, header := range headers {
		column := resolve(NormalizeHeader(header), allowed)
		if column == "" || used[column] {
			continue
		}
		used[column] = true
		mapped[i] = column
	}
	return mapped
}

func resolve(header string, allowed map[string]bool) string {
	if allowed[header] {
		return header
	}
	for _, candidate := range headerAliases[header] {
		if allowed[candidate] {
			return candidate
		}
	}
	return ""
}
