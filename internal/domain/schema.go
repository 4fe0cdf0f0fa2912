package domain

import "strings"

// Kind identifica um tipo de registro do CRM, no mesmo formato usado nas rotas
type Kind string

const (
	KindLead        Kind = "leads"
	KindAccount     Kind = "accounts"
	KindContact     Kind = "contacts"
	KindDeal        Kind = "deals"
	KindProduct     Kind = "products"
	KindQuotation   Kind = "quotations"
	KindCase        Kind = "cases"
	KindSolution    Kind = "solutions"
	KindComplaint   Kind = "complaints"
	KindAMCContract Kind = "amc-contracts"
	KindDealer      Kind = "dealers"
	KindProject     Kind = "projects"
)

// Schema descreve como um tipo de registro é persistido, filtrado e importado
type Schema struct {
	Kind       Kind
	Table      string
	Columns    []string
	Searchable []string
	Filterable []string
	Sortable   []string
	// ImportColumns vazio indica que o tipo não aceita importação por arquivo
	ImportColumns []string
	// Example é usado na linha de exemplo do template CSV
	Example map[string]string
}

func (s Schema) Importable() bool {
	return len(s.ImportColumns) > 0
}

func (s Schema) HasColumn(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// CanFilter aceita as colunas de Filterable e também owner_id nos tipos que têm dono
func (s Schema) CanFilter(column string) bool {
	if column == "owner_id" {
		return s.HasColumn(column)
	}
	for _, c := range s.Filterable {
		if c == column {
			return true
		}
	}
	return false
}

var baseColumns = []string{"id", "created_at", "updated_at"}

func columns(cols ...string) []string {
	return append(append([]string{}, baseColumns...), cols...)
}

var schemas = map[Kind]Schema{
	KindLead: {
		Kind:  KindLead,
		Table: "leads",
		Columns: columns("owner_id", "first_name", "last_name", "company", "title", "email", "phone", "source",
			"status", "industry", "city", "budget", "priority", "notes", "tags", "score", "grade",
			"last_contacted_at", "converted_account_id"),
		Searchable:    []string{"first_name", "last_name", "company", "email", "phone", "city"},
		Filterable:    []string{"status", "source", "priority", "grade", "industry", "city"},
		Sortable:      []string{"created_at", "updated_at", "score", "company", "first_name", "budget", "last_contacted_at"},
		ImportColumns: []string{"first_name", "last_name", "company", "title", "email", "phone", "source", "status", "industry", "city", "budget", "priority", "notes", "tags", "last_contacted_at"},
		Example: map[string]string{
			"first_name": "Asha", "last_name": "Rao", "company": "State University", "email": "asha.rao@example.edu",
			"phone": "+91 98450 00000", "source": "referral", "status": "new", "budget": "250000", "priority": "high",
			"tags": "lab;microscopy", "last_contacted_at": "2024-01-15",
		},
	},
	KindAccount: {
		Kind:  KindAccount,
		Table: "accounts",
		Columns: columns("owner_id", "name", "industry", "type", "website", "phone", "email", "address", "city",
			"state", "country", "annual_revenue", "employees", "status"),
		Searchable:    []string{"name", "email", "phone", "city", "industry"},
		Filterable:    []string{"type", "status", "industry", "city", "state", "country"},
		Sortable:      []string{"created_at", "updated_at", "name", "annual_revenue"},
		ImportColumns: []string{"name", "industry", "type", "website", "phone", "email", "address", "city", "state", "country", "annual_revenue", "employees", "status"},
		Example: map[string]string{
			"name": "City Hospital", "industry": "healthcare", "type": "customer", "city": "Pune", "country": "India",
		},
	},
	KindContact: {
		Kind:          KindContact,
		Table:         "contacts",
		Columns:       columns("account_id", "first_name", "last_name", "email", "phone", "designation", "department", "is_primary"),
		Searchable:    []string{"first_name", "last_name", "email", "phone"},
		Filterable:    []string{"account_id", "department", "is_primary"},
		Sortable:      []string{"created_at", "updated_at", "first_name", "last_name"},
		ImportColumns: []string{"account_id", "first_name", "last_name", "email", "phone", "designation", "department", "is_primary"},
		Example: map[string]string{
			"account_id": "<account id>", "first_name": "Vikram", "last_name": "Singh", "email": "vikram@example.com", "is_primary": "true",
		},
	},
	KindDeal: {
		Kind:  KindDeal,
		Table: "deals",
		Columns: columns("owner_id", "account_id", "contact_id", "lead_id", "name", "stage", "amount", "probability",
			"expected_close_date", "description"),
		Searchable:    []string{"name", "description"},
		Filterable:    []string{"stage", "account_id"},
		Sortable:      []string{"created_at", "updated_at", "amount", "expected_close_date", "probability"},
		ImportColumns: []string{"account_id", "name", "stage", "amount", "probability", "expected_close_date", "description"},
		Example: map[string]string{
			"account_id": "<account id>", "name": "Spectrometer upgrade", "stage": "proposal", "amount": "450000", "probability": "60",
			"expected_close_date": "2024-06-30",
		},
	},
	KindProduct: {
		Kind:          KindProduct,
		Table:         "products",
		Columns:       columns("code", "name", "category", "description", "unit", "unit_price", "tax_rate", "active"),
		Searchable:    []string{"code", "name", "category"},
		Filterable:    []string{"category", "active"},
		Sortable:      []string{"created_at", "updated_at", "code", "name", "unit_price"},
		ImportColumns: []string{"code", "name", "category", "description", "unit", "unit_price", "tax_rate", "active"},
		Example: map[string]string{
			"code": "MIC-100", "name": "Compound Microscope", "category": "microscopy", "unit": "unit", "unit_price": "85000",
			"tax_rate": "18", "active": "true",
		},
	},
	KindQuotation: {
		Kind:  KindQuotation,
		Table: "quotations",
		Columns: columns("owner_id", "number", "account_id", "contact_id", "deal_id", "status", "valid_until", "items",
			"subtotal", "discount_total", "tax_total", "grand_total", "amount_in_words", "notes"),
		Searchable: []string{"number", "notes"},
		Filterable: []string{"status", "account_id", "deal_id"},
		Sortable:   []string{"created_at", "updated_at", "grand_total", "valid_until", "number"},
	},
	KindCase: {
		Kind:  KindCase,
		Table: "cases",
		Columns: columns("owner_id", "number", "account_id", "contact_id", "product_id", "subject", "description", "type",
			"priority", "status", "origin", "assigned_to", "solution_id", "resolved_at"),
		Searchable:    []string{"number", "subject", "description"},
		Filterable:    []string{"status", "priority", "type", "origin", "account_id"},
		Sortable:      []string{"created_at", "updated_at", "priority", "status"},
		ImportColumns: []string{"account_id", "subject", "description", "type", "priority", "status", "origin"},
		Example: map[string]string{
			"account_id": "<account id>", "subject": "Centrifuge not starting", "type": "problem", "priority": "high", "origin": "phone",
		},
	},
	KindSolution: {
		Kind:          KindSolution,
		Table:         "solutions",
		Columns:       columns("case_id", "title", "description", "resolution_steps", "category", "status"),
		Searchable:    []string{"title", "description", "resolution_steps"},
		Filterable:    []string{"status", "category", "case_id"},
		Sortable:      []string{"created_at", "updated_at", "title"},
		ImportColumns: []string{"title", "description", "resolution_steps", "category", "status"},
		Example: map[string]string{
			"title": "Reset centrifuge lid sensor", "resolution_steps": "Power off; reseat sensor cable", "status": "published",
		},
	},
	KindComplaint: {
		Kind:  KindComplaint,
		Table: "complaints",
		Columns: columns("owner_id", "number", "account_id", "contact_id", "product_id", "subject", "description",
			"severity", "status", "channel", "resolution", "escalated_at", "resolved_at"),
		Searchable:    []string{"number", "subject", "description"},
		Filterable:    []string{"status", "severity", "channel", "account_id"},
		Sortable:      []string{"created_at", "updated_at", "severity", "status"},
		ImportColumns: []string{"account_id", "product_id", "subject", "description", "severity", "status", "channel"},
		Example: map[string]string{
			"account_id": "<account id>", "subject": "Late delivery", "severity": "medium", "channel": "email",
		},
	},
	KindAMCContract: {
		Kind:  KindAMCContract,
		Table: "amc_contracts",
		Columns: columns("owner_id", "contract_number", "account_id", "product_id", "start_date", "end_date",
			"contract_value", "billing_frequency", "visits_per_year", "status", "renewal_reminder_sent",
			"renewed_from_id", "notes"),
		Searchable:    []string{"contract_number", "notes"},
		Filterable:    []string{"status", "billing_frequency", "account_id"},
		Sortable:      []string{"created_at", "updated_at", "end_date", "start_date", "contract_value"},
		ImportColumns: []string{"contract_number", "account_id", "product_id", "start_date", "end_date", "contract_value", "billing_frequency", "visits_per_year", "status", "notes"},
		Example: map[string]string{
			"contract_number": "AMC-2024-001", "account_id": "<account id>", "start_date": "2024-04-01", "end_date": "2025-03-31",
			"contract_value": "120000", "billing_frequency": "quarterly", "visits_per_year": "4",
		},
	},
	KindDealer: {
		Kind:  KindDealer,
		Table: "dealers",
		Columns: columns("name", "code", "contact_person", "email", "phone", "city", "state", "territory",
			"commission_rate", "status"),
		Searchable:    []string{"name", "code", "contact_person", "email", "city"},
		Filterable:    []string{"status", "territory", "state", "city"},
		Sortable:      []string{"created_at", "updated_at", "name", "commission_rate"},
		ImportColumns: []string{"name", "code", "contact_person", "email", "phone", "city", "state", "territory", "commission_rate", "status"},
		Example: map[string]string{
			"name": "Deccan Scientific", "code": "DLR-07", "contact_person": "Meera Iyer", "territory": "south", "commission_rate": "7.5",
		},
	},
	KindProject: {
		Kind:          KindProject,
		Table:         "projects",
		Columns:       columns("owner_id", "name", "account_id", "dealer_id", "status", "start_date", "end_date", "budget", "description"),
		Searchable:    []string{"name", "description"},
		Filterable:    []string{"status", "account_id", "dealer_id"},
		Sortable:      []string{"created_at", "updated_at", "name", "start_date", "end_date", "budget"},
		ImportColumns: []string{"name", "account_id", "dealer_id", "status", "start_date", "end_date", "budget", "description"},
		Example: map[string]string{
			"name": "Lab setup phase 1", "status": "planning", "start_date": "2024-05-01", "budget": "1500000",
		},
	},
}

// SchemaFor aceita o nome da rota ("amc-contracts") ou da tabela ("amc_contracts")
func SchemaFor(kind Kind) (Schema, bool) {
	normalized := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(kind))), "_", "-"))
	s, ok := schemas[normalized]
	return s, ok
}

func MustSchema(kind Kind) Schema {
	s, ok := SchemaFor(kind)
	if !ok {
		panic("unknown record kind: " + string(kind))
	}
	return s
}

// Kinds retorna os tipos em ordem estável
func Kinds() []Kind {
	return []Kind{
		KindLead, KindAccount, KindContact, KindDeal, KindProduct, KindQuotation,
		KindCase, KindSolution, KindComplaint, KindAMCContract, KindDealer, KindProject,
	}
}
