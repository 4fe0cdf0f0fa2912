package domain

import "strings"

type Product struct {
	Base
	Code        string  `json:"code" db:"code"`
	Name        string  `json:"name" db:"name"`
	Category    string  `json:"category" db:"category"`
	Description string  `json:"description" db:"description"`
	Unit        string  `json:"unit" db:"unit"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	TaxRate     float64 `json:"tax_rate" db:"tax_rate"`
	Active      bool    `json:"active" db:"active"`
}

func (p *Product) Validate() error {
	trimAll(&p.Code, &p.Name, &p.Unit)
	p.Code = strings.ToUpper(p.Code)
	if p.Unit == "" {
		p.Unit = "unit"
	}

	v := &validator{}
	v.required("code", p.Code)
	v.required("name", p.Name)
	v.nonNegative("unit_price", p.UnitPrice)
	v.between("tax_rate", p.TaxRate, 0, 100)
	return v.err()
}
