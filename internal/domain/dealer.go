package domain

import "strings"

type Dealer struct {
	Base
	Name           string  `json:"name" db:"name"`
	Code           string  `json:"code" db:"code"`
	ContactPerson  string  `json:"contact_person" db:"contact_person"`
	Email          string  `json:"email" db:"email"`
	Phone          string  `json:"phone" db:"phone"`
	City           string  `json:"city" db:"city"`
	State          string  `json:"state" db:"state"`
	Territory      string  `json:"territory" db:"territory"`
	CommissionRate float64 `json:"commission_rate" db:"commission_rate"`
	Status         string  `json:"status" db:"status"`
}

func (d *Dealer) Validate() error {
	trimAll(&d.Name, &d.Code, &d.Email)
	d.Email = strings.ToLower(d.Email)
	d.Code = strings.ToUpper(d.Code)

	v := &validator{}
	v.required("name", d.Name)
	v.email("email", d.Email)
	v.oneOf("status", &d.Status, ActiveStatuses)
	v.between("commission_rate", d.CommissionRate, 0, 100)
	return v.err()
}
