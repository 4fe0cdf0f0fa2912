package domain

import "strings"

const (
	AccountTypeCustomer = "customer"
	AccountTypeProspect = "prospect"
	AccountTypePartner  = "partner"
	AccountTypeDealer   = "dealer"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	AccountTypes   = []string{AccountTypeCustomer, AccountTypeProspect, AccountTypePartner, AccountTypeDealer}
	ActiveStatuses = []string{StatusActive, StatusInactive}
)

type Account struct {
	Base
	Ownership
	Name          string  `json:"name" db:"name"`
	Industry      string  `json:"industry" db:"industry"`
	Type          string  `json:"type" db:"type"`
	Website       string  `json:"website" db:"website"`
	Phone         string  `json:"phone" db:"phone"`
	Email         string  `json:"email" db:"email"`
	Address       string  `json:"address" db:"address"`
	City          string  `json:"city" db:"city"`
	State         string  `json:"state" db:"state"`
	Country       string  `json:"country" db:"country"`
	AnnualRevenue float64 `json:"annual_revenue" db:"annual_revenue"`
	Employees     int     `json:"employees" db:"employees"`
	Status        string  `json:"status" db:"status"`
}

func (a *Account) Validate() error {
	trimAll(&a.Name, &a.Email, &a.Phone, &a.Website)
	a.Email = strings.ToLower(a.Email)

	v := &validator{}
	v.required("name", a.Name)
	v.email("email", a.Email)
	v.oneOf("type", &a.Type, AccountTypes)
	v.oneOf("status", &a.Status, ActiveStatuses)
	v.nonNegative("annual_revenue", a.AnnualRevenue)
	v.nonNegative("employees", float64(a.Employees))
	return v.err()
}
