package domain

import "strings"

type Contact struct {
	Base
	AccountID   string `json:"account_id" db:"account_id"`
	FirstName   string `json:"first_name" db:"first_name"`
	LastName    string `json:"last_name" db:"last_name"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	Designation string `json:"designation" db:"designation"`
	Department  string `json:"department" db:"department"`
	IsPrimary   bool   `json:"is_primary" db:"is_primary"`
}

func (c *Contact) Validate() error {
	trimAll(&c.AccountID, &c.FirstName, &c.LastName, &c.Email, &c.Phone)
	c.Email = strings.ToLower(c.Email)

	v := &validator{}
	v.required("account_id", c.AccountID)
	v.required("first_name", c.FirstName)
	v.email("email", c.Email)
	return v.err()
}
