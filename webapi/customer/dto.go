package customer

import (
	domaincustomer "github.com/amirasaad/ledger/pkg/domain/customer"
)

//revive:disable

// CreateCustomerRequest represents the request body for registering a customer.
type CreateCustomerRequest struct {
	ID        string `json:"id" validate:"required,max=32" example:"12345678900"`
	Name      string `json:"name" validate:"required,max=120" example:"Ana Souza"`
	BirthDate string `json:"birth_date" validate:"omitempty,max=32" example:"15-03-1990"`
	Address   string `json:"address" validate:"omitempty,max=255" example:"Rua A, 1"`
}

// CustomerDTO is the API response representation of a customer.
type CustomerDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date,omitempty"`
	BirthDateRaw string `json:"birth_date_raw,omitempty"`
	Address      string `json:"address"`
	Accounts     []int  `json:"accounts"`
}

//revive:enable

// ToCustomerDTO maps a domain customer to its API view.
func ToCustomerDTO(c *domaincustomer.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:       c.ID,
		Name:     c.Name,
		Address:  c.Address,
		Accounts: []int{},
	}
	if c.HasValidBirthDate() {
		dto.BirthDate = c.BirthDate.Format(domaincustomer.BirthDateLayouts[0])
	} else {
		dto.BirthDateRaw = c.BirthDateRaw
	}
	for _, a := range c.Accounts() {
		dto.Accounts = append(dto.Accounts, a.Number)
	}
	return dto
}
