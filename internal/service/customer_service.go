package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

type CustomerService struct {
	customers CustomerStore
}

func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

type CustomerInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

func (s *CustomerService) List(ctx context.Context, query string) ([]model.Customer, error) {
	return s.customers.List(ctx, strings.TrimSpace(query))
}

func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*model.Customer, error) {
	input = normalizeCustomer(input)
	if err := validateCustomer(input); err != nil {
		return nil, err
	}
	customer := &model.Customer{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, input CustomerInput) (*model.Customer, error) {
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	input = normalizeCustomer(input)
	if err := validateCustomer(input); err != nil {
		return nil, err
	}
	customer.FirstName = input.FirstName
	customer.LastName = input.LastName
	customer.PhoneNumber = input.PhoneNumber
	customer.Email = input.Email
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, translateNotFound(err)
	}
	return customer, nil
}

// Delete fails with ErrConflict while contracts still reference the customer.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrConflict
		}
		return translateNotFound(err)
	}
	return nil
}

func normalizeCustomer(input CustomerInput) CustomerInput {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Email = strings.TrimSpace(input.Email)
	return input
}

func validateCustomer(input CustomerInput) error {
	var v violations
	v.required("first_name", input.FirstName, 50)
	v.required("last_name", input.LastName, 50)
	v.digits("phone_number", input.PhoneNumber, 16)
	v.email("email", input.Email, 128)
	return v.err()
}
