package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/config"
	"github.com/nurpe/employeehub/internal/model"
)

type ContractService struct {
	contracts    ContractStore
	customers    CustomerStore
	users        UserStore
	deadlineDays int
	now          func() time.Time
	log          zerolog.Logger
}

func NewContractService(
	contracts ContractStore,
	customers CustomerStore,
	users UserStore,
	cfg *config.Config,
	log zerolog.Logger,
) *ContractService {
	return &ContractService{
		contracts:    contracts,
		customers:    customers,
		users:        users,
		deadlineDays: cfg.Contracts.DefaultDeadlineDays,
		now:          time.Now,
		log:          log,
	}
}

type ContractInput struct {
	Name       string
	CustomerID uint
	UserID     uint
	Status     model.Status
}

// ListMine returns the caller's contracts, closest deadline first.
func (s *ContractService) ListMine(ctx context.Context, principal model.Principal, query string) ([]model.Contract, error) {
	contracts, err := s.contracts.List(ctx, principal.UserID, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	sortContracts(contracts)
	return contracts, nil
}

func (s *ContractService) ListAll(ctx context.Context, query string) ([]model.Contract, error) {
	contracts, err := s.contracts.List(ctx, 0, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	sortContracts(contracts)
	return contracts, nil
}

func (s *ContractService) Get(ctx context.Context, id uint) (*model.Contract, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return contract, nil
}

func (s *ContractService) Create(ctx context.Context, principal model.Principal, input ContractInput) (*model.Contract, error) {
	if input.UserID == 0 {
		input.UserID = principal.UserID
	}
	if input.Status == "" {
		input.Status = model.StatusInProgress
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	created := s.now()
	contract := &model.Contract{
		Name:       strings.TrimSpace(input.Name),
		UserID:     input.UserID,
		CustomerID: input.CustomerID,
		Status:     input.Status,
		CreatedAt:  created,
		Deadline:   model.DefaultDeadline(created, s.deadlineDays),
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}
	s.log.Info().Uint("contract_id", contract.ID).Uint("user_id", contract.UserID).Msg("contract created")
	return contract, nil
}

// Update changes name, owner, customer and status. The deadline stays as created.
func (s *ContractService) Update(ctx context.Context, id uint, input ContractInput) (*model.Contract, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if input.UserID == 0 {
		input.UserID = contract.UserID
	}
	if input.Status == "" {
		input.Status = contract.Status
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	contract.Name = strings.TrimSpace(input.Name)
	contract.UserID = input.UserID
	contract.CustomerID = input.CustomerID
	contract.Status = input.Status
	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, translateNotFound(err)
	}
	return contract, nil
}

// Delete refuses while the contract still owns subcontracts.
func (s *ContractService) Delete(ctx context.Context, id uint) error {
	if _, err := s.contracts.Get(ctx, id); err != nil {
		return translateNotFound(err)
	}
	count, err := s.contracts.CountSubContracts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrContractHasSubcontracts
	}
	if err := s.contracts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrContractHasSubcontracts
		}
		return translateNotFound(err)
	}
	s.log.Info().Uint("contract_id", id).Msg("contract deleted")
	return nil
}

func (s *ContractService) validate(ctx context.Context, input ContractInput) error {
	var v violations
	v.required("name", input.Name, 100)
	if !input.Status.Valid() {
		v.add("status", "select a valid choice")
	}
	if input.CustomerID == 0 {
		v.add("customer_id", "this field is required")
	} else if _, err := s.customers.Get(ctx, input.CustomerID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		v.add("customer_id", "customer does not exist")
	}
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		v.add("user_id", "user does not exist")
	}
	return v.err()
}

func sortContracts(contracts []model.Contract) {
	sort.SliceStable(contracts, func(i, j int) bool {
		return contracts[i].DaysLeft() < contracts[j].DaysLeft()
	})
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
