package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/config"
	"github.com/nurpe/employeehub/internal/model"
)

const dashboardSubContracts = 5

type SubContractService struct {
	subs      SubContractStore
	contracts ContractStore
	users     UserStore
	attempts  int
	log       zerolog.Logger
}

func NewSubContractService(
	subs SubContractStore,
	contracts ContractStore,
	users UserStore,
	cfg *config.Config,
	log zerolog.Logger,
) *SubContractService {
	return &SubContractService{
		subs:      subs,
		contracts: contracts,
		users:     users,
		attempts:  cfg.Contracts.AllocateAttempts,
		log:       log,
	}
}

type SubContractInput struct {
	Name   string
	UserID uint
	Status model.Status
}

// Allocate creates a subcontract under contractID with the next free number.
// A lost race on the (contract, number) unique index is retried; when attempts run
// out the caller gets ErrConflict.
func (s *SubContractService) Allocate(ctx context.Context, principal model.Principal, contractID uint, input SubContractInput) (*model.SubContract, error) {
	if _, err := s.contracts.Get(ctx, contractID); err != nil {
		return nil, translateNotFound(err)
	}
	if input.UserID == 0 {
		input.UserID = principal.UserID
	}
	if input.Status == "" {
		input.Status = model.StatusInProgress
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.attempts; attempt++ {
		sub := &model.SubContract{
			Name:       strings.TrimSpace(input.Name),
			UserID:     input.UserID,
			ContractID: contractID,
			Status:     input.Status,
		}
		err := s.subs.Allocate(ctx, sub)
		switch {
		case err == nil:
			s.log.Info().
				Uint("contract_id", contractID).
				Int("subcontract_number", sub.Number).
				Msg("subcontract allocated")
			return sub, nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			s.log.Warn().
				Uint("contract_id", contractID).
				Int("attempt", attempt).
				Msg("subcontract number taken, retrying")
		default:
			return nil, err
		}
	}
	return nil, ErrConflict
}

// ListMine returns subcontracts assigned to the caller, closest deadline first.
func (s *SubContractService) ListMine(ctx context.Context, principal model.Principal, query string) ([]model.SubContract, error) {
	subs, err := s.subs.ListByAssignee(ctx, principal.UserID, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	sortSubContracts(subs)
	return subs, nil
}

// Upcoming returns the caller's first few subcontracts by deadline.
func (s *SubContractService) Upcoming(ctx context.Context, principal model.Principal) ([]model.SubContract, error) {
	subs, err := s.ListMine(ctx, principal, "")
	if err != nil {
		return nil, err
	}
	if len(subs) > dashboardSubContracts {
		subs = subs[:dashboardSubContracts]
	}
	return subs, nil
}

func (s *SubContractService) Get(ctx context.Context, contractID uint, number int) (*model.SubContract, error) {
	sub, err := s.subs.GetByNumber(ctx, contractID, number)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return sub, nil
}

func (s *SubContractService) Update(ctx context.Context, contractID uint, number int, input SubContractInput) (*model.SubContract, error) {
	sub, err := s.subs.GetByNumber(ctx, contractID, number)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if input.UserID == 0 {
		input.UserID = sub.UserID
	}
	if input.Status == "" {
		input.Status = sub.Status
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	sub.Name = strings.TrimSpace(input.Name)
	sub.UserID = input.UserID
	sub.Status = input.Status
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, translateNotFound(err)
	}
	return sub, nil
}

func (s *SubContractService) Delete(ctx context.Context, contractID uint, number int) error {
	sub, err := s.subs.GetByNumber(ctx, contractID, number)
	if err != nil {
		return translateNotFound(err)
	}
	if err := s.subs.Delete(ctx, sub.ID); err != nil {
		return translateNotFound(err)
	}
	s.log.Info().Uint("contract_id", contractID).Int("subcontract_number", number).Msg("subcontract deleted")
	return nil
}

func (s *SubContractService) validate(ctx context.Context, input SubContractInput) error {
	var v violations
	v.required("name", input.Name, 128)
	if !input.Status.Valid() {
		v.add("status", "select a valid choice")
	}
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		v.add("user_id", "user does not exist")
	}
	return v.err()
}

func sortSubContracts(subs []model.SubContract) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].DaysLeft() < subs[j].DaysLeft()
	})
}
