package service

import (
	"context"

	"github.com/nurpe/employeehub/internal/model"
)

const dashboardComments = 10

type Dashboard struct {
	Contracts    []model.Contract    `json:"contracts"`
	SubContracts []model.SubContract `json:"subcontracts"`
	Events       []model.Event       `json:"events"`
	Comments     []model.Comment     `json:"comments"`
}

type DashboardService struct {
	contracts *ContractService
	subs      *SubContractService
	calendar  *CalendarService
	comments  *CommentService
}

func NewDashboardService(contracts *ContractService, subs *SubContractService, calendar *CalendarService, comments *CommentService) *DashboardService {
	return &DashboardService{contracts: contracts, subs: subs, calendar: calendar, comments: comments}
}

// Build collects the caller's homepage: own contracts, upcoming subcontracts,
// today's events and the latest comments.
func (s *DashboardService) Build(ctx context.Context, principal model.Principal) (*Dashboard, error) {
	contracts, err := s.contracts.ListMine(ctx, principal, "")
	if err != nil {
		return nil, err
	}
	subs, err := s.subs.Upcoming(ctx, principal)
	if err != nil {
		return nil, err
	}
	events, err := s.calendar.Today(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.Recent(ctx, dashboardComments)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Contracts:    contracts,
		SubContracts: subs,
		Events:       events,
		Comments:     comments,
	}, nil
}
