package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/employeehub/internal/model"
)

type ExcelGenerator interface {
	Contracts(register model.ContractRegister) ([]byte, error)
	Employees(users []model.User) ([]byte, error)
}

type PDFGenerator interface {
	Contract(sheet model.ContractSheet) ([]byte, error)
}

type ReportService struct {
	contracts ContractStore
	users     UserStore
	excel     ExcelGenerator
	pdf       PDFGenerator
	now       func() time.Time
}

func NewReportService(contracts ContractStore, users UserStore, excel ExcelGenerator, pdf PDFGenerator) *ReportService {
	return &ReportService{
		contracts: contracts,
		users:     users,
		excel:     excel,
		pdf:       pdf,
		now:       time.Now,
	}
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ContractsRegister exports contracts as a spreadsheet. When mine is set only the
// caller's contracts are included.
func (s *ReportService) ContractsRegister(ctx context.Context, principal model.Principal, mine bool, query string) (*ExportResult, error) {
	ownerID := uint(0)
	scope := "all"
	if mine {
		ownerID = principal.UserID
		scope = sanitizeFileName(principal.Username)
		if scope == "" {
			scope = fmt.Sprintf("user-%d", principal.UserID)
		}
	}

	contracts, err := s.contracts.List(ctx, ownerID, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	sortContracts(contracts)

	generatedAt := s.now()
	content, err := s.excel.Contracts(model.ContractRegister{
		GeneratedAt: generatedAt,
		Query:       strings.TrimSpace(query),
		Contracts:   contracts,
	})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("contracts-%s-%s.xlsx", scope, generatedAt.Format("20060102")),
		Content:  content,
	}, nil
}

func (s *ReportService) Employees(ctx context.Context, query string) (*ExportResult, error) {
	users, err := s.users.List(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Employees(users)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("employees-%s.xlsx", s.now().Format("20060102")),
		Content:  content,
	}, nil
}

// ContractSheet renders one contract with its subcontracts as a PDF.
func (s *ReportService) ContractSheet(ctx context.Context, id uint) (*ExportResult, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}

	generatedAt := s.now()
	content, err := s.pdf.Contract(model.ContractSheet{
		Contract:    *contract,
		GeneratedAt: generatedAt,
	})
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(contract.Name)
	if name == "" {
		name = fmt.Sprintf("%d", contract.ID)
	}
	return &ExportResult{
		FileName: fmt.Sprintf("contract-%d-%s.pdf", contract.ID, name),
		Content:  content,
	}, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
