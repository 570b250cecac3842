package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/employeehub/internal/model"
)

type recordingExcel struct {
	register model.ContractRegister
	users    []model.User
}

func (r *recordingExcel) Contracts(register model.ContractRegister) ([]byte, error) {
	r.register = register
	return []byte("xlsx"), nil
}

func (r *recordingExcel) Employees(users []model.User) ([]byte, error) {
	r.users = users
	return []byte("xlsx"), nil
}

type recordingPDF struct {
	sheet model.ContractSheet
}

func (r *recordingPDF) Contract(sheet model.ContractSheet) ([]byte, error) {
	r.sheet = sheet
	return []byte("%PDF-"), nil
}

func TestReportService(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	contracts := newFakeContracts(
		model.Contract{ID: 1, Name: "Roof / phase 1", UserID: 7, CreatedAt: created, Deadline: created.AddDate(0, 0, 20)},
		model.Contract{ID: 2, Name: "Cellar", UserID: 8, CreatedAt: created, Deadline: created.AddDate(0, 0, 5)},
	)
	users := newFakeUsers(model.User{ID: 7, Username: "j.doe"}, model.User{ID: 8, Username: "other"})
	excel := &recordingExcel{}
	pdf := &recordingPDF{}
	svc := NewReportService(contracts, users, excel, pdf)
	svc.now = func() time.Time { return time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC) }
	principal := model.Principal{UserID: 7, Username: "j.doe"}

	mine, err := svc.ContractsRegister(ctx, principal, true, "")
	require.NoError(t, err)
	assert.Equal(t, "contracts-j-doe-20240203.xlsx", mine.FileName)
	require.Len(t, excel.register.Contracts, 1)

	all, err := svc.ContractsRegister(ctx, principal, false, "")
	require.NoError(t, err)
	assert.Equal(t, "contracts-all-20240203.xlsx", all.FileName)
	require.Len(t, excel.register.Contracts, 2)
	assert.Equal(t, uint(2), excel.register.Contracts[0].ID)

	employees, err := svc.Employees(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "employees-20240203.xlsx", employees.FileName)
	assert.Len(t, excel.users, 2)

	sheet, err := svc.ContractSheet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "contract-1-Roof---phase-1.pdf", sheet.FileName)
	assert.Equal(t, "Roof / phase 1", pdf.sheet.Contract.Name)

	_, err = svc.ContractSheet(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	contracts := newFakeContracts(
		model.Contract{ID: 1, UserID: 7, CreatedAt: created, Deadline: created.AddDate(0, 0, 20)},
		model.Contract{ID: 2, UserID: 7, CreatedAt: created, Deadline: created.AddDate(0, 0, 5)},
		model.Contract{ID: 3, UserID: 8, CreatedAt: created, Deadline: created},
	)
	subs := newFakeSubContracts(contracts)
	users := newFakeUsers(model.User{ID: 7}, model.User{ID: 8})
	customers := newFakeCustomers()
	events := newFakeEvents()
	comments := &fakeComments{}
	principal := model.Principal{UserID: 7}

	subService := NewSubContractService(subs, contracts, users, testConfig(), zerolog.Nop())
	for i := 0; i < 6; i++ {
		_, err := subService.Allocate(ctx, principal, 1, SubContractInput{Name: "part"})
		require.NoError(t, err)
	}
	commentService := NewCommentService(comments, subs)
	_, err := commentService.Add(ctx, 1, 1, "first")
	require.NoError(t, err)

	dashboard := NewDashboardService(
		NewContractService(contracts, customers, users, testConfig(), zerolog.Nop()),
		subService,
		NewCalendarService(events),
		commentService,
	)
	result, err := dashboard.Build(ctx, principal)
	require.NoError(t, err)
	require.Len(t, result.Contracts, 2)
	assert.Equal(t, uint(2), result.Contracts[0].ID)
	assert.Len(t, result.SubContracts, 5)
	assert.Empty(t, result.Events)
	assert.Len(t, result.Comments, 1)
}
