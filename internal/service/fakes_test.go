package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.User
}

func newFakeUsers(users ...model.User) *fakeUsers {
	f := &fakeUsers{byID: map[uint]*model.User{}}
	for i := range users {
		u := users[i]
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
		f.byID[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) List(_ context.Context, query string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.byID {
		if query == "" || strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uint, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

type fakeCustomers struct {
	nextID    uint
	byID      map[uint]*model.Customer
	deleteErr error
}

func newFakeCustomers(customers ...model.Customer) *fakeCustomers {
	f := &fakeCustomers{byID: map[uint]*model.Customer{}}
	for i := range customers {
		c := customers[i]
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
		f.byID[c.ID] = &c
	}
	return f
}

func (f *fakeCustomers) List(_ context.Context, _ string) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomers) Get(_ context.Context, id uint) (*model.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomers) Create(_ context.Context, customer *model.Customer) error {
	f.nextID++
	customer.ID = f.nextID
	copied := *customer
	f.byID[customer.ID] = &copied
	return nil
}

func (f *fakeCustomers) Update(_ context.Context, customer *model.Customer) error {
	if _, ok := f.byID[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *customer
	f.byID[customer.ID] = &copied
	return nil
}

func (f *fakeCustomers) Delete(_ context.Context, id uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeContracts struct {
	mu        sync.Mutex
	nextID    uint
	byID      map[uint]*model.Contract
	subCount  map[uint]int64
	deleteErr error
}

func newFakeContracts(contracts ...model.Contract) *fakeContracts {
	f := &fakeContracts{byID: map[uint]*model.Contract{}, subCount: map[uint]int64{}}
	for i := range contracts {
		c := contracts[i]
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
		f.byID[c.ID] = &c
	}
	return f
}

func (f *fakeContracts) exists(id uint) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok
}

func (f *fakeContracts) List(_ context.Context, ownerID uint, _ string) ([]model.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Contract
	for _, c := range f.byID {
		if ownerID == 0 || c.UserID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeContracts) Get(_ context.Context, id uint) (*model.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeContracts) Create(_ context.Context, contract *model.Contract) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	contract.ID = f.nextID
	copied := *contract
	f.byID[contract.ID] = &copied
	return nil
}

func (f *fakeContracts) Update(_ context.Context, contract *model.Contract) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[contract.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Name = contract.Name
	existing.UserID = contract.UserID
	existing.CustomerID = contract.CustomerID
	existing.Status = contract.Status
	return nil
}

func (f *fakeContracts) CountSubContracts(_ context.Context, id uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subCount[id], nil
}

func (f *fakeContracts) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeSubContracts mimics the locked MAX+1 insert. duplicateFailures makes the next
// inserts fail as if another writer had taken the number first.
type fakeSubContracts struct {
	mu                sync.Mutex
	contracts         *fakeContracts
	nextID            uint
	rows              []*model.SubContract
	duplicateFailures int
	allocateCalls     int
}

func newFakeSubContracts(contracts *fakeContracts) *fakeSubContracts {
	return &fakeSubContracts{contracts: contracts}
}

func (f *fakeSubContracts) Allocate(_ context.Context, sub *model.SubContract) error {
	if !f.contracts.exists(sub.ContractID) {
		return gorm.ErrRecordNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allocateCalls++
	if f.duplicateFailures > 0 {
		f.duplicateFailures--
		return gorm.ErrDuplicatedKey
	}

	maxNumber := 0
	for _, row := range f.rows {
		if row.ContractID == sub.ContractID && row.Number > maxNumber {
			maxNumber = row.Number
		}
	}
	for _, row := range f.rows {
		if row.ContractID == sub.ContractID && row.Number == maxNumber+1 {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	sub.ID = f.nextID
	sub.Number = maxNumber + 1
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	copied := *sub
	f.rows = append(f.rows, &copied)
	return nil
}

func (f *fakeSubContracts) numbers(contractID uint) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int
	for _, row := range f.rows {
		if row.ContractID == contractID {
			out = append(out, row.Number)
		}
	}
	sort.Ints(out)
	return out
}

func (f *fakeSubContracts) withContract(row *model.SubContract) model.SubContract {
	copied := *row
	if c, err := f.contracts.Get(context.Background(), row.ContractID); err == nil {
		copied.Contract = c
	}
	return copied
}

func (f *fakeSubContracts) ListByAssignee(_ context.Context, userID uint, _ string) ([]model.SubContract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SubContract
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, f.withContract(row))
		}
	}
	return out, nil
}

func (f *fakeSubContracts) GetByNumber(_ context.Context, contractID uint, number int) (*model.SubContract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ContractID == contractID && row.Number == number {
			sub := f.withContract(row)
			return &sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubContracts) Update(_ context.Context, sub *model.SubContract) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID == sub.ID {
			row.Name = sub.Name
			row.UserID = sub.UserID
			row.Status = sub.Status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeSubContracts) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeComments struct {
	rows []model.Comment
}

func (f *fakeComments) Create(_ context.Context, comment *model.Comment) error {
	comment.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *comment)
	return nil
}

func (f *fakeComments) ListRecent(_ context.Context, limit int) ([]model.Comment, error) {
	out := make([]model.Comment, 0, limit)
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.rows[i])
	}
	return out, nil
}

type fakeProfiles struct {
	mu        sync.Mutex
	byUser    map[uint]*model.UserProfile
	questions map[uint]model.SecurityQuestion
	info      map[uint]model.EmployeeInformation
	accounts  map[uint]model.BankAccount
	contacts  map[uint][]model.EmergencyContact
}

func newFakeProfiles(questions ...model.SecurityQuestion) *fakeProfiles {
	f := &fakeProfiles{
		byUser:    map[uint]*model.UserProfile{},
		questions: map[uint]model.SecurityQuestion{},
		info:      map[uint]model.EmployeeInformation{},
		accounts:  map[uint]model.BankAccount{},
		contacts:  map[uint][]model.EmergencyContact{},
	}
	for _, q := range questions {
		f.questions[q.ID] = q
	}
	return f
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID uint) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	if p.SecurityQuestionID != nil {
		if q, ok := f.questions[*p.SecurityQuestionID]; ok {
			copied.SecurityQuestion = &q
		}
	}
	return &copied, nil
}

func (f *fakeProfiles) GetOrCreate(ctx context.Context, userID uint) (*model.UserProfile, error) {
	f.mu.Lock()
	if _, ok := f.byUser[userID]; !ok {
		f.byUser[userID] = &model.UserProfile{ID: uint(len(f.byUser) + 1), UserID: userID}
	}
	f.mu.Unlock()
	return f.GetByUserID(ctx, userID)
}

func (f *fakeProfiles) UpdateSecurity(_ context.Context, profileID uint, questionID *uint, answerHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byUser {
		if p.ID == profileID {
			p.SecurityQuestionID = questionID
			p.SecurityAnswer = answerHash
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProfiles) GetQuestion(_ context.Context, id uint) (*model.SecurityQuestion, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (f *fakeProfiles) ListQuestions(_ context.Context) ([]model.SecurityQuestion, error) {
	out := make([]model.SecurityQuestion, 0, len(f.questions))
	for _, q := range f.questions {
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeProfiles) SaveInformation(_ context.Context, info *model.EmployeeInformation) error {
	f.info[info.UserProfileID] = *info
	return nil
}

func (f *fakeProfiles) SaveBankAccount(_ context.Context, account *model.BankAccount) error {
	f.accounts[account.UserProfileID] = *account
	return nil
}

func (f *fakeProfiles) ReplaceEmergencyContacts(_ context.Context, profileID uint, contacts []model.EmergencyContact) error {
	f.contacts[profileID] = contacts
	return nil
}

type fakeEvents struct {
	nextID uint
	rows   map[uint]*model.Event
	groups []model.Group
}

func newFakeEvents(groups ...model.Group) *fakeEvents {
	return &fakeEvents{rows: map[uint]*model.Event{}, groups: groups}
}

func (f *fakeEvents) List(_ context.Context) ([]model.Event, error) {
	out := make([]model.Event, 0, len(f.rows))
	for id := uint(1); id <= f.nextID; id++ {
		if e, ok := f.rows[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) ListOverlapping(_ context.Context, from, to time.Time) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.rows {
		if e.StartTime.Before(to) && !e.EndTime.Before(from) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) Get(_ context.Context, id uint) (*model.Event, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEvents) Create(_ context.Context, event *model.Event) error {
	f.nextID++
	event.ID = f.nextID
	copied := *event
	f.rows[event.ID] = &copied
	return nil
}

func (f *fakeEvents) Update(_ context.Context, event *model.Event) error {
	if _, ok := f.rows[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *event
	f.rows[event.ID] = &copied
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeEvents) GroupByName(_ context.Context, name string) (*model.Group, error) {
	for _, g := range f.groups {
		if g.Name == name {
			copied := g
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEvents) ListGroups(_ context.Context) ([]model.Group, error) {
	return f.groups, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(hash, password string) bool {
	return hash != "" && hash == "hashed:"+password
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(user model.User) (string, time.Time, error) {
	return "token-" + user.Username, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func violationMessages(err error) []string {
	verr, ok := err.(*ValidationError)
	if !ok {
		return nil
	}
	return verr.Messages()
}

func violationFields(err error) []string {
	verr, ok := err.(*ValidationError)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}
