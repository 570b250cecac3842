package service

import (
	"context"
	"time"

	"github.com/nurpe/employeehub/internal/model"
)

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, query string) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type CustomerStore interface {
	List(ctx context.Context, query string) ([]model.Customer, error)
	Get(ctx context.Context, id uint) (*model.Customer, error)
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uint) error
}

type ContractStore interface {
	List(ctx context.Context, ownerID uint, query string) ([]model.Contract, error)
	Get(ctx context.Context, id uint) (*model.Contract, error)
	Create(ctx context.Context, contract *model.Contract) error
	Update(ctx context.Context, contract *model.Contract) error
	CountSubContracts(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type SubContractStore interface {
	Allocate(ctx context.Context, sub *model.SubContract) error
	ListByAssignee(ctx context.Context, userID uint, query string) ([]model.SubContract, error)
	GetByNumber(ctx context.Context, contractID uint, number int) (*model.SubContract, error)
	Update(ctx context.Context, sub *model.SubContract) error
	Delete(ctx context.Context, id uint) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListRecent(ctx context.Context, limit int) ([]model.Comment, error)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uint) (*model.UserProfile, error)
	GetOrCreate(ctx context.Context, userID uint) (*model.UserProfile, error)
	UpdateSecurity(ctx context.Context, profileID uint, questionID *uint, answerHash string) error
	GetQuestion(ctx context.Context, id uint) (*model.SecurityQuestion, error)
	ListQuestions(ctx context.Context) ([]model.SecurityQuestion, error)
	SaveInformation(ctx context.Context, info *model.EmployeeInformation) error
	SaveBankAccount(ctx context.Context, account *model.BankAccount) error
	ReplaceEmergencyContacts(ctx context.Context, profileID uint, contacts []model.EmergencyContact) error
}

type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]model.Event, error)
	Get(ctx context.Context, id uint) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) error
	GroupByName(ctx context.Context, name string) (*model.Group, error)
	ListGroups(ctx context.Context) ([]model.Group, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type TokenIssuer interface {
	Issue(user model.User) (string, time.Time, error)
}
