package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

const (
	maxEmergencyContacts = 2
	// bcrypt rejects input past 72 bytes.
	maxSecurityAnswerBytes = 72

	MsgSecurityAnswerTooLong = "security answer must be at most 72 bytes long"
)

type ProfileService struct {
	profiles   ProfileStore
	answerCost int
}

// NewProfileService hashes security answers at answerCost, the same bcrypt cost used for passwords.
func NewProfileService(profiles ProfileStore, answerCost int) *ProfileService {
	return &ProfileService{profiles: profiles, answerCost: answerCost}
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*model.UserProfile, error) {
	return s.profiles.GetOrCreate(ctx, userID)
}

func (s *ProfileService) Questions(ctx context.Context) ([]model.SecurityQuestion, error) {
	return s.profiles.ListQuestions(ctx)
}

type InformationInput struct {
	PermanentAddress       string
	PermanentDescriptiveNo string
	PermanentPostalCode    string
	City                   string
	PhoneNumber            string
	EmploymentStart        *time.Time
	BirthDay               *time.Time
	ContractType           string
}

func (s *ProfileService) SaveInformation(ctx context.Context, userID uint, input InformationInput) (*model.EmployeeInformation, error) {
	var v violations
	v.required("permanent_address", input.PermanentAddress, 128)
	v.requiredDigits("permanent_descriptive_number", input.PermanentDescriptiveNo, 10)
	v.requiredDigits("permanent_postal_code", input.PermanentPostalCode, 5)
	v.required("city", input.City, 128)
	v.requiredDigits("phone_number", input.PhoneNumber, 15)
	v.maxLength("contract_type", input.ContractType, 128)
	if err := v.err(); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := &model.EmployeeInformation{
		UserProfileID:          profile.ID,
		PermanentAddress:       strings.TrimSpace(input.PermanentAddress),
		PermanentDescriptiveNo: input.PermanentDescriptiveNo,
		PermanentPostalCode:    input.PermanentPostalCode,
		City:                   strings.TrimSpace(input.City),
		PhoneNumber:            input.PhoneNumber,
		EmploymentStart:        input.EmploymentStart,
		BirthDay:               input.BirthDay,
		ContractType:           strings.TrimSpace(input.ContractType),
	}
	if err := s.profiles.SaveInformation(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

type BankAccountInput struct {
	AccountPrefix string
	AccountNumber string
	BankCode      string
	BankName      string
	IBAN          string
	SwiftBIC      string
}

func (s *ProfileService) SaveBankAccount(ctx context.Context, userID uint, input BankAccountInput) (*model.BankAccount, error) {
	var v violations
	v.digits("account_prefix", input.AccountPrefix, 6)
	v.digits("account_number", input.AccountNumber, 20)
	v.digits("bank_code", input.BankCode, 4)
	v.maxLength("bank_name", input.BankName, 50)
	v.maxLength("iban", input.IBAN, 34)
	v.maxLength("swift_bic", input.SwiftBIC, 11)
	if err := v.err(); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefix := input.AccountPrefix
	if prefix == "" {
		prefix = "000000"
	}
	account := &model.BankAccount{
		UserProfileID: profile.ID,
		AccountPrefix: prefix,
		AccountNumber: input.AccountNumber,
		BankCode:      input.BankCode,
		BankName:      strings.TrimSpace(input.BankName),
		IBAN:          strings.ToUpper(strings.ReplaceAll(input.IBAN, " ", "")),
		SwiftBIC:      strings.ToUpper(strings.TrimSpace(input.SwiftBIC)),
	}
	if err := s.profiles.SaveBankAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

type EmergencyContactInput struct {
	Name              string
	Address           string
	DescriptiveNumber string
	PostalCode        string
	City              string
	PhoneNumber       string
}

// ReplaceEmergencyContacts stores at most two contacts, replacing any previous ones.
func (s *ProfileService) ReplaceEmergencyContacts(ctx context.Context, userID uint, inputs []EmergencyContactInput) ([]model.EmergencyContact, error) {
	var v violations
	if len(inputs) > maxEmergencyContacts {
		v.add("emergency_contacts", fmt.Sprintf("please submit at most %d contacts", maxEmergencyContacts))
	}
	for i, in := range inputs {
		prefix := fmt.Sprintf("emergency_contacts[%d].", i)
		v.required(prefix+"name", in.Name, 128)
		v.required(prefix+"address", in.Address, 128)
		v.requiredDigits(prefix+"descriptive_number", in.DescriptiveNumber, 10)
		v.requiredDigits(prefix+"postal_code", in.PostalCode, 10)
		v.required(prefix+"city", in.City, 128)
		v.requiredDigits(prefix+"phone_number", in.PhoneNumber, 15)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	contacts := make([]model.EmergencyContact, 0, len(inputs))
	for _, in := range inputs {
		contacts = append(contacts, model.EmergencyContact{
			Name:              strings.TrimSpace(in.Name),
			Address:           strings.TrimSpace(in.Address),
			DescriptiveNumber: in.DescriptiveNumber,
			PostalCode:        in.PostalCode,
			City:              strings.TrimSpace(in.City),
			PhoneNumber:       in.PhoneNumber,
		})
	}
	if err := s.profiles.ReplaceEmergencyContacts(ctx, profile.ID, contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// ChangeSecurityQuestion sets the question used by password reset and stores a new answer.
func (s *ProfileService) ChangeSecurityQuestion(ctx context.Context, userID, questionID uint, answer string) error {
	var v violations
	if questionID == 0 {
		v.add("security_question_id", "this field is required")
	} else if _, err := s.profiles.GetQuestion(ctx, questionID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		v.add("security_question_id", "select a valid choice")
	}
	v.required("security_answer", answer, 255)
	if len(answer) > maxSecurityAnswerBytes {
		v.add("security_answer", MsgSecurityAnswerTooLong)
	}
	if err := v.err(); err != nil {
		return err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	if err := profile.SetSecurityAnswer(answer, s.answerCost); err != nil {
		return err
	}
	return s.profiles.UpdateSecurity(ctx, profile.ID, &questionID, profile.SecurityAnswer)
}
