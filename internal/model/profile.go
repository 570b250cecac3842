package model

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Position struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

func (Position) TableName() string { return "positions" }

type SecurityQuestion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	QuestionText string `json:"question_text"`
}

func (SecurityQuestion) TableName() string { return "security_questions" }

type UserProfile struct {
	ID                 uint                 `gorm:"primaryKey" json:"id"`
	UserID             uint                 `json:"user_id"`
	PositionID         *uint                `json:"position_id,omitempty"`
	PhoneNumber        string               `json:"phone_number"`
	SecurityQuestionID *uint                `json:"security_question_id,omitempty"`
	SecurityAnswer     string               `json:"-"`
	Position           *Position            `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	SecurityQuestion   *SecurityQuestion    `gorm:"foreignKey:SecurityQuestionID" json:"security_question,omitempty"`
	BankAccount        *BankAccount         `gorm:"foreignKey:UserProfileID" json:"bank_account,omitempty"`
	Information        *EmployeeInformation `gorm:"foreignKey:UserProfileID" json:"information,omitempty"`
	EmergencyContacts  []EmergencyContact   `gorm:"foreignKey:UserProfileID" json:"emergency_contacts,omitempty"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// SetSecurityAnswer stores a salted bcrypt hash of raw at cost. An empty raw clears the answer.
func (p *UserProfile) SetSecurityAnswer(raw string, cost int) error {
	if raw == "" {
		p.SecurityAnswer = ""
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return fmt.Errorf("hash security answer: %w", err)
	}
	p.SecurityAnswer = string(hash)
	return nil
}

// CheckSecurityAnswer never matches an unset answer, an empty input or a corrupt hash.
func (p *UserProfile) CheckSecurityAnswer(raw string) bool {
	if p.SecurityAnswer == "" || raw == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.SecurityAnswer), []byte(raw)) == nil
}

func (p *UserProfile) QuestionText() string {
	if p.SecurityQuestion == nil {
		return ""
	}
	return p.SecurityQuestion.QuestionText
}

type BankAccount struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserProfileID uint   `json:"user_profile_id"`
	AccountPrefix string `json:"account_prefix"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	BankName      string `json:"bank_name"`
	IBAN          string `gorm:"column:iban" json:"iban"`
	SwiftBIC      string `gorm:"column:swift_bic" json:"swift_bic"`
}

func (BankAccount) TableName() string { return "bank_accounts" }

type EmergencyContact struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UserProfileID     uint   `json:"user_profile_id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	DescriptiveNumber string `json:"descriptive_number"`
	PostalCode        string `json:"postal_code"`
	City              string `json:"city"`
	PhoneNumber       string `json:"phone_number"`
}

func (EmergencyContact) TableName() string { return "emergency_contacts" }

type EmployeeInformation struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	UserProfileID          uint       `json:"user_profile_id"`
	PermanentAddress       string     `json:"permanent_address"`
	PermanentDescriptiveNo string     `gorm:"column:permanent_descriptive_number" json:"permanent_descriptive_number"`
	PermanentPostalCode    string     `json:"permanent_postal_code"`
	City                   string     `json:"city"`
	PhoneNumber            string     `json:"phone_number"`
	EmploymentStart        *time.Time `json:"employment_start,omitempty"`
	BirthDay               *time.Time `json:"birth_day,omitempty"`
	ContractType           string     `json:"contract_type"`
}

func (EmployeeInformation) TableName() string { return "employee_information" }

// DurationOfEmployment returns whole days since EmploymentStart, never negative.
// ok is false when no start date is recorded.
func (e EmployeeInformation) DurationOfEmployment(now time.Time) (days int, ok bool) {
	if e.EmploymentStart == nil {
		return 0, false
	}
	d := wholeDays(now.Sub(*e.EmploymentStart))
	if d < 0 {
		d = 0
	}
	return d, true
}
