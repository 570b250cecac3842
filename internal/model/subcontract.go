package model

import (
	"fmt"
	"time"
)

type SubContract struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `json:"name"`
	UserID     uint      `json:"user_id"`
	ContractID uint      `json:"contract_id"`
	Number     int       `gorm:"column:subcontract_number" json:"subcontract_number"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	Contract   *Contract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments   []Comment `gorm:"foreignKey:SubContractID" json:"comments,omitempty"`
}

func (SubContract) TableName() string { return "subcontracts" }

// DaysLeft counts days from creation to the parent contract's deadline.
// Zero when the contract is not loaded.
func (s SubContract) DaysLeft() int {
	if s.Contract == nil {
		return 0
	}
	return wholeDays(s.Contract.Deadline.Sub(s.CreatedAt))
}

// Code is the human-facing "<contract>-<number>" reference.
func (s SubContract) Code() string {
	return fmt.Sprintf("%d-%d", s.ContractID, s.Number)
}

type Comment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Text          string    `json:"text"`
	SubContractID uint      `gorm:"column:subcontract_id" json:"subcontract_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
