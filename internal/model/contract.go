package model

import (
	"math"
	"time"
)

type Contract struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `json:"name"`
	UserID       uint          `json:"user_id"`
	CustomerID   uint          `json:"customer_id"`
	Status       Status        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	Deadline     time.Time     `json:"deadline"`
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Customer     *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SubContracts []SubContract `gorm:"foreignKey:ContractID" json:"subcontracts,omitempty"`
}

func (Contract) TableName() string { return "contracts" }

// DaysLeft is the whole number of days between creation and deadline.
func (c Contract) DaysLeft() int {
	return wholeDays(c.Deadline.Sub(c.CreatedAt))
}

func DefaultDeadline(created time.Time, days int) time.Time {
	return created.AddDate(0, 0, days)
}

func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
