package model

import "time"

type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

func (Group) TableName() string { return "calendar_groups" }

type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	GroupID   uint      `json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (Event) TableName() string { return "events" }

// Touches reports whether the event overlaps the calendar day of ref.
func (e Event) Touches(ref time.Time) bool {
	y, m, d := ref.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	return e.StartTime.Before(dayEnd) && !e.EndTime.Before(dayStart)
}
