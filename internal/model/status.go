package model

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}
