package maintenance

import "errors"

var ErrBackwardTransition = errors.New("maintenance status can only move forward")

// Status only moves forward: scheduled -> in_progress -> completed.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) rank() int {
	switch s {
	case StatusScheduled:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	default:
		return -1
	}
}

// CanAdvanceTo rejects backward and repeated transitions.
func (s Status) CanAdvanceTo(next Status) bool {
	return next.IsValid() && next.rank() > s.rank()
}
