package model

import "time"

// Process is the fixed work stream a task belongs to.
type Process int64

const (
	ProcessCold     Process = 1
	ProcessHot      Process = 2
	ProcessDelivery Process = 3
)

// Processes lists every process in menu order.
var Processes = []Process{ProcessCold, ProcessHot, ProcessDelivery}

func (p Process) Valid() bool {
	return p >= ProcessCold && p <= ProcessDelivery
}

// Key is the stable identifier used for message lookups.
func (p Process) Key() string {
	switch p {
	case ProcessCold:
		return "cold"
	case ProcessHot:
		return "hot"
	case ProcessDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

type Task struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Text      string    `db:"text"`
	IsDone    bool      `db:"is_done"`
	CreatedAt time.Time `db:"created_at"`
	Process   Process   `db:"task_category_id"`
}
