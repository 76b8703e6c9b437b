package pto

import (
	"errors"
	"time"
)

// PTORequest is a single leave request. RequestDate stays the string the
// caller supplied; date parsing and display formatting belong to the client.
type PTORequest struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"userId" gorm:"column:user_id;not null"`
	RequestDate string    `json:"requestDate" gorm:"column:request_date;not null"`
	Hours       int       `json:"hours" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;default:pending"`
	CreatedAt   time.Time `json:"-" gorm:"column:created_at"`
}

func (PTORequest) TableName() string {
	return "pto_requests"
}

// Request statuses. Nothing in scope transitions a request out of pending;
// the approved/denied values exist for seed data and future workflow.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// Balance is the response shape of GET /pto/balance.
type Balance struct {
	MaxHours       int `json:"maxHours"`
	UsedHours      int `json:"usedHours"`
	RemainingHours int `json:"remainingHours"`
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient PTO balance")
)

// Repository is the leave request store. CreateWithDebit persists the
// request and debits the owner's used hours in one transaction; the debit
// is conditional on used+hours <= max, and a zero-row update reports
// ErrInsufficientBalance. That keeps the balance invariant under
// concurrent submissions.
type Repository interface {
	CreateWithDebit(req *PTORequest) error
	ListByOwner(userID int64, limit, offset int) ([]*PTORequest, error)
}
