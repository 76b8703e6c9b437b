package user

import (
	"errors"
	"time"
)

// User is the credential record behind login and PTO accounting. The
// password hash never leaves the backend.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	MaxPTOHours  int       `json:"maxPtoHours" gorm:"column:max_pto_hours;not null;default:0"`
	UsedPTOHours int       `json:"usedPtoHours" gorm:"column:used_pto_hours;not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RemainingHours is the hours still available this year. Submission keeps
// used <= max, so this only goes negative if rows were edited out of band.
func (u *User) RemainingHours() int {
	return u.MaxPTOHours - u.UsedPTOHours
}

var ErrNotFound = errors.New("user not found")

// Repository is the credential store contract: lookups by login key and id,
// plus full replace of the mutable fields keyed by id. Last write wins;
// the balance debit itself goes through the atomic path in the pto package.
type Repository interface {
	GetByEmail(email string) (*User, error)
	GetByID(id int64) (*User, error)
	Update(u *User) error
}
