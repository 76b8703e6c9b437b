package postgres

import (
	"time"

	"pto-tracker/internal/pto"
	"pto-tracker/internal/user"

	"gorm.io/gorm"
)

// PTORequestRepository implements the pto.Repository interface using GORM.
type PTORequestRepository struct {
	db *gorm.DB
}

func NewPTORequestRepository(db *gorm.DB) pto.Repository {
	return &PTORequestRepository{db: db}
}

// CreateWithDebit persists the request and debits the owner's used hours in
// one transaction. The debit is a conditional update guarded by
// used + hours <= max; zero rows affected means the balance check lost a
// race, and the whole transaction rolls back.
func (r *PTORequestRepository) CreateWithDebit(req *pto.PTORequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if req.Status == "" {
			req.Status = pto.StatusPending
		}
		if req.CreatedAt.IsZero() {
			req.CreatedAt = time.Now()
		}

		if err := tx.Create(req).Error; err != nil {
			return err
		}

		res := tx.Model(&user.User{}).
			Where("id = ? AND used_pto_hours + ? <= max_pto_hours", req.UserID, req.Hours).
			Updates(map[string]interface{}{
				"used_pto_hours": gorm.Expr("used_pto_hours + ?", req.Hours),
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pto.ErrInsufficientBalance
		}

		return nil
	})
}

// ListByOwner returns the user's requests in insertion order. limit <= 0
// returns everything.
func (r *PTORequestRepository) ListByOwner(userID int64, limit, offset int) ([]*pto.PTORequest, error) {
	var requests []*pto.PTORequest

	q := r.db.Where("user_id = ?", userID).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	err := q.Find(&requests).Error
	return requests, err
}
