package pto

import (
	"log/slog"

	"pto-tracker/internal"
	"pto-tracker/internal/user"
)

// Service is the leave domain logic: balance computation, request listing,
// and validated submission. It never caches user records across calls;
// every read goes back to the store.
type Service struct {
	users    user.Repository
	requests Repository
	logger   *slog.Logger
}

func NewService(users user.Repository, requests Repository, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		requests: requests,
		logger:   logger,
	}
}

// GetBalance returns max, used and remaining hours for the user.
func (s *Service) GetBalance(userID int64) (*Balance, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		if err == user.ErrNotFound {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to fetch user for balance", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Server error", err)
	}

	return &Balance{
		MaxHours:       u.MaxPTOHours,
		UsedHours:      u.UsedPTOHours,
		RemainingHours: u.RemainingHours(),
	}, nil
}

// ListRequests returns the user's requests verbatim, no status filtering.
// limit <= 0 means no limit.
func (s *Service) ListRequests(userID int64, limit, offset int) ([]*PTORequest, error) {
	requests, err := s.requests.ListByOwner(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list pto requests", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Server error", err)
	}
	return requests, nil
}

// SubmitRequest validates the payload, checks the balance, then persists a
// pending request and debits used hours in a single transaction. The
// up-front balance check gives the caller a clean error; the store's
// conditional debit re-enforces the invariant against concurrent submits.
func (s *Service) SubmitRequest(userID int64, dto SubmitRequestDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.users.GetByID(userID)
	if err != nil {
		if err == user.ErrNotFound {
			return ErrUserNotFound
		}
		s.logger.Error("failed to fetch user for submission", "error", err, "user_id", userID)
		return internal.NewInternalError("Server error", err)
	}

	if dto.Hours > u.RemainingHours() {
		s.logger.Info("pto request rejected: insufficient balance",
			"user_id", userID,
			"hours", dto.Hours,
			"remaining", u.RemainingHours())
		return ErrInsufficientBalance
	}

	req := &PTORequest{
		UserID:      userID,
		RequestDate: dto.RequestDate,
		Hours:       dto.Hours,
		Reason:      dto.Reason,
		Status:      StatusPending,
	}

	if err := s.requests.CreateWithDebit(req); err != nil {
		if err == ErrInsufficientBalance {
			return ErrInsufficientBalance
		}
		s.logger.Error("failed to persist pto request", "error", err, "user_id", userID)
		return internal.NewInternalError("Server error", err)
	}

	s.logger.Info("pto request submitted",
		"request_id", req.ID,
		"user_id", userID,
		"hours", dto.Hours)

	return nil
}
