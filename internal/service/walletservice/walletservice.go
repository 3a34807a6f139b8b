package walletservice

import (
	"context"

	"github.com/taskwallet/backend/internal/domain"
)

type UserRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.User, error)
}

type Service struct {
	users UserRepo
}

func New(users UserRepo) *Service {
	return &Service{users: users}
}

func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
