package authservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskwallet/backend/internal/domain"
	"github.com/taskwallet/backend/internal/pg"
	"github.com/taskwallet/backend/pkg/auth"
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ReferralLinker records the inviter when a registration carries an
// invite code.
type ReferralLinker interface {
	RegisterWithInvite(ctx context.Context, code string, newUserID int) error
}

type Service struct {
	userRepo    Repo
	referrals   ReferralLinker
	txManager   pg.TXManager
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
}

func New(repo Repo, referrals ReferralLinker, txManager pg.TXManager, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:    repo,
		referrals:   referrals,
		txManager:   txManager,
		hashService: hashService,
		jwtService:  jwtService,
	}
}

// Register creates the user and, when an invite code is supplied, links the
// inviter in the same transaction: an invalid code rolls the whole
// registration back.
func (s *Service) Register(ctx context.Context, login, password, inviteCode string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists, login: ", zap.String("login", login))
		return nil, domain.ErrLoginTaken
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	var user *domain.User
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err = s.userRepo.Create(ctx, &domain.User{
			Login:        login,
			PasswordHash: hashedPassword,
		})
		if err != nil {
			zap.L().Error("can't create user: ", zap.Error(err))
			return err
		}
		if inviteCode != "" {
			if err := s.referrals.RegisterWithInvite(ctx, inviteCode, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", login))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("login", login))
		return nil, domain.ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(userID int, isAdmin bool) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(userID, isAdmin, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
