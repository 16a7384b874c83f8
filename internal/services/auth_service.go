package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vijay0896/LoanApp/internal/auth"
	"github.com/vijay0896/LoanApp/internal/models"
	"github.com/vijay0896/LoanApp/internal/notify"
	"github.com/vijay0896/LoanApp/internal/repository"
)

const (
	resetCodeLength = 5
	resetCodeTTL    = time.Hour
)

type AuthResult struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

type AuthService struct {
	users       repository.UserRepository
	notifier    notify.Notifier
	secret      []byte
	tokenExpiry time.Duration
	log         *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, notifier notify.Notifier, secret []byte, tokenExpiry time.Duration, log *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, notifier: notifier, secret: secret, tokenExpiry: tokenExpiry, log: log}
}

// Register creates a lender account and logs it in. The password is hashed
// here, once, before the record ever reaches the repository; nothing else in
// the codebase writes the password field.
func (s *AuthService) Register(ctx context.Context, username, email, phone, password string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Phone:    phone,
		Password: string(hash),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	token, err := auth.GenerateToken(created.ID.Hex(), created.Email, s.secret, s.tokenExpiry)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: created.ID.Hex(), Token: token}, nil
}

// Login never reveals which of email/password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, s.secret, s.tokenExpiry)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID.Hex(), Token: token}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset is success-shaped for unknown emails so callers cannot
// probe which addresses are registered. Notifier failures are logged only.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	code, err := generateResetCode(resetCodeLength)
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, code, time.Now().Add(resetCodeTTL)); err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, email, "Here is your Reset Token "+code); err != nil {
		s.log.Errorw("reset notification failed", "email", email, "err", err)
	}
	return nil
}

const resetCodeChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generateResetCode(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(resetCodeChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = resetCodeChars[n.Int64()]
	}
	return string(out), nil
}
