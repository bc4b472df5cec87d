package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgrijalva/jwt-go"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nik-Luchok/finance/internal/config"
	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

type UserRepository interface {
	CreateUser(ctx context.Context, username, hashedPassword string, startingCash decimal.Decimal) (int64, error)
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type UserService struct {
	config *config.Config
	repo   UserRepository
}

func NewUserService(repo UserRepository, config *config.Config) *UserService {
	return &UserService{
		repo:   repo,
		config: config,
	}
}

// Register creates the user with the configured starting cash balance.
// It does not log the user in; the caller redirects to the login page.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.Warn("error while hashing password")
		return fmt.Errorf("error while hashing password: %w", err)
	}

	startingCash, err := decimal.NewFromString(s.config.StartingCash)
	if err != nil {
		return fmt.Errorf("invalid starting cash %q: %w", s.config.StartingCash, err)
	}

	_, err = s.repo.CreateUser(ctx, username, string(hashedPassword), startingCash)
	if err != nil {
		return err
	}

	return nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrIncorrectCredentials) {
			logger.Log.Warn("incorrect username", logger.String("username", username))
		}
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		logger.Log.Warn("incorrect password", logger.String("username", username))
		return "", domain.ErrIncorrectCredentials
	}

	return generateJWTToken(user.ID, s.config.PrivateKey)
}

func generateJWTToken(userID int64, privateKey string) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(privateKey))
	if err != nil {
		return "", fmt.Errorf("error while signing token: %w", err)
	}

	return signedToken, nil
}
