package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/repos"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type AuthService interface {
	Register(ctx context.Context, coach *types.Coach) error
	Login(ctx context.Context, email, password string) (string, *types.Coach, error)
	ParseToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	coachRepo    repos.CoachRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, coachRepo repos.CoachRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		coachRepo:    coachRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, coach *types.Coach) error {
	if coach == nil {
		return fmt.Errorf("No coach given, cannot proceed with registration")
	}
	coach.Email = strings.ToLower(strings.TrimSpace(coach.Email))
	if coach.Email == "" {
		return fmt.Errorf("An email is required to register")
	}
	if coach.Password == "" {
		return fmt.Errorf("A password is required to register")
	}
	if coach.FirstName == "" {
		return fmt.Errorf("A first name is required to register")
	}

	emailExists, err := as.coachRepo.EmailExists(ctx, nil, coach.Email)
	if err != nil {
		return fmt.Errorf("Failed to check coach email: %w", err)
	}
	if emailExists {
		return fmt.Errorf("Email is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(coach.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("Failed to hash password")
	}
	coach.Password = string(hashedPassword)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		coach.ID = uuid.New()
		if _, cerr := as.coachRepo.Create(ctx, tx, []*types.Coach{coach}); cerr != nil {
			return fmt.Errorf("Failed to create coach in postgres: %w", cerr)
		}
		return nil
	})
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.Coach, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("Email and password are required to login")
	}

	coaches, err := as.coachRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", nil, fmt.Errorf("Error retrieving coach by email: %w", err)
	}
	if len(coaches) == 0 {
		return "", nil, fmt.Errorf("Invalid email")
	}

	coach := coaches[0]
	if herr := bcrypt.CompareHashAndPassword([]byte(coach.Password), []byte(password)); herr != nil {
		return "", nil, fmt.Errorf("Invalid password")
	}

	token, err := as.generateAccessToken(coach)
	if err != nil {
		return "", nil, err
	}
	return token, coach, nil
}

func (as *authService) generateAccessToken(coach *types.Coach) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": coach.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign access token: %w", err)
	}
	return signed, nil
}

func (as *authService) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	coachID, perr := uuid.Parse(sub)
	if perr != nil {
		return uuid.Nil, fmt.Errorf("invalid subject claim")
	}
	return coachID, nil
}
