package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"kvauth/internal/apperrors"
	"kvauth/internal/models"
	"kvauth/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig carries the token settings of an AuthService.
type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	StaticBearerToken string // accepted verbatim by AuthorizeHeader when non-empty
}

// AuthService handles registration, token issuance and token checks.
type AuthService struct {
	userRepo    repositories.UserRepository
	publisher   EventPublisher
	jwtSecret   []byte
	tokenTTL    time.Duration
	staticToken string
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher, cfg AuthConfig) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		publisher:   publisher,
		jwtSecret:   []byte(cfg.JWTSecret),
		tokenTTL:    cfg.TokenTTL,
		staticToken: cfg.StaticBearerToken,
	}
}

// RegisterInput is a registration request that already passed schema
// validation. Age and Gender are pointers so absence can be told apart from
// zero values.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Age      *int
	Gender   *string
}

// RegisterUser validates and persists a new user. Checks run in a fixed
// order and the first failing one is returned.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, apperrors.ErrInvalidRequest
	}

	if exists, err := s.usernameExists(ctx, in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrUsernameExists
	}
	if exists, err := s.emailExists(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailExists
	}
	if !IsValidPassword(in.Password) {
		return nil, apperrors.ErrInvalidPassword
	}
	if in.Age == nil || *in.Age < 0 {
		return nil, apperrors.ErrInvalidAge
	}
	if in.Gender == nil {
		return nil, apperrors.ErrGenderRequired
	}

	hashedPassword, err := HashPassword(in.Password, bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashedPassword,
		FullName: in.FullName,
		Age:      *in.Age,
		Gender:   *in.Gender,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race with a concurrent registration.
			if exists, lookupErr := s.usernameExists(ctx, in.Username); lookupErr == nil && exists {
				return nil, apperrors.ErrUsernameExists
			}
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to register user: %w", err))
	}

	publish(s.publisher, EventUserRegistered, map[string]interface{}{
		"user_id":  user.UserID,
		"username": user.Username,
	})
	return user, nil
}

func (s *AuthService) usernameExists(ctx context.Context, username string) (bool, error) {
	return userFound(s.userRepo.GetByUsername(ctx, username))
}

func (s *AuthService) emailExists(ctx context.Context, email string) (bool, error) {
	return userFound(s.userRepo.GetByEmail(ctx, email))
}

func userFound(user *models.User, err error) (bool, error) {
	switch {
	case err == nil:
		return user != nil, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, apperrors.Internal(err)
	}
}

// TokenGrant is the result of a successful token request.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessClaims are the claims carried by an issued access token.
type AccessClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// IssueToken authenticates username/password and signs an access token
// carrying the username and an absolute expiry.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (*TokenGrant, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal(err)
	}
	if !CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	claims := AccessClaims{
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &TokenGrant{
		AccessToken: tokenString,
		ExpiresIn:   int(s.tokenTTL / time.Second),
	}, nil
}

// ValidateToken parses an access token, checking its HS256 signature and
// expiry.
func (s *AuthService) ValidateToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Username == "" || claims.ExpiresAt == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthorizeHeader checks an Authorization header of the form
// "<scheme> <token>". Only the token field is inspected: it must be a valid
// access token or, when configured, the static bearer token. Claims are nil
// when the static token was presented.
func (s *AuthService) AuthorizeHeader(header string) (*AccessClaims, error) {
	if header == "" {
		return nil, apperrors.ErrInvalidToken.WithMessage("Authorization header is required")
	}

	fields := strings.Split(header, " ")
	if len(fields) < 2 || fields[1] == "" {
		return nil, apperrors.ErrInvalidToken.WithMessage("Authorization header format must be '<scheme> <token>'")
	}
	token := fields[1]

	if s.staticToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.staticToken)) == 1 {
		return nil, nil
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.Wrap(err)
	}
	return claims, nil
}
