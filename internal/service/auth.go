package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cookduck/backend/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenClaims is the authenticated identity carried by a JWT.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
}

// AuthService handles registration, login, and token validation.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates an AuthService backed by the given database.
func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a user and returns a signed token.
func (s *AuthService) Register(email, username, password string) (string, error) {
	var existing model.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := model.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", err
	}
	return s.generateToken(&user)
}

// Login checks credentials and returns a signed token.
func (s *AuthService) Login(email, password string) (string, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.generateToken(&user)
}

// ValidateToken parses a token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	return &TokenClaims{UserID: userID, Username: username}, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.jwtSecret))
}
