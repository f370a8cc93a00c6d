package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"gihanotis/internal/config"
	"gihanotis/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService validates admin credentials and manages session tokens.
type AuthService interface {
	Login(username, password string) (string, time.Time, error) // Returns JWT token, expiration time, and error
	ParseToken(tokenString string) (*models.Claims, error)
}

type authService struct {
	username     string
	passwordHash string
	secret       []byte
	sessionTTL   time.Duration
	logger       *zap.Logger
}

// NewAuthService hashes the configured admin password once at startup so the
// plaintext is not kept around for comparisons.
func NewAuthService(cfg *config.Config, logger *zap.Logger) (AuthService, error) {
	passwordHash, err := hashPassword(cfg.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &authService{
		username:     cfg.Admin.Username,
		passwordHash: passwordHash,
		secret:       []byte(cfg.Admin.SessionSecret),
		sessionTTL:   time.Duration(cfg.Admin.SessionTTLHours) * time.Hour,
		logger:       logger,
	}, nil
}

func (s *authService) Login(username, password string) (string, time.Time, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	if !verifyPassword(s.passwordHash, password) || !usernameOK {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(s.sessionTTL)
	claims := &models.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Admin logged in successfully", zap.String("username", username))
	return tokenString, expirationTime, nil
}

func (s *authService) ParseToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// hashPassword uses Argon2id to hash the password.
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	// Format: $argon2id$v=19$m=65536,t=1,p=4$BASE64_SALT$BASE64_HASH
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s", argon2.Version, 64*1024, 1, 4, encodedSalt, encodedHash), nil
}

// verifyPassword compares a plaintext password with an encoded Argon2id hash.
func verifyPassword(hashedPassword, password string) bool {
	sections := strings.Split(strings.TrimPrefix(hashedPassword, "$"), "$")
	// Expected format: ["argon2id", "v=19", "m=65536,t=1,p=4", "salt", "hash"]
	if len(sections) != 5 || sections[0] != "argon2id" {
		return false
	}

	var m, t, p uint32
	if _, err := fmt.Sscanf(sections[2], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false
	}

	decodedSalt, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		return false
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return false
	}

	comparisonHash := argon2.IDKey([]byte(password), decodedSalt, t, m, uint8(p), uint32(len(decodedHash)))
	return subtle.ConstantTimeCompare(comparisonHash, decodedHash) == 1
}
