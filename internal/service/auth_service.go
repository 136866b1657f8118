package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/apierror"
)

// AuthService issues and validates JWT pairs. Users and refresh tokens live
// in Postgres; refresh tokens are single use.
type AuthService struct {
	users      *repository.UserRepository
	tokens     *repository.TokenRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users *repository.UserRepository, tokens *repository.TokenRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (model.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}
	if err != nil {
		return model.TokenPair{}, err
	}
	if !user.Active {
		return model.TokenPair{}, apierror.New("FORBIDDEN", "account is disabled", "", http.StatusForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.TokenPair{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (model.AuthUser, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	role = strings.ToLower(strings.TrimSpace(role))

	if username == "" || password == "" {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest)
	}
	if role == "" {
		role = "customer"
	}
	if role != "admin" && role != "staff" && role != "customer" {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "invalid role", role, http.StatusBadRequest)
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return model.AuthUser{}, err
	}
	if exists {
		return model.AuthUser{}, apierror.New("ALREADY_EXISTS", "username already exists", username, http.StatusConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued for its owner.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return model.TokenPair{}, err
	}

	ownerID, err := s.tokens.Validate(ctx, refreshToken)
	if err != nil || ownerID != claims.UserID {
		return model.TokenPair{}, apierror.New("UNAUTHORIZED", "refresh token is invalid", "", http.StatusUnauthorized)
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return model.TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return model.TokenPair{}, apierror.New("UNAUTHORIZED", "user not found", "", http.StatusUnauthorized)
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthService) ValidateToken(tokenString string, expectedType string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.New("UNAUTHORIZED", "invalid token signing method", "", http.StatusUnauthorized)
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.New("UNAUTHORIZED", "invalid token", "", http.StatusUnauthorized)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.New("UNAUTHORIZED", "invalid token claims", "", http.StatusUnauthorized)
	}

	typ, _ := claimsMap["typ"].(string)
	if expectedType != "" && typ != expectedType {
		return nil, apierror.New("UNAUTHORIZED", "invalid token type", "", http.StatusUnauthorized)
	}

	claims := &model.AuthClaims{Type: typ}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.UserID == "" {
		return nil, apierror.New("UNAUTHORIZED", "invalid token subject", "", http.StatusUnauthorized)
	}

	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AuthUser{}, apierror.New("NOT_FOUND", "user not found", userID, http.StatusNotFound)
	}
	if err != nil {
		return model.AuthUser{}, err
	}
	return model.AuthUser{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (model.TokenPair, error) {
	now := time.Now().UTC()

	accessToken, err := s.signToken(jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"typ":      "access",
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.signToken(jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"typ":      "refresh",
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.refreshTTL).Unix(),
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.tokens.Store(ctx, refreshToken, user.ID, now.Add(s.refreshTTL)); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         model.AuthUser{ID: user.ID, Username: user.Username, Role: user.Role},
	}, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
