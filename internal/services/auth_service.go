package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories"
	"tours/internal/utils"
)

var errBadCredentials = domain.UnauthorizedError{Msg: "Invalid email/username or password"}

// AuthService issues and verifies HS256 tokens.
type AuthService struct {
	DB        *sql.DB
	Secret    []byte
	TTL       time.Duration
	RequestID string
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s AuthService) users() repositories.UserRepo {
	return repositories.UserRepo{DB: sharedDB(s.DB)}
}

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 24 * time.Hour
}

func (s AuthService) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	u := models.User{
		Name:      utils.NormalizeSpace(in.Name),
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      domain.RoleUser,
		Status:    "active",
		CreatedAt: utils.Now(),
	}
	if u.Name == "" || u.Username == "" || u.Email == "" {
		return models.User{}, domain.ValidationError{Field: "user", Msg: "name, username and email are required"}
	}
	if len(in.Password) < 6 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, internal(err)
	}
	u.PasswordHash = string(hash)

	id, err := s.users().Create(ctx, u)
	if err != nil {
		return models.User{}, writeErr("user", "email or username already registered", err)
	}
	u.ID = id
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", id))
	return u, nil
}

// Login accepts an email or username and returns a signed token.
func (s AuthService) Login(ctx context.Context, in models.LoginInput) (string, models.User, error) {
	u, err := s.users().FindByLogin(ctx, in.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.User{}, errBadCredentials
	}
	if err != nil {
		return "", models.User{}, internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return "", models.User{}, errBadCredentials
	}
	if u.Status != "" && u.Status != "active" {
		return "", models.User{}, domain.ForbiddenError{Msg: "account is not active"}
	}
	token, err := s.IssueToken(u)
	if err != nil {
		return "", models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return token, u, nil
}

func (s AuthService) IssueToken(u models.User) (string, error) {
	if len(s.Secret) == 0 {
		return "", domain.InternalError{Msg: "jwt secret not configured"}
	}
	at := utils.Now()
	claims := Claims{
		UserID:   u.ID,
		Role:     u.Role,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(at),
			ExpiresAt: jwt.NewNumericDate(at.Add(s.ttl())),
			Subject:   fmt.Sprint(u.ID),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", internal(err)
	}
	return signed, nil
}

// ParseToken verifies signature, algorithm and expiry.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	if len(s.Secret) == 0 {
		return domain.RequestContext{}, errors.New("jwt secret not configured")
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(utils.Now))
	if err != nil {
		return domain.RequestContext{}, err
	}
	return domain.RequestContext{
		UserID:   domain.ID(claims.UserID),
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// SeedAdmin creates or resets the admin account.
func (s AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 6 {
		return domain.ValidationError{Field: "admin", Msg: "email and a password of at least 6 characters are required"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return internal(err)
	}
	username, _, _ := strings.Cut(email, "@")
	err = s.users().UpsertAdmin(ctx, models.User{
		Name:         "Administrator",
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    utils.Now(),
	})
	if err != nil {
		return internal(err)
	}
	utils.LogEvent(s.RequestID, "auth", "seed_admin", "email="+email)
	return nil
}

func (s AuthService) Profile(ctx context.Context, actor domain.RequestContext) (models.User, error) {
	if !actor.Authenticated() {
		return models.User{}, domain.UnauthorizedError{}
	}
	u, err := s.users().Get(ctx, int64(actor.UserID))
	if err != nil {
		return models.User{}, lookupErr("user", err)
	}
	return u, nil
}
