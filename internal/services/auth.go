package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/ctxutil"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

const minPasswordLength = 8

type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*types.User, error)
	// CreateUser registers a user with an explicit role. Used by the seed tool.
	CreateUser(ctx context.Context, name, email, password, role string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	ParseToken(tokenString string) (*ctxutil.RequestData, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	now          func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

func validateRegistration(name, email, password string) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "required"
	}
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if len(password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("at least %d characters", minPasswordLength)
	}
	return fields
}

func (as *authService) Register(ctx context.Context, name, email, password string) (*types.User, error) {
	return as.CreateUser(ctx, name, email, password, types.RoleStudent)
}

func (as *authService) CreateUser(ctx context.Context, name, email, password, role string) (*types.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if fields := validateRegistration(name, email, password); len(fields) > 0 {
		return nil, apierr.Validation("invalid_registration", errors.New("invalid registration"), fields)
	}
	if role != types.RoleAdmin {
		role = types.RoleStudent
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierr.Internal("hash_password_failed", err)
	}

	user := &types.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.userRepo.EmailExists(dbc, email)
		if err != nil {
			return apierr.Internal("check_email_failed", err)
		}
		if exists {
			return apierr.Conflict("email_taken", "an account with this email already exists")
		}
		if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
			return apierr.Internal("create_user_failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	invalid := apierr.Unauthorized("invalid_credentials", errors.New("invalid email or password"))
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, invalid
	}
	user, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", nil, apierr.Internal("load_user_failed", err)
	}
	if user == nil {
		return "", nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, invalid
	}
	tok, err := as.generateAccessToken(user)
	if err != nil {
		return "", nil, apierr.Internal("sign_token_failed", err)
	}
	return tok, user, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) ParseToken(tokenString string) (*ctxutil.RequestData, error) {
	if tokenString == "" {
		return nil, apierr.Unauthorized("unauthorized", errors.New("missing token"))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("failed to parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, apierr.Unauthorized("invalid_token", errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid user id in token: %w", err))
	}
	return &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       claims.Email,
		Role:        claims.Role,
	}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	rd, err := as.ParseToken(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := as.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, apierr.Internal("load_user_failed", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", "user not found")
	}
	return user, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
