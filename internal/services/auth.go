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

	"github.com/coursebay/coursebay-backend/internal/apperr"
	"github.com/coursebay/coursebay-backend/internal/dto"
	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
	"github.com/coursebay/coursebay-backend/internal/repos"
	"github.com/coursebay/coursebay-backend/internal/requestdata"
	"github.com/coursebay/coursebay-backend/internal/types"
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (dto.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (dto.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ParseToken(tokenString string) (*requestdata.RequestData, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, input dto.RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperr.BadRequest("email is required")
	}
	if input.Role != types.RoleBuyer && input.Role != types.RoleSeller {
		return nil, apperr.BadRequest("role must be Buyer or Seller")
	}
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, apperr.Internal("failed to check email", err)
	}
	if exists {
		return nil, apperr.BadRequest("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}
	user := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hash),
		Role:        input.Role,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
	}
	if err := as.userRepo.Create(ctx, nil, user); err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}
	as.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (dto.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return dto.TokenPair{}, apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		return dto.TokenPair{}, apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return dto.TokenPair{}, apperr.Unauthorized("invalid email or password")
	}

	var pair dto.TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issued, issueErr := as.issueTokens(ctx, tx, user)
		if issueErr != nil {
			return issueErr
		}
		pair = issued
		return nil
	}); err != nil {
		return dto.TokenPair{}, apperr.Internal("failed to issue tokens", err)
	}
	return pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (dto.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return dto.TokenPair{}, apperr.Unauthorized("refresh token required")
	}

	var pair dto.TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, ftErr := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if ftErr != nil {
			return apperr.Internal("failed to fetch refresh token", ftErr)
		}
		if existing == nil || existing.ExpiresAt.Before(time.Now()) {
			return apperr.Unauthorized("refresh token invalid or expired")
		}
		user, uErr := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if uErr != nil {
			return apperr.Internal("failed to load user for refresh", uErr)
		}
		if user == nil {
			return apperr.Unauthorized("no user for refresh token")
		}
		if dErr := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); dErr != nil {
			return apperr.Internal("failed to rotate refresh token", dErr)
		}
		issued, issueErr := as.issueTokens(ctx, tx, user)
		if issueErr != nil {
			return issueErr
		}
		pair = issued
		return nil
	})
	if err != nil {
		return dto.TokenPair{}, err
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return apperr.Internal("failed to delete user tokens", err)
	}
	return nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (dto.TokenPair, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return dto.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if err := as.userTokenRepo.Create(ctx, tx, userToken); err != nil {
		return dto.TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// ParseToken validates an access token and returns the request identity the
// middleware stores on the gin context.
func (as *authService) ParseToken(tokenString string) (*requestdata.RequestData, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperr.Unauthorized("invalid user id in token")
	}
	return &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Role:        claims.Role,
	}, nil
}
