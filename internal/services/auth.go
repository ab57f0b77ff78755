package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/repos"
  "github.com/a-beduc/dh-toolbox/internal/requestdata"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

var (
  ErrInvalidCredentials = errors.New("invalid username or password")
  ErrInvalidToken       = errors.New("invalid or expired token")
  ErrAccountExists      = errors.New("username or email already taken")
)

type JWTClaims struct {
  jwt.RegisteredClaims
}

type AuthService interface {
  Register(ctx context.Context, username, email, password string) (*types.Account, error)
  Login(ctx context.Context, username, password string) (string, string, error)
  Refresh(ctx context.Context) (string, string, error)
  Logout(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db               *gorm.DB
  log              *logger.Logger
  accountRepo      repos.AccountRepo
  accountTokenRepo repos.AccountTokenRepo
  jwtSecretKey     string
  accessTTL        time.Duration
  refreshTTL       time.Duration
}

func NewAuthService(
  db *gorm.DB,
  baseLog *logger.Logger,
  accountRepo repos.AccountRepo,
  accountTokenRepo repos.AccountTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    db:               db,
    log:              serviceLog,
    accountRepo:      accountRepo,
    accountTokenRepo: accountTokenRepo,
    jwtSecretKey:     jwtSecretKey,
    accessTTL:        accessTTL,
    refreshTTL:       refreshTTL,
  }
}

func (as *authService) Register(ctx context.Context, username, email, password string) (*types.Account, error) {
  username = strings.TrimSpace(username)
  email = strings.ToLower(strings.TrimSpace(email))
  if username == "" || email == "" || password == "" {
    return nil, fmt.Errorf("username, email and password are required")
  }
  if _, err := as.accountRepo.GetByEmail(ctx, nil, email); err == nil {
    return nil, ErrAccountExists
  } else if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, fmt.Errorf("check email: %w", err)
  }
  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return nil, fmt.Errorf("hash password: %w", err)
  }
  account := &types.Account{
    ID:       uuid.New(),
    Username: username,
    Email:    email,
    Password: string(hashed),
  }
  if err := as.accountRepo.Create(ctx, nil, account); err != nil {
    return nil, err
  }
  as.log.Info("account registered", "account_id", account.ID, "username", username)
  return account, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (string, string, error) {
  account, err := as.accountRepo.GetByUsername(ctx, nil, strings.TrimSpace(username))
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return "", "", ErrInvalidCredentials
    }
    return "", "", fmt.Errorf("load account: %w", err)
  }
  if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
    return "", "", ErrInvalidCredentials
  }

  var accessToken, refreshToken string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := as.accountTokenRepo.DeleteExpired(ctx, tx); err != nil {
      return fmt.Errorf("sweep expired tokens: %w", err)
    }
    if err := as.accountTokenRepo.DeleteByAccountID(ctx, tx, account.ID); err != nil {
      return fmt.Errorf("clear previous tokens: %w", err)
    }
    tok, err := as.generateAccessToken(account)
    if err != nil {
      return fmt.Errorf("generate access token: %w", err)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    row := types.AccountToken{
      ID:           uuid.New(),
      AccountID:    account.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    return as.accountTokenRepo.Create(ctx, tx, &row)
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.RefreshToken == "" {
    return "", "", ErrInvalidToken
  }

  var accessToken, newRefreshToken string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, err := as.accountTokenRepo.GetByRefreshToken(ctx, tx, rd.RefreshToken)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return ErrInvalidToken
      }
      return fmt.Errorf("load refresh token: %w", err)
    }
    if existing.ExpiresAt.Before(time.Now()) {
      return ErrInvalidToken
    }
    account, err := as.accountRepo.GetByID(ctx, tx, existing.AccountID)
    if err != nil {
      return fmt.Errorf("load account for refresh: %w", err)
    }
    tok, err := as.generateAccessToken(account)
    if err != nil {
      return fmt.Errorf("generate access token: %w", err)
    }
    accessToken = tok
    newRefreshToken = uuid.New().String()
    row := types.AccountToken{
      ID:           uuid.New(),
      AccountID:    account.ID,
      AccessToken:  accessToken,
      RefreshToken: newRefreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if err := as.accountTokenRepo.Create(ctx, tx, &row); err != nil {
      return fmt.Errorf("create rotated token: %w", err)
    }
    return tx.Delete(existing).Error
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, newRefreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.AccountID == uuid.Nil {
    return ErrInvalidToken
  }
  return as.accountTokenRepo.DeleteByAccountID(ctx, nil, rd.AccountID)
}

func (as *authService) generateAccessToken(account *types.Account) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   account.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, ErrInvalidToken
  }
  parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("parse token: %w", err)
  }
  claims, ok := parsed.Claims.(*JWTClaims)
  if !ok || !parsed.Valid {
    return ctx, ErrInvalidToken
  }
  accountID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("invalid account id in token: %w", err)
  }
  row, err := as.accountTokenRepo.GetByAccessToken(ctx, nil, tokenString)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return ctx, ErrInvalidToken
    }
    return ctx, fmt.Errorf("load token row: %w", err)
  }
  rd := &requestdata.RequestData{
    TokenString:  tokenString,
    RefreshToken: row.RefreshToken,
    AccountID:    accountID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
