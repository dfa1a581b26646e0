package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/repository"
)

// MinAccountPasswordLength is the shortest password accepted for API accounts.
const MinAccountPasswordLength = 12

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailInvalid       = errors.New("email is not a valid address")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 12 characters")
	ErrEmailTaken         = errors.New("email already taken")
)

// AccountStore persists API accounts.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}

// AccountService registers and authenticates API accounts.
type AccountService struct {
	store  AccountStore
	tokens *crypto.TokenIssuer
}

// NewAccountService creates a new AccountService.
func NewAccountService(store AccountStore, tokens *crypto.TokenIssuer) *AccountService {
	return &AccountService{store: store, tokens: tokens}
}

// Register creates an account and returns a bearer token for it.
func (s *AccountService) Register(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}
	switch {
	case req.Password == "":
		return model.AuthResponse{}, ErrPasswordRequired
	case len(req.Password) < MinAccountPasswordLength:
		return model.AuthResponse{}, ErrPasswordTooShort
	}

	hash, err := crypto.HashCredential(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	account := &model.Account{Email: email, AuthHash: hash}
	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.authResponse(account)
}

// Login checks the credentials and returns a bearer token.
// Unknown emails and wrong passwords are reported identically.
func (s *AccountService) Login(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyCredential(req.Password, account.AuthHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.authResponse(account)
}

// Account returns the public view of an account.
func (s *AccountService) Account(ctx context.Context, id int64) (model.AccountResponse, error) {
	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.AccountResponse{}, err
	}
	return toAccountResponse(account), nil
}

func (s *AccountService) authResponse(account *model.Account) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, Account: toAccountResponse(account)}, nil
}

func toAccountResponse(a *model.Account) model.AccountResponse {
	return model.AccountResponse{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrEmailInvalid
	}
	return email, nil
}
