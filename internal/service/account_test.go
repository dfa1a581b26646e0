package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/repository"
)

type memoryAccounts struct {
	mu       sync.Mutex
	accounts []model.Account
}

func (m *memoryAccounts) Create(_ context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	account.ID = int64(len(m.accounts) + 1)
	account.CreatedAt = time.Now()
	m.accounts = append(m.accounts, *account)
	return nil
}

func (m *memoryAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memoryAccounts) GetByID(_ context.Context, id int64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func newTestAccountService() (*AccountService, *crypto.TokenIssuer) {
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour)
	return NewAccountService(&memoryAccounts{}, tokens), tokens
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     model.CredentialsRequest
		wantErr error
	}{
		{name: "empty email", req: model.CredentialsRequest{Password: "long-enough-password"}, wantErr: ErrEmailRequired},
		{name: "invalid email", req: model.CredentialsRequest{Email: "not an email", Password: "long-enough-password"}, wantErr: ErrEmailInvalid},
		{name: "display name", req: model.CredentialsRequest{Email: "Bob <bob@example.com>", Password: "long-enough-password"}, wantErr: ErrEmailInvalid},
		{name: "empty password", req: model.CredentialsRequest{Email: "test@example.com"}, wantErr: ErrPasswordRequired},
		{name: "short password", req: model.CredentialsRequest{Email: "test@example.com", Password: "short"}, wantErr: ErrPasswordTooShort},
	}

	svc, _ := newTestAccountService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newTestAccountService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.CredentialsRequest{Email: "  Alice@Example.com ", Password: "correct-horse-battery"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if reg.Account.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", reg.Account.Email)
	}

	claims, err := tokens.Validate(reg.Token)
	if err != nil {
		t.Fatalf("issued token should validate: %v", err)
	}
	if claims.AccountID != reg.Account.ID {
		t.Errorf("token account = %d, want %d", claims.AccountID, reg.Account.ID)
	}

	if _, err := svc.Register(ctx, model.CredentialsRequest{Email: "alice@example.com", Password: "another-long-password"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	login, err := svc.Login(ctx, model.CredentialsRequest{Email: "ALICE@example.com", Password: "correct-horse-battery"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if login.Account.ID != reg.Account.ID {
		t.Errorf("login account = %d, want %d", login.Account.ID, reg.Account.ID)
	}

	me, err := svc.Account(ctx, reg.Account.ID)
	if err != nil {
		t.Fatalf("Account() unexpected error: %v", err)
	}
	if me.Email != "alice@example.com" {
		t.Errorf("unexpected account %+v", me)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.CredentialsRequest{Email: "bob@example.com", Password: "correct-horse-battery"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	tests := []model.CredentialsRequest{
		{Email: "bob@example.com", Password: "wrong-password-here"},
		{Email: "nobody@example.com", Password: "correct-horse-battery"},
		{Email: "", Password: "correct-horse-battery"},
	}

	for _, req := range tests {
		if _, err := svc.Login(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q) expected ErrInvalidCredentials, got %v", req.Email, err)
		}
	}
}
