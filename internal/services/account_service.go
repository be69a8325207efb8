package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
	"shopfront/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// AccountService manages the single local account.
type AccountService struct {
	Users *repos.UserRepo
	Cost  int
}

func NewAccountService(users *repos.UserRepo) *AccountService {
	return &AccountService{Users: users, Cost: bcrypt.DefaultCost}
}

// Register overwrites any previous account.
func (s *AccountService) Register(ctx context.Context, email, password, confirm string) error {
	email, ok := validate.Email(email)
	if !ok {
		return domain.Invalid("email", "enter a valid email address")
	}
	if !validate.Password(password) {
		return domain.Invalid("password", "password needs at least 6 characters and a digit")
	}
	if password != confirm {
		return domain.Invalid("confirm", "passwords do not match")
	}
	if err := s.store(ctx, email, password); err != nil {
		return err
	}
	applog.Audit(nil, "account.register", map[string]any{"email": email})
	return nil
}

// Login checks the stored account. A legacy plaintext record is accepted once
// and rewritten as a bcrypt hash.
func (s *AccountService) Login(ctx context.Context, email, password string, remember bool) (domain.Account, error) {
	email = strings.TrimSpace(email)
	acc, ok, err := s.Users.Get(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	if !ok || !strings.EqualFold(acc.Email, email) {
		applog.Security(nil, "account.login.fail", map[string]any{"email": email})
		return domain.Account{}, ErrBadCreds
	}

	switch {
	case acc.Hash != "":
		if bcrypt.CompareHashAndPassword([]byte(acc.Hash), []byte(password)) != nil {
			applog.Security(nil, "account.login.fail", map[string]any{"email": email})
			return domain.Account{}, ErrBadCreds
		}
	case acc.Password != "" && subtle.ConstantTimeCompare([]byte(acc.Password), []byte(password)) == 1:
		if err := s.store(ctx, acc.Email, password); err != nil {
			return domain.Account{}, err
		}
		applog.Security(nil, "account.password.upgrade", map[string]any{"email": acc.Email})
	default:
		applog.Security(nil, "account.login.fail", map[string]any{"email": email})
		return domain.Account{}, ErrBadCreds
	}

	if remember {
		err = s.Users.Remember(ctx, acc.Email)
	} else {
		err = s.Users.Forget(ctx)
	}
	if err != nil {
		return domain.Account{}, err
	}
	applog.Audit(nil, "account.login", map[string]any{"email": acc.Email, "remember": remember})
	return domain.Account{Email: acc.Email}, nil
}

func (s *AccountService) Remembered(ctx context.Context) (string, bool, error) {
	return s.Users.SavedEmail(ctx)
}

// ResetPassword replaces the password of the stored account matching email.
func (s *AccountService) ResetPassword(ctx context.Context, email, password, confirm string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Invalid("email", "email is required")
	}
	if !validate.ResetPassword(password) {
		return domain.Invalid("password", "password needs at least 6 characters with letters and digits")
	}
	if password != confirm {
		return domain.Invalid("confirm", "passwords do not match")
	}
	acc, ok, err := s.Users.Get(ctx)
	if err != nil {
		return err
	}
	if !ok || !strings.EqualFold(acc.Email, email) {
		return domain.Invalid("email", "no account registered with this email")
	}
	if err := s.store(ctx, acc.Email, password); err != nil {
		return err
	}
	applog.Security(nil, "account.password.reset", map[string]any{"email": acc.Email})
	return nil
}

func (s *AccountService) store(ctx context.Context, email, password string) error {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	return s.Users.Save(ctx, domain.Account{Email: email, Hash: string(hash)})
}
