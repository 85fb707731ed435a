package service

import (
	"souqeats/internal/auth"
	"souqeats/internal/domain"
)

// AccountService handles sign-up, sign-in and session resolution.
type AccountService struct {
	repo AccountRepository
}

func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// SignUp registers a new customer account and returns a session token.
// Staff roles are assigned out of band, never through sign-up.
func (s *AccountService) SignUp(email, password string) (*domain.Profile, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.repo.CreateAccount(account); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, "", err
	}

	return &domain.Profile{UserID: account.ID, Email: account.Email, Role: account.Role}, token, nil
}

// SignIn checks the credentials and returns a session token. Unknown
// emails and wrong passwords come back as the same error.
func (s *AccountService) SignIn(email, password string) (*domain.Profile, string, error) {
	account, err := s.repo.GetAccountByEmail(email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, "", err
	}

	return &domain.Profile{UserID: account.ID, Email: account.Email, Role: account.Role}, token, nil
}

// SessionProfile resolves a token to the caller's profile. The role is
// re-read from storage on every call so revoked staff lose access without
// waiting for token expiry; any failure falls back to an anonymous
// customer profile.
func (s *AccountService) SessionProfile(token string) domain.Profile {
	anonymous := domain.Profile{Role: domain.RoleCustomer}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return anonymous
	}

	profile, err := s.repo.GetProfile(claims.UserID)
	if err != nil {
		return domain.Profile{UserID: claims.UserID, Email: claims.Email, Role: domain.RoleCustomer}
	}
	return *profile
}
