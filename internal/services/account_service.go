package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/glucotrack/glucotrack/internal/database"
	"github.com/glucotrack/glucotrack/internal/domain"
	apperrors "github.com/glucotrack/glucotrack/internal/errors"
	"github.com/glucotrack/glucotrack/internal/interfaces"
	"github.com/glucotrack/glucotrack/internal/logger"
	"github.com/glucotrack/glucotrack/internal/repository"
	"github.com/glucotrack/glucotrack/internal/utils"
)

// IdentityClient registers a person with the external patient-identity
// service and returns the raw response payload.
type IdentityClient interface {
	RegisterPatient(ctx context.Context, firstName, lastName, dob string) ([]byte, error)
}

// AccountService runs the provisioning pipeline and the login check.
type AccountService struct {
	accounts     repository.AccountRepository
	achievements interfaces.AchievementServiceInterface
	identity     IdentityClient
}

func NewAccountService(accounts repository.AccountRepository, achievements interfaces.AchievementServiceInterface, identity IdentityClient) *AccountService {
	return &AccountService{
		accounts:     accounts,
		achievements: achievements,
		identity:     identity,
	}
}

// Register provisions a new account. The steps gate each other strictly:
// validate, uniqueness check, identity registration, credential hashing,
// account insert, ledger bootstrap. The identity call crosses a network
// boundary and cannot share a transaction with the local inserts, so it
// runs before them: a failed insert afterwards orphans the identity record,
// which is accepted and logged rather than compensated.
func (s *AccountService) Register(ctx context.Context, registration domain.Registration) (uint, error) {
	if registration.Username == "" || registration.Password == "" ||
		registration.FirstName == "" || registration.LastName == "" || registration.DOB == "" {
		return 0, apperrors.NewValidationError(
			"Not all required fields are present. Ensure username, password, firstname, lastname, and dob are passed as part of the request.")
	}

	dob, err := utils.ParseDOB(registration.DOB)
	if err != nil {
		return 0, apperrors.NewValidationError("Not a valid dob, ensure its formatted as YYYY-MM-DD")
	}

	existing, err := s.accounts.FindByUsername(ctx, registration.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, apperrors.NewConflictError("username already exists")
	}

	payload, err := s.identity.RegisterPatient(ctx, registration.FirstName, registration.LastName, registration.DOB)
	if err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}

	account := &database.Account{
		Username:     registration.Username,
		Password:     string(hash),
		FirstName:    registration.FirstName,
		MiddleName:   registration.MiddleName,
		LastName:     registration.LastName,
		DOB:          dob,
		FHIRResponse: string(payload),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// The identity record already exists upstream and has no local
		// owner now. There is no compensating call; leave a trace for
		// manual reconciliation.
		logger.Warn("Identity record orphaned by failed account insert",
			"username", registration.Username)
		return 0, err
	}

	if err := s.achievements.Bootstrap(ctx, account.ID); err != nil {
		// The account row stays. Read paths treat the missing ledger as
		// "not yet bootstrapped" rather than failing unrelated requests.
		logger.Error("Ledger bootstrap failed after account creation",
			"account_id", account.ID)
		return 0, err
	}

	return account.ID, nil
}

// ErrInvalidCredentials is returned by Authenticate when the username is
// unknown or the password does not match; callers must not learn which.
var ErrInvalidCredentials = apperrors.New(apperrors.ErrorTypeValidation,
	"INVALID_CREDENTIALS", "Invalid username or password")

// Authenticate performs the trivial username/password check.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.AuthenticatedUser, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("Username and password are required")
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &domain.AuthenticatedUser{
		ID:        account.ID,
		Username:  account.Username,
		FirstName: account.FirstName,
	}, nil
}
