package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// User / credential errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account suspended")

	// Company errors
	ErrNoCompany          = errors.New("no linked company")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrNotCompanyMember   = errors.New("user is not linked to this company")
	ErrMemberNotFound     = errors.New("member not found in company")
	ErrCompanyForbidden   = errors.New("company membership required")

	// Address errors
	ErrAddressCompanyRequired = errors.New("company id required for company address")

	// Checkout errors
	ErrAmountTooLow = errors.New("amount below minimum")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
