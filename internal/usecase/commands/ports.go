package commands

import "context"

// Mailer delivers operational mail. Delivery failures are reported to the
// caller as a flag, never as an operation failure: by the time mail goes out
// the mutating step has already committed.
type Mailer interface {
	// SendAccountInvite mails credentials for an account that was just
	// provisioned by a company admin.
	SendAccountInvite(ctx context.Context, to, tempPassword string) error
	// SendCompanyNotice tells an existing user they were added to a company.
	SendCompanyNotice(ctx context.Context, to, role string) error
	// SendPasswordReset mails a temporary password after an admin reset.
	SendPasswordReset(ctx context.Context, to, companyName, tempPassword string) error
}

// PaymentGateway creates payment intents with an external processor. Amounts
// are in minor currency units.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}
