package commands

import (
	"context"
	"log/slog"
	"strings"

	"cedra-backend/internal/domain/company"
	"cedra-backend/internal/domain/user"
	"cedra-backend/internal/infra"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/pkg/password"
	"cedra-backend/internal/pkg/randid"
	"cedra-backend/internal/usecase/queries"
	"cedra-backend/internal/usecase/shared"
)

const tempPasswordLength = 12

type InviteResult struct {
	Created   bool
	UserID    string
	Role      string
	EmailSent bool
}

type ResetPasswordResult struct {
	EmailSent bool
}

type CompanyCommands interface {
	// Invite links an email to the inviter's primary company, provisioning a
	// local account when none exists. The find-or-create plus the membership
	// upsert run in one transaction; mail goes out after commit.
	Invite(ctx context.Context, inviterID, email, role string) (*InviteResult, error)
	// ResetMemberPassword issues a temporary password for a member of the
	// caller's primary company.
	ResetMemberPassword(ctx context.Context, callerID, targetUserID string) (*ResetPasswordResult, error)
}

type companyCommandsImpl struct {
	uow         shared.UnitOfWork
	companies   queries.CompanyQueries
	users       queries.UserReadStore
	memberships queries.MembershipReadStore
	mailer      Mailer
}

func NewCompanyCommands(uow shared.UnitOfWork, companies queries.CompanyQueries, users queries.UserReadStore, memberships queries.MembershipReadStore, mailer Mailer) CompanyCommands {
	return &companyCommandsImpl{
		uow:         uow,
		companies:   companies,
		users:       users,
		memberships: memberships,
		mailer:      mailer,
	}
}

func (c *companyCommandsImpl) Invite(ctx context.Context, inviterID, email, role string) (*InviteResult, error) {
	inviterCompany, err := c.companies.PrimaryCompany(ctx, inviterID)
	if err != nil {
		return nil, err
	}
	if !inviterCompany.IsCompanyAdmin {
		return nil, errs.ErrCompanyForbidden
	}

	normalizedEmail, err := user.NewEmail(email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	memberRole := company.NormalizeRole(role)

	// Display name defaults to the mailbox part of the address.
	displayName := strings.SplitN(normalizedEmail.Value(), "@", 2)[0]

	var (
		created      bool
		tempPassword string
		userID       string
	)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existingID, err := tx.Users().FindIDByEmail(ctx, normalizedEmail.Value())
		if err != nil {
			return err
		}

		if existingID == "" {
			tempPassword, err = randid.TempPassword(tempPasswordLength)
			if err != nil {
				return err
			}
			hash, err := password.HashPassword(tempPassword)
			if err != nil {
				return err
			}
			userID, err = randid.NewUserID()
			if err != nil {
				return err
			}
			if err := tx.Users().Create(ctx, shared.NewUser{
				ID:           userID,
				Email:        normalizedEmail.Value(),
				Name:         displayName,
				PasswordHash: &hash,
				Provider:     string(user.ProviderLocal),
			}); err != nil {
				return err
			}
			created = true
		} else {
			userID = existingID
		}

		return tx.Memberships().Upsert(ctx, company.Membership{
			UserID:    userID,
			CompanyID: inviterCompany.ID,
			Role:      memberRole,
		})
	})
	if err != nil {
		return nil, err
	}

	// Mail after commit; a delivery failure must not fail the invite.
	emailSent := false
	if created {
		if err := c.mailer.SendAccountInvite(ctx, normalizedEmail.Value(), tempPassword); err != nil {
			slog.Error("invite mail delivery failed", "to", normalizedEmail.Value(), "error", err.Error())
		} else {
			emailSent = true
		}
	} else {
		if err := c.mailer.SendCompanyNotice(ctx, normalizedEmail.Value(), memberRole.String()); err != nil {
			slog.Error("company notice delivery failed", "to", normalizedEmail.Value(), "error", err.Error())
		} else {
			emailSent = true
		}
	}

	return &InviteResult{
		Created:   created,
		UserID:    userID,
		Role:      memberRole.String(),
		EmailSent: emailSent,
	}, nil
}

func (c *companyCommandsImpl) ResetMemberPassword(ctx context.Context, callerID, targetUserID string) (*ResetPasswordResult, error) {
	callerCompany, err := c.companies.PrimaryCompany(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !callerCompany.IsCompanyAdmin {
		return nil, errs.ErrCompanyForbidden
	}

	// The target must belong to the caller's company.
	if _, err := c.memberships.Find(ctx, targetUserID, callerCompany.ID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrMemberNotFound)
		}
		return nil, err
	}

	target, err := c.users.FindByID(ctx, targetUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrMemberNotFound)
		}
		return nil, err
	}

	tempPassword, err := randid.TempPassword(tempPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := password.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdatePasswordHash(ctx, targetUserID, hash)
	})
	if err != nil {
		return nil, err
	}

	emailSent := false
	if err := c.mailer.SendPasswordReset(ctx, target.Email, callerCompany.Name, tempPassword); err != nil {
		slog.Error("password reset mail delivery failed", "to", target.Email, "error", err.Error())
	} else {
		emailSent = true
	}

	return &ResetPasswordResult{EmailSent: emailSent}, nil
}
