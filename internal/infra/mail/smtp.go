// Package mail delivers operational mail over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/commands"
)

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

var _ commands.Mailer = (*SMTPMailer)(nil)

func (m *SMTPMailer) SendAccountInvite(ctx context.Context, to, tempPassword string) error {
	body := fmt.Sprintf(
		"Bonjour,\n\n"+
			"Un compte vient d'être créé pour vous.\n\n"+
			"Identifiant : %s\nMot de passe temporaire : %s\n\n"+
			"Merci de changer ce mot de passe dès votre première connexion.\n",
		to, tempPassword,
	)
	return m.send(ctx, to, "Votre compte a été créé", body)
}

func (m *SMTPMailer) SendCompanyNotice(ctx context.Context, to, role string) error {
	body := fmt.Sprintf(
		"Bonjour,\n\n"+
			"Votre compte a été rattaché à une société avec le rôle « %s ».\n",
		role,
	)
	return m.send(ctx, to, "Votre compte a été rattaché à une société", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, companyName, tempPassword string) error {
	body := fmt.Sprintf(
		"Bonjour,\n\n"+
			"Un administrateur de %s a réinitialisé votre mot de passe.\n\n"+
			"Mot de passe temporaire : %s\n\n"+
			"Merci de le changer dès votre prochaine connexion.\n",
		companyName, tempPassword,
	)
	return m.send(ctx, to, "Réinitialisation de votre mot de passe", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.FromAddress()); err != nil {
		return errs.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errs.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTimeout(m.cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.User),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return errs.Wrap(err, "failed to build smtp client")
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to send mail")
	}
	return nil
}
