package bootstrap

import (
	"cedra-backend/internal/infra/mail"
	"cedra-backend/internal/usecase/commands"

	"go.uber.org/fx"
)

var MailModule = fx.Module("mail",
	fx.Provide(
		fx.Annotate(
			mail.NewSMTPMailer,
			fx.As(new(commands.Mailer)),
		),
	),
)
