package bootstrap

import (
	"cedra-backend/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.SMTPConfig { return cfg.SMTP },
		func(cfg config.Config) config.StripeConfig { return cfg.Stripe },
	),
)
