package bootstrap

import (
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/infra/sessionstore"
	"cedra-backend/internal/pkg/clock"
	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/session"

	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		fx.Annotate(
			func(dbtx db.DBTX, clk clock.Clock, cfg config.Config) *sessionstore.PostgresIssuer {
				return sessionstore.New(dbtx, clk, cfg.Session.Lifetime)
			},
			fx.As(new(session.Issuer)),
		),
	),
)
