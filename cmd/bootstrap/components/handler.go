package components

import (
	"cedra-backend/internal/handler"
	"cedra-backend/internal/handler/api"
	"cedra-backend/internal/handler/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCompanyHandler,
		api.NewAddressHandler,
		api.NewProductHandler,
		api.NewCheckoutHandler,
		middleware.NewAuthMiddleware,
		prometheus.NewRegistry,
		NewMetrics,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewMetrics(registry *prometheus.Registry) *middleware.Metrics {
	return middleware.NewMetrics(registry)
}

func NewHandlers(
	auth *api.AuthHandler,
	company *api.CompanyHandler,
	address *api.AddressHandler,
	product *api.ProductHandler,
	checkout *api.CheckoutHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Company:  company,
		Address:  address,
		Product:  product,
		Checkout: checkout,
	}
}
