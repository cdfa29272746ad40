package subscription

import (
	"github.com/tourbase/tourbase/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription",
	fx.Provide(service.NewClient),
	fx.Provide(service.NewAccessor),
	fx.Provide(service.NewRefresher),
	fx.Invoke(service.RegisterRefresher),
)
