package diagnostics

import (
	"github.com/tourbase/tourbase/internal/diagnostics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("diagnostics",
	fx.Provide(service.New),
)
