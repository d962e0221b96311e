package carrier

import (
	"github.com/yemtakip/yemtakip/internal/carrier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("carrier.service",
	fx.Provide(service.NewService),
)
