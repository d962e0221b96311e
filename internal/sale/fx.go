package sale

import (
	"github.com/yemtakip/yemtakip/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(service.NewService),
)
