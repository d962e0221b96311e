package trash

import (
	"github.com/yemtakip/yemtakip/internal/trash/service"
	"go.uber.org/fx"
)

var Module = fx.Module("trash.service",
	fx.Provide(service.NewService),
)
