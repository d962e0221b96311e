package annotation

import (
	"github.com/yemtakip/yemtakip/internal/annotation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("annotation.service",
	fx.Provide(service.NewService),
)
