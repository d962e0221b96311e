package audit

import (
	"github.com/yemtakip/yemtakip/internal/audit/repository"
	"github.com/yemtakip/yemtakip/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
