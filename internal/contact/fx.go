package contact

import (
	"github.com/yemtakip/yemtakip/internal/contact/repository"
	"github.com/yemtakip/yemtakip/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
