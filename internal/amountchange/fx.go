package amountchange

import (
	"github.com/smallbiznis/smartcenter/internal/amountchange/repository"
	"github.com/smallbiznis/smartcenter/internal/amountchange/service"
	"go.uber.org/fx"
)

var Module = fx.Module("amountchange.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
