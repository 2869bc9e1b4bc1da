package merchantservice

import (
	"github.com/smallbiznis/smartcenter/internal/merchantservice/repository"
	"github.com/smallbiznis/smartcenter/internal/merchantservice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("merchantservice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
