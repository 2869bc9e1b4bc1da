package slab

import (
	"github.com/smallbiznis/smartcenter/internal/slab/repository"
	"github.com/smallbiznis/smartcenter/internal/slab/service"
	"go.uber.org/fx"
)

var Module = fx.Module("slab.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
