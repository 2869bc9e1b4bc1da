package notification

import (
	notificationdomain "github.com/smallbiznis/smartcenter/internal/notification/domain"
	notificationrepo "github.com/smallbiznis/smartcenter/internal/notification/repository"
	"github.com/smallbiznis/smartcenter/internal/notification/service"
	"github.com/smallbiznis/smartcenter/pkg/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("notification.service",
	fx.Provide(notificationrepo.Provide),
	fx.Provide(func(db *gorm.DB) repository.Repository[notificationdomain.Notification] {
		return repository.ProvideStore[notificationdomain.Notification](db)
	}),
	fx.Provide(service.NewService),
)
