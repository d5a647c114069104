//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sidebard/internal"
	"sidebard/internal/controllers"
	"sidebard/internal/models"
	"sidebard/internal/navigation"
	"sidebard/internal/persistence"
	"sidebard/internal/providers"
	"sidebard/internal/services"
	"sidebard/internal/structures"
	"sidebard/internal/upstream"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		models.NewChatsStore,
		wire.Bind(new(providers.ChatsCounter), new(*models.ChatsStore)),
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		ownerFlag,
		navigation.NewMenuBuilder,

		upstream.NewAdminClient,
		services.NewNotificationService,
		services.NewStatisticService,
		services.NewTakeoverService,
		services.NewSidebarService,
		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,
		controllers.NewSidebarController,
		controllers.NewChatsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
