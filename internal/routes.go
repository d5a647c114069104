package internal

import (
	"net/http"
	"sidebard/internal/controllers"
	"sidebard/internal/providers"
)

func InitRoutes(sidebarController *controllers.SidebarController, chatsController *controllers.ChatsController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/admin/api/sidebar", http.HandlerFunc(sidebarController.GetSidebar))
	routers.Get("/admin/sidebar", http.HandlerFunc(sidebarController.GetSidebarHTML))
	routers.Get("/admin/api/sidebar/statistics", http.HandlerFunc(sidebarController.GetStatistics))
	routers.Put("/admin/api/sidebar/takeover", http.HandlerFunc(sidebarController.PutTakeover))
	routers.Get("/admin/api/sidebar/notifications", http.HandlerFunc(sidebarController.GetNotifications))

	routers.Get("/admin/api/sidebar/chats", http.HandlerFunc(chatsController.GetChats))
	routers.Put("/admin/api/sidebar/chats", http.HandlerFunc(chatsController.PutChats))
	routers.Put("/admin/api/sidebar/selected", http.HandlerFunc(chatsController.PutSelected))
	routers.Put("/admin/api/sidebar/loaded", http.HandlerFunc(chatsController.PutLoaded))
	return routers
}
