package controllers

import (
	"sidebard/internal/models"
	"sidebard/internal/navigation"
	"sidebard/internal/services"
	"sidebard/internal/structures"
	"sidebard/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *models.ChatsStore
	client   *testutil.MockAdminClient
	notifier services.NotificationServiceInterface
	sidebar  *SidebarController
	chats    *ChatsController
	health   *HealthController
}

func newFixture(t *testing.T, owner bool) *fixture {
	t.Helper()
	conf := &structures.Config{
		Upstream: structures.UpstreamConfig{Timeout: 2 * time.Second},
	}
	logger := &testutil.MockLogger{}
	f := &fixture{
		store:    models.NewChatsStore(),
		client:   &testutil.MockAdminClient{},
		notifier: services.NewNotificationService(logger),
	}
	statistics := services.NewStatisticService(conf, f.client, testutil.NewMockCache(), f.store, logger)
	takeover := services.NewTakeoverService(conf, f.client, f.store, f.notifier, logger, &testutil.MockMetrics{})
	t.Cleanup(func() {
		takeover.Close()
		statistics.Close()
	})
	sidebar := services.NewSidebarService(f.store, statistics, takeover, navigation.NewMenuBuilder(owner))

	f.sidebar = NewSidebarController(logger, sidebar, takeover, f.notifier)
	f.chats = NewChatsController(logger, f.store)
	f.health = NewHealthController(f.store, f.notifier)
	return f
}

func (f *fixture) selectChat(t *testing.T, takeOver bool) {
	t.Helper()
	require.NoError(t, f.store.Dispatch(models.ReceiveChats([]*models.Chat{
		testutil.Chat(-1, takeOver, "first"),
		testutil.Chat(-2, false, "second"),
	})))
	require.NoError(t, f.store.Dispatch(models.Select(-1)))
	require.NoError(t, f.store.Dispatch(models.LoadSelected(testutil.Chat(-1, takeOver, "first"))))
}
