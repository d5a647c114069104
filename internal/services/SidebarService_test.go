package services

import (
	"context"
	"sidebard/internal/models"
	"sidebard/internal/navigation"
	"sidebard/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSidebarService(t *testing.T, store *models.ChatsStore, owner bool) (SidebarServiceInterface, *testutil.MockAdminClient) {
	t.Helper()
	client := &testutil.MockAdminClient{
		FindTodayFn: func(context.Context, int64, models.VerificationStatus) (*models.TodayStatistics, error) {
			return &models.TodayStatistics{
				PassedStatistic:  &models.DailyStatistic{VerificationsCount: 5},
				WrongedStatistic: &models.DailyStatistic{VerificationsCount: 1},
			}, nil
		},
	}
	logger := &testutil.MockLogger{}
	statistics := NewStatisticService(testConfig(), client, testutil.NewMockCache(), store, logger)
	takeover := NewTakeoverService(testConfig(), client, store, NewNotificationService(logger), logger, &testutil.MockMetrics{})
	t.Cleanup(func() {
		takeover.Close()
		statistics.Close()
	})
	return NewSidebarService(store, statistics, takeover, navigation.NewMenuBuilder(owner)), client
}

func TestSidebarService_WaitReturnsCounters(t *testing.T) {
	svc, _ := newSidebarService(t, selectedStore(t, true), false)

	sidebar := svc.Sidebar(context.Background(), "/admin/chats/-1/scheme", true)
	require.NotNil(t, sidebar.Admin)
	assert.Nil(t, sidebar.System)

	footer := sidebar.Admin.Footer
	require.NotNil(t, footer)
	assert.Equal(t, navigation.FooterPanel, footer.Kind)
	assert.False(t, footer.Statistics.Computing)
	assert.Equal(t, 5, footer.Statistics.Passed)
	assert.Equal(t, 1, footer.Statistics.Failed)
	assert.Equal(t, navigation.LabelTakenOver, footer.TakeoverLabel)
	assert.Equal(t, models.TakeoverOn, footer.Takeover.Phase)
}

func TestSidebarService_OwnerGetsSystemSection(t *testing.T) {
	svc, _ := newSidebarService(t, selectedStore(t, false), true)
	sidebar := svc.Sidebar(context.Background(), "/admin/sys/logs", false)
	require.NotNil(t, sidebar.System)
	assert.True(t, sidebar.OnOwnerMenu)
}

func TestSidebarService_StatisticsWithoutSelection(t *testing.T) {
	svc, client := newSidebarService(t, models.NewChatsStore(), false)

	view, requested, err := svc.Statistics(context.Background(), true)
	assert.NoError(t, err)
	assert.False(t, requested)
	assert.True(t, view.Computing)
	assert.Equal(t, 0, client.FindTodayCallCount())
}

func TestSidebarService_StatisticsComputingUntilFetched(t *testing.T) {
	release := make(chan struct{})
	store := selectedStore(t, false)
	svc, client := newSidebarService(t, store, false)
	client.FindTodayFn = func(context.Context, int64, models.VerificationStatus) (*models.TodayStatistics, error) {
		<-release
		return &models.TodayStatistics{}, nil
	}

	view, requested, err := svc.Statistics(context.Background(), false)
	assert.NoError(t, err)
	assert.True(t, requested)
	assert.True(t, view.Computing)

	close(release)
	view, requested, err = svc.Statistics(context.Background(), true)
	assert.NoError(t, err)
	assert.True(t, requested)
	assert.Equal(t, models.StatisticsView{}, view)
}
