package services

import (
	"sidebard/internal/models"
	"sidebard/internal/structures"
	"sidebard/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Upstream: structures.UpstreamConfig{
			BaseURL: "http://admin.test",
			Timeout: 2 * time.Second,
		},
		Statistics: structures.StatisticsConfig{
			RevalidateAfter: 30 * time.Second,
		},
	}
}

// selectedStore returns a loaded store with chats -1 and -2, -1 selected and
// its full copy loaded.
func selectedStore(t *testing.T, takeOver bool) *models.ChatsStore {
	t.Helper()
	store := models.NewChatsStore()
	require.NoError(t, store.Dispatch(models.ReceiveChats([]*models.Chat{
		testutil.Chat(-1, takeOver, "first"),
		testutil.Chat(-2, false, "second"),
	})))
	require.NoError(t, store.Dispatch(models.Select(-1)))
	require.NoError(t, store.Dispatch(models.LoadSelected(testutil.Chat(-1, takeOver, "first"))))
	return store
}
