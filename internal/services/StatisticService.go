package services

import (
	"context"
	"errors"
	"sidebard/internal/models"
	"sidebard/internal/providers"
	"sidebard/internal/structures"
	"sidebard/internal/upstream"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

var ErrNoStatisticsKey = errors.New("no chat selected")

type StatisticServiceInterface interface {
	Key(state models.ChatsState) (string, bool)
	Lookup(state models.ChatsState) (*models.TodayStatistics, bool)
	Fetch(ctx context.Context, state models.ChatsState) (*models.TodayStatistics, error)
	Revalidate(ctx context.Context) error
	Close()
}

type cachedStatistics struct {
	FetchedAt time.Time               `json:"fetched_at"`
	Data      *models.TodayStatistics `json:"data"`
}

// StatisticService serves today's verification counters with
// cache-and-revalidate: cached data is returned at once and refreshed in the
// background when stale, when missing, or when the selected chat changes.
type StatisticService struct {
	client          upstream.AdminClientInterface
	cache           providers.CacheProviderInterface
	logger          providers.Logger
	store           *models.ChatsStore
	revalidateAfter time.Duration
	timeout         time.Duration
	group           singleflight.Group
	lastKey         atomic.String
	inflight        sync.WaitGroup
	lifecycle       sync.Mutex
	closed          bool
	ctx             context.Context
	cancel          context.CancelFunc
	now             func() time.Time
}

func NewStatisticService(conf *structures.Config, client upstream.AdminClientInterface, cache providers.CacheProviderInterface, store *models.ChatsStore, logger providers.Logger) StatisticServiceInterface {
	ctx, cancel := context.WithCancel(context.Background())
	timeout := conf.Upstream.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ss := &StatisticService{
		client:          client,
		cache:           cache,
		logger:          logger,
		store:           store,
		revalidateAfter: conf.Statistics.RevalidateAfter,
		timeout:         timeout,
		ctx:             ctx,
		cancel:          cancel,
		now:             time.Now,
	}
	store.Subscribe(ss.onStateChange)
	return ss
}

// Key returns the request key for state. There is none until the collection
// is loaded and a chat is selected, and then nothing is fetched.
func (ss *StatisticService) Key(state models.ChatsState) (string, bool) {
	if !state.HasSelection() {
		return "", false
	}
	return upstream.TodayStatisticsPath(state.Selected, ""), true
}

func (ss *StatisticService) Lookup(state models.ChatsState) (*models.TodayStatistics, bool) {
	key, ok := ss.Key(state)
	if !ok {
		return nil, false
	}

	entry, hit := ss.read(key)
	if !hit || ss.isStale(entry) {
		ss.revalidateAsync(key, state.Selected)
	}
	if !hit {
		return nil, true
	}
	return entry.Data, true
}

func (ss *StatisticService) Fetch(ctx context.Context, state models.ChatsState) (*models.TodayStatistics, error) {
	key, ok := ss.Key(state)
	if !ok {
		return nil, ErrNoStatisticsKey
	}
	ch := ss.group.DoChan(key, func() (interface{}, error) {
		return ss.fetch(key, state.Selected)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.TodayStatistics), nil
	}
}

// Revalidate refreshes the statistics of the currently selected chat.
func (ss *StatisticService) Revalidate(ctx context.Context) error {
	state := ss.store.Snapshot()
	if !state.HasSelection() {
		return nil
	}
	_, err := ss.Fetch(ctx, state)
	return err
}

// Close cancels background fetches and waits for them to return.
func (ss *StatisticService) Close() {
	ss.lifecycle.Lock()
	ss.closed = true
	ss.cancel()
	ss.lifecycle.Unlock()
	ss.inflight.Wait()
}

func (ss *StatisticService) onStateChange(state models.ChatsState) {
	key, ok := ss.Key(state)
	if !ok {
		ss.lastKey.Store("")
		return
	}
	if ss.lastKey.Swap(key) != key {
		ss.revalidateAsync(key, state.Selected)
	}
}

// revalidateAsync starts a background fetch unless the service is closed.
// The closed flag and inflight are only touched under lifecycle.
func (ss *StatisticService) revalidateAsync(key string, chatID int64) bool {
	ss.lifecycle.Lock()
	defer ss.lifecycle.Unlock()
	if ss.closed {
		return false
	}
	ss.inflight.Add(1)
	go func() {
		defer ss.inflight.Done()
		_, _, _ = ss.group.Do(key, func() (interface{}, error) {
			return ss.fetch(key, chatID)
		})
	}()
	return true
}

func (ss *StatisticService) fetch(key string, chatID int64) (*models.TodayStatistics, error) {
	ctx, cancel := context.WithTimeout(ss.ctx, ss.timeout)
	defer cancel()

	data, err := ss.client.FindToday(ctx, chatID, "")
	if err != nil {
		ss.logger.Warnf(providers.TypeApp, "Statistics fetch for chat %d failed: %s", chatID, err)
		return nil, err
	}

	encoded, err := json.Marshal(cachedStatistics{FetchedAt: ss.now(), Data: data})
	if err != nil {
		return nil, err
	}
	ss.cache.Set(key, encoded)
	ss.logger.Debugf(providers.TypeApp, "Statistics for chat %d revalidated", chatID)
	return data, nil
}

func (ss *StatisticService) read(key string) (*cachedStatistics, bool) {
	raw, ok := ss.cache.Get(key)
	if !ok {
		return nil, false
	}
	var entry cachedStatistics
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Data == nil {
		ss.cache.Del(key)
		return nil, false
	}
	return &entry, true
}

func (ss *StatisticService) isStale(entry *cachedStatistics) bool {
	if ss.revalidateAfter <= 0 {
		return false
	}
	return ss.now().Sub(entry.FetchedAt) > ss.revalidateAfter
}
