package testutil

import (
	"context"
	"sidebard/internal/models"
	"sidebard/internal/providers"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface and counts takeover outcomes.
type MockMetrics struct {
	mu       sync.Mutex
	Outcomes map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (m *MockMetrics) IncCacheHits()                                     {}
func (m *MockMetrics) IncCacheMisses()                                   {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (m *MockMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncUpstreamErrors(_ string)                        {}
func (m *MockMetrics) IncTakeoverOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Outcomes == nil {
		m.Outcomes = make(map[string]int)
	}
	m.Outcomes[outcome]++
}

func (m *MockMetrics) Outcome(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcomes[outcome]
}

type TakeoverCall struct {
	ChatID int64
	Value  bool
}

type FindTodayCall struct {
	ChatID int64
	Status models.VerificationStatus
}

// MockAdminClient implements upstream.AdminClientInterface with injectable behavior.
type MockAdminClient struct {
	mu             sync.Mutex
	TakeoverFn     func(ctx context.Context, chatID int64, value bool) (*models.TakeoverResult, error)
	FindTodayFn    func(ctx context.Context, chatID int64, status models.VerificationStatus) (*models.TodayStatistics, error)
	TakeoverCalls  []TakeoverCall
	FindTodayCalls []FindTodayCall
}

func (m *MockAdminClient) SetTakeover(ctx context.Context, chatID int64, value bool) (*models.TakeoverResult, error) {
	m.mu.Lock()
	m.TakeoverCalls = append(m.TakeoverCalls, TakeoverCall{ChatID: chatID, Value: value})
	fn := m.TakeoverFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, chatID, value)
	}
	return &models.TakeoverResult{Chat: &models.Chat{ID: chatID, IsTakeOver: value}}, nil
}

func (m *MockAdminClient) FindToday(ctx context.Context, chatID int64, status models.VerificationStatus) (*models.TodayStatistics, error) {
	m.mu.Lock()
	m.FindTodayCalls = append(m.FindTodayCalls, FindTodayCall{ChatID: chatID, Status: status})
	fn := m.FindTodayFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, chatID, status)
	}
	return &models.TodayStatistics{}, nil
}

func (m *MockAdminClient) TakeoverCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.TakeoverCalls)
}

func (m *MockAdminClient) FindTodayCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FindTodayCalls)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// Chat builds a chat with a title field.
func Chat(id int64, takeOver bool, title string) *models.Chat {
	c := &models.Chat{ID: id, IsTakeOver: takeOver}
	if title != "" {
		raw, _ := json.Marshal(title)
		c.Fields = map[string]json.RawMessage{"title": raw}
	}
	return c
}
