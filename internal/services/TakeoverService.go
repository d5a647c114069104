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

	"github.com/google/uuid"
)

var ErrNoSelection = errors.New("no chat selected")

const (
	OutcomeApplied    = "applied"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
)

type TakeoverServiceInterface interface {
	State() models.TakeoverState
	StateOf(chatID int64) models.TakeoverState
	Toggle(value bool) (models.TakeoverState, <-chan models.TakeoverOutcome, error)
	Sync(state models.ChatsState)
	Close()
}

type takeoverMutation struct {
	id     string
	chatID int64
	seq    uint64
	value  bool
	done   chan models.TakeoverOutcome
}

// takeoverEntry is the switch of one chat. seq is the sequence number of the
// latest toggle; only its response may settle the switch.
type takeoverEntry struct {
	value   bool
	pending bool
	target  bool
	seq     uint64
	queue   []*takeoverMutation
	running bool
}

func (e *takeoverEntry) state(chatID int64) models.TakeoverState {
	if e.pending {
		return models.TakeoverState{
			ChatID:  chatID,
			Phase:   models.TakeoverPending,
			Value:   e.value,
			Target:  e.target,
			Version: e.seq,
		}
	}
	return models.SettledTakeover(chatID, e.value, e.seq)
}

// TakeoverService runs the takeover switch with optimistic updates. Toggles
// of one chat are sent to the admin API strictly in order, one at a time.
type TakeoverService struct {
	mu       sync.Mutex
	entries  map[int64]*takeoverEntry
	client   upstream.AdminClientInterface
	store    *models.ChatsStore
	notifier NotificationServiceInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	timeout  time.Duration
	workers  sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewTakeoverService(conf *structures.Config, client upstream.AdminClientInterface, store *models.ChatsStore, notifier NotificationServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) TakeoverServiceInterface {
	ctx, cancel := context.WithCancel(context.Background())
	timeout := conf.Upstream.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ts := &TakeoverService{
		entries:  make(map[int64]*takeoverEntry),
		client:   client,
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
	}
	ts.Sync(store.Snapshot())
	store.Subscribe(ts.Sync)
	return ts
}

func (ts *TakeoverService) entry(chatID int64) *takeoverEntry {
	e, ok := ts.entries[chatID]
	if !ok {
		e = &takeoverEntry{}
		ts.entries[chatID] = e
	}
	return e
}

// State returns the switch of the selected chat.
func (ts *TakeoverService) State() models.TakeoverState {
	return ts.StateOf(ts.store.Snapshot().Selected)
}

func (ts *TakeoverService) StateOf(chatID int64) models.TakeoverState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if e, ok := ts.entries[chatID]; ok {
		return e.state(chatID)
	}
	return models.SettledTakeover(chatID, false, 0)
}

// Sync mirrors the loaded chat's flag into its switch unless a toggle is in flight.
func (ts *TakeoverService) Sync(state models.ChatsState) {
	if state.LoadedSelected == nil {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	e := ts.entry(state.LoadedSelected.ID)
	if !e.pending {
		e.value = state.LoadedSelected.IsTakeOver
	}
}

// Toggle flips the selected chat's switch to value at once and queues the
// mutation. The returned channel yields the outcome and is then closed.
func (ts *TakeoverService) Toggle(value bool) (models.TakeoverState, <-chan models.TakeoverOutcome, error) {
	chatID := ts.store.Snapshot().Selected
	if chatID == 0 {
		return models.TakeoverState{}, nil, ErrNoSelection
	}

	ts.mu.Lock()
	e := ts.entry(chatID)
	e.seq++
	e.value = value
	e.pending = true
	e.target = value
	m := &takeoverMutation{
		id:     uuid.NewString(),
		chatID: chatID,
		seq:    e.seq,
		value:  value,
		done:   make(chan models.TakeoverOutcome, 1),
	}
	e.queue = append(e.queue, m)
	if !e.running {
		e.running = true
		ts.workers.Add(1)
		go ts.work(chatID)
	}
	state := e.state(chatID)
	ts.mu.Unlock()

	ts.logger.Infof(providers.TypeApp, "Takeover %s queued: chat=%d value=%t seq=%d", m.id, chatID, value, m.seq)
	return state, m.done, nil
}

// Close stops accepting responses and waits for the workers to drain.
func (ts *TakeoverService) Close() {
	ts.cancel()
	ts.workers.Wait()
}

func (ts *TakeoverService) work(chatID int64) {
	defer ts.workers.Done()
	for {
		ts.mu.Lock()
		e := ts.entry(chatID)
		if len(e.queue) == 0 {
			e.running = false
			ts.mu.Unlock()
			return
		}
		m := e.queue[0]
		e.queue = e.queue[1:]
		ts.mu.Unlock()

		outcome := ts.execute(m)
		m.done <- outcome
		close(m.done)
	}
}

func (ts *TakeoverService) execute(m *takeoverMutation) models.TakeoverOutcome {
	ctx, cancel := context.WithTimeout(ts.ctx, ts.timeout)
	defer cancel()

	result, err := ts.client.SetTakeover(ctx, m.chatID, m.value)
	if err != nil {
		ts.logger.Errorf(providers.TypeApp, "Takeover %s failed: %s", m.id, err)
		result = &models.TakeoverResult{Errors: []string{"Takeover request failed: " + err.Error()}}
	}

	if len(result.Errors) == 0 && result.Chat == nil {
		result.Errors = []string{"Takeover response carries no chat"}
	}
	if len(result.Errors) > 0 {
		return ts.fail(m, result.Errors)
	}
	return ts.apply(m, result.Chat)
}

func (ts *TakeoverService) fail(m *takeoverMutation, errs []string) models.TakeoverOutcome {
	ts.mu.Lock()
	e := ts.entry(m.chatID)
	latest := m.seq == e.seq
	if latest {
		e.value = !m.value
		e.pending = false
	}
	state := e.state(m.chatID)
	ts.mu.Unlock()

	for _, msg := range errs {
		ts.notifier.Push(models.NotificationError, msg)
	}
	ts.metrics.IncTakeoverOutcome(OutcomeFailed)
	ts.logger.Warnf(providers.TypeApp, "Takeover %s rejected with %d error(s), reverted=%t", m.id, len(errs), latest)

	return models.TakeoverOutcome{
		MutationID: m.id,
		Version:    m.seq,
		Superseded: !latest,
		Errors:     errs,
		State:      state,
	}
}

// apply reconciles the store with every successful response. A superseded
// response leaves the switch alone; Sync skips it while a newer toggle is pending.
func (ts *TakeoverService) apply(m *takeoverMutation, chat *models.Chat) models.TakeoverOutcome {
	ts.reconcile(chat)

	if !ts.isLatest(m) {
		ts.metrics.IncTakeoverOutcome(OutcomeSuperseded)
		ts.logger.Infof(providers.TypeApp, "Takeover %s superseded, store reconciled, switch kept", m.id)
		return models.TakeoverOutcome{
			MutationID: m.id,
			Version:    m.seq,
			Applied:    true,
			Superseded: true,
			Chat:       chat,
			State:      ts.StateOf(m.chatID),
		}
	}

	ts.mu.Lock()
	e := ts.entry(m.chatID)
	latest := m.seq == e.seq
	if latest {
		e.pending = false
		if chat.ID == m.chatID {
			e.value = chat.IsTakeOver
		}
	}
	state := e.state(m.chatID)
	ts.mu.Unlock()

	ts.metrics.IncTakeoverOutcome(OutcomeApplied)
	ts.logger.Infof(providers.TypeApp, "Takeover %s applied: chat=%d isTakeOver=%t", m.id, chat.ID, chat.IsTakeOver)

	return models.TakeoverOutcome{
		MutationID: m.id,
		Version:    m.seq,
		Applied:    true,
		Superseded: !latest,
		Chat:       chat,
		State:      state,
	}
}

func (ts *TakeoverService) isLatest(m *takeoverMutation) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return m.seq == ts.entry(m.chatID).seq
}

// reconcile writes the canonical chat back into both copies held by the
// store. The two updates are independent; either, both or neither may apply.
func (ts *TakeoverService) reconcile(chat *models.Chat) {
	if chat.ID == ts.store.Snapshot().Selected {
		if err := ts.store.Dispatch(models.LoadSelected(chat)); err != nil {
			ts.logger.Debugf(providers.TypeApp, "Reconcile loaded chat %d skipped: %s", chat.ID, err)
		}
	}

	err := ts.store.Dispatch(models.ReplaceInList(chat))
	if err != nil && !errors.Is(err, models.ErrChatNotInList) {
		ts.logger.Warnf(providers.TypeApp, "Reconcile chat list: %s", err)
	}
}
