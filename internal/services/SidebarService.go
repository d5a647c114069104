package services

import (
	"context"
	"sidebard/internal/models"
	"sidebard/internal/navigation"
)

type SidebarServiceInterface interface {
	Sidebar(ctx context.Context, path string, wait bool) navigation.Sidebar
	Statistics(ctx context.Context, wait bool) (models.StatisticsView, bool, error)
}

// SidebarService composes the sidebar from the store, the statistics cache
// and the takeover switch. Nothing is kept between calls.
type SidebarService struct {
	store      *models.ChatsStore
	statistics StatisticServiceInterface
	takeover   TakeoverServiceInterface
	builder    *navigation.MenuBuilder
}

func NewSidebarService(store *models.ChatsStore, statistics StatisticServiceInterface, takeover TakeoverServiceInterface, builder *navigation.MenuBuilder) SidebarServiceInterface {
	return &SidebarService{
		store:      store,
		statistics: statistics,
		takeover:   takeover,
		builder:    builder,
	}
}

func (s *SidebarService) Sidebar(ctx context.Context, path string, wait bool) navigation.Sidebar {
	state := s.store.Snapshot()
	view, _, _ := s.statisticsFor(ctx, state, wait)
	return s.builder.Build(navigation.Input{
		Path:       path,
		Chats:      state,
		Statistics: view,
		Takeover:   s.takeover.StateOf(state.Selected),
	})
}

// Statistics returns the counters of the selected chat. The bool is false
// when there is no selection and so nothing was requested.
func (s *SidebarService) Statistics(ctx context.Context, wait bool) (models.StatisticsView, bool, error) {
	return s.statisticsFor(ctx, s.store.Snapshot(), wait)
}

func (s *SidebarService) statisticsFor(ctx context.Context, state models.ChatsState, wait bool) (models.StatisticsView, bool, error) {
	resp, ok := s.statistics.Lookup(state)
	if !ok {
		return models.NewStatisticsView(nil), false, nil
	}
	if resp == nil && wait {
		fetched, err := s.statistics.Fetch(ctx, state)
		if err != nil {
			return models.NewStatisticsView(nil), true, err
		}
		resp = fetched
	}
	return models.NewStatisticsView(resp), true, nil
}
