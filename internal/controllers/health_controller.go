package controllers

import (
	"fmt"
	"net/http"
	"sidebard/internal/models"
	"sidebard/internal/services"
	"time"
)

// HealthController reports liveness together with a summary of the sidebar state.
type HealthController struct {
	store     *models.ChatsStore
	notifier  services.NotificationServiceInterface
	startedAt time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Chats         int     `json:"chats"`
	Selected      int64   `json:"selected"`
	Loaded        bool    `json:"loaded"`
	Notifications int     `json:"notifications"`
}

func NewHealthController(store *models.ChatsStore, notifier services.NotificationServiceInterface) *HealthController {
	return &HealthController{
		store:     store,
		notifier:  notifier,
		startedAt: time.Now(),
	}
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	state := hc.store.Snapshot()
	up := time.Since(hc.startedAt)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(up),
		UptimeSeconds: up.Seconds(),
		Chats:         len(state.List),
		Selected:      state.Selected,
		Loaded:        state.LoadedSelected != nil,
		Notifications: hc.notifier.Pending(),
	})
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%dh%dm%ds", h, m, d/time.Second)
}
