package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"sidebard/internal/models"
	"sidebard/internal/navigation"
	"sidebard/internal/providers"
	"sidebard/internal/services"
	"strconv"
)

type SidebarController struct {
	logger   providers.Logger
	sidebar  services.SidebarServiceInterface
	takeover services.TakeoverServiceInterface
	notifier services.NotificationServiceInterface
}

func NewSidebarController(logger providers.Logger, sidebar services.SidebarServiceInterface, takeover services.TakeoverServiceInterface, notifier services.NotificationServiceInterface) *SidebarController {
	return &SidebarController{
		logger:   logger,
		sidebar:  sidebar,
		takeover: takeover,
		notifier: notifier,
	}
}

type statisticsResponse struct {
	Requested bool                  `json:"requested"`
	View      models.StatisticsView `json:"view"`
}

func currentPath(r *http.Request) string {
	if p := r.URL.Query().Get("path"); p != "" {
		return p
	}
	return "/admin"
}

func (sc *SidebarController) GetSidebar(w http.ResponseWriter, r *http.Request) {
	sidebar := sc.sidebar.Sidebar(r.Context(), currentPath(r), queryFlag(r, "wait"))
	writeJSON(w, http.StatusOK, sidebar)
}

func (sc *SidebarController) GetSidebarHTML(w http.ResponseWriter, r *http.Request) {
	sidebar := sc.sidebar.Sidebar(r.Context(), currentPath(r), queryFlag(r, "wait"))

	var buf bytes.Buffer
	if err := navigation.Render(&buf, sidebar); err != nil {
		sc.logger.Errorf(providers.TypeGet, "Render sidebar: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (sc *SidebarController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	view, requested, err := sc.sidebar.Statistics(r.Context(), queryFlag(r, "wait"))
	if err != nil {
		sc.logger.Warnf(providers.TypeGet, "Statistics: %s", err)
	}
	writeJSON(w, http.StatusOK, statisticsResponse{Requested: requested, View: view})
}

// PutTakeover flips the switch. Unless async is set it waits for the admin
// API and answers with the settled outcome.
func (sc *SidebarController) PutTakeover(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.ParseBool(r.URL.Query().Get("value"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state, done, err := sc.takeover.Toggle(value)
	if errors.Is(err, services.ErrNoSelection) {
		http.Error(w, "Conflict: no chat selected", http.StatusConflict)
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.TypePost, "Takeover: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if queryFlag(r, "async") {
		writeJSON(w, http.StatusAccepted, state)
		return
	}

	select {
	case outcome := <-done:
		writeJSON(w, http.StatusOK, outcome)
	case <-r.Context().Done():
		writeJSON(w, http.StatusAccepted, state)
	}
}

func (sc *SidebarController) GetNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.notifier.Drain())
}
