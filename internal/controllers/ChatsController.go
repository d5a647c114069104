package controllers

import (
	"errors"
	"net/http"
	"sidebard/internal/models"
	"sidebard/internal/providers"
	"strconv"

	json "github.com/goccy/go-json"
)

// ChatsController feeds the chats store. The console dispatches here what it
// loads from the admin API.
type ChatsController struct {
	logger providers.Logger
	store  *models.ChatsStore
}

func NewChatsController(logger providers.Logger, store *models.ChatsStore) *ChatsController {
	return &ChatsController{
		logger: logger,
		store:  store,
	}
}

func (cc *ChatsController) GetChats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cc.store.Snapshot())
}

func (cc *ChatsController) PutChats(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var list []*models.Chat
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cc.dispatch(w, models.ReceiveChats(list))
}

func (cc *ChatsController) PutSelected(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("chat_id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cc.dispatch(w, models.Select(id))
}

func (cc *ChatsController) PutLoaded(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var chat models.Chat
	if err := json.NewDecoder(r.Body).Decode(&chat); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cc.dispatch(w, models.LoadSelected(&chat))
}

func (cc *ChatsController) dispatch(w http.ResponseWriter, action models.Action) {
	err := cc.store.Dispatch(action)
	if errors.Is(err, models.ErrSelectionMismatch) {
		http.Error(w, "Conflict: chat is not the selected one", http.StatusConflict)
		return
	}
	if err != nil {
		cc.logger.Errorf(providers.TypePost, "Dispatch: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cc.store.Snapshot())
}
