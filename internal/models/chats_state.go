package models

import (
	"errors"
	"sync"
)

var (
	ErrSelectionMismatch = errors.New("loaded chat does not match the selected chat")
	ErrChatNotInList     = errors.New("chat is not in the list")
)

// ChatsState is the conversation collection as seen by the sidebar.
// LoadedSelected, when set, always has ID == Selected.
type ChatsState struct {
	IsLoaded       bool    `json:"isLoaded"`
	Selected       int64   `json:"selected"`
	LoadedSelected *Chat   `json:"loadedSelected"`
	List           []*Chat `json:"list"`
}

// HasSelection reports whether a collection is loaded and a chat is focused.
func (s ChatsState) HasSelection() bool {
	return s.IsLoaded && s.Selected != 0
}

// IndexOf returns the position of the chat with id in List, or -1.
func (s ChatsState) IndexOf(id int64) int {
	for i, c := range s.List {
		if c != nil && c.ID == id {
			return i
		}
	}
	return -1
}

// Action is a state transition applied by ChatsStore.Dispatch.
type Action interface {
	apply(state *ChatsState) error
}

type receiveChats struct{ list []*Chat }

type selectChat struct{ id int64 }

type loadSelected struct{ chat *Chat }

type replaceInList struct{ chat *Chat }

type resetChats struct{}

// ReceiveChats replaces the list and marks the collection as loaded.
func ReceiveChats(list []*Chat) Action { return receiveChats{list: list} }

// Select focuses a chat. Switching to another id drops the loaded copy.
func Select(id int64) Action { return selectChat{id: id} }

// LoadSelected stores the full copy of the focused chat.
func LoadSelected(chat *Chat) Action { return loadSelected{chat: chat} }

// ReplaceInList swaps the list element with the same id for chat, publishing
// a new list. It fails with ErrChatNotInList when there is no such element.
func ReplaceInList(chat *Chat) Action { return replaceInList{chat: chat} }

// Reset returns the store to its initial state.
func Reset() Action { return resetChats{} }

func (a receiveChats) apply(state *ChatsState) error {
	list := make([]*Chat, 0, len(a.list))
	for _, c := range a.list {
		if c != nil {
			list = append(list, c.Clone())
		}
	}
	state.List = list
	state.IsLoaded = true
	return nil
}

func (a selectChat) apply(state *ChatsState) error {
	if state.Selected != a.id {
		state.LoadedSelected = nil
	}
	state.Selected = a.id
	return nil
}

func (a loadSelected) apply(state *ChatsState) error {
	if a.chat == nil {
		state.LoadedSelected = nil
		return nil
	}
	if a.chat.ID != state.Selected {
		return ErrSelectionMismatch
	}
	state.LoadedSelected = a.chat.Clone()
	return nil
}

func (a replaceInList) apply(state *ChatsState) error {
	if a.chat == nil {
		return ErrChatNotInList
	}
	i := state.IndexOf(a.chat.ID)
	if i < 0 {
		return ErrChatNotInList
	}
	state.List = ReplaceAt(state.List, a.chat.Clone(), i)
	return nil
}

func (a resetChats) apply(state *ChatsState) error {
	*state = ChatsState{}
	return nil
}

// ReplaceAt returns a copy of list with the element at i swapped for chat.
// The input slice is left untouched.
func ReplaceAt(list []*Chat, chat *Chat, i int) []*Chat {
	out := make([]*Chat, len(list))
	copy(out, list)
	if i >= 0 && i < len(out) {
		out[i] = chat
	}
	return out
}

// ChatsStore owns ChatsState. Dispatches are serialized; readers get
// snapshots that never change after they are returned.
type ChatsStore struct {
	Mutex       sync.RWMutex
	state       ChatsState
	dispatchMu  sync.Mutex
	subscribers []func(ChatsState)
}

func NewChatsStore() *ChatsStore {
	return &ChatsStore{}
}

// Dispatch applies action and notifies subscribers with the resulting snapshot.
func (cs *ChatsStore) Dispatch(action Action) error {
	cs.dispatchMu.Lock()
	defer cs.dispatchMu.Unlock()

	cs.Mutex.Lock()
	next := cs.state
	if err := action.apply(&next); err != nil {
		cs.Mutex.Unlock()
		return err
	}
	cs.state = next
	snapshot := cs.snapshotLocked()
	subscribers := cs.subscribers
	cs.Mutex.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
	return nil
}

// Subscribe registers fn to be called after every successful dispatch.
// Subscribers run inside the dispatch critical section and must not dispatch.
func (cs *ChatsStore) Subscribe(fn func(ChatsState)) {
	cs.dispatchMu.Lock()
	defer cs.dispatchMu.Unlock()
	cs.Mutex.Lock()
	defer cs.Mutex.Unlock()
	cs.subscribers = append(cs.subscribers, fn)
}

func (cs *ChatsStore) Snapshot() ChatsState {
	cs.Mutex.RLock()
	defer cs.Mutex.RUnlock()
	return cs.snapshotLocked()
}

func (cs *ChatsStore) snapshotLocked() ChatsState {
	out := cs.state
	out.LoadedSelected = cs.state.LoadedSelected.Clone()
	out.List = make([]*Chat, len(cs.state.List))
	for i, c := range cs.state.List {
		out.List[i] = c.Clone()
	}
	return out
}

// Len returns the number of chats in the list.
func (cs *ChatsStore) Len() int {
	cs.Mutex.RLock()
	defer cs.Mutex.RUnlock()
	return len(cs.state.List)
}

// Restore replaces the whole state, as after loading a snapshot. A loaded
// copy that contradicts the selection is dropped.
func (cs *ChatsStore) Restore(state ChatsState) {
	_ = cs.Dispatch(restoreState{state: state})
}

type restoreState struct{ state ChatsState }

func (a restoreState) apply(state *ChatsState) error {
	next := a.state
	if next.LoadedSelected != nil && next.LoadedSelected.ID != next.Selected {
		next.LoadedSelected = nil
	}
	list := make([]*Chat, 0, len(next.List))
	for _, c := range next.List {
		if c != nil {
			list = append(list, c.Clone())
		}
	}
	next.List = list
	next.LoadedSelected = next.LoadedSelected.Clone()
	*state = next
	return nil
}
