package models

import (
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chat(id int64, takeOver bool) *Chat {
	return &Chat{ID: id, IsTakeOver: takeOver, Fields: map[string]json.RawMessage{"title": json.RawMessage(`"t"`)}}
}

func loadedStore(t *testing.T, selected int64) *ChatsStore {
	t.Helper()
	store := NewChatsStore()
	require.NoError(t, store.Dispatch(ReceiveChats([]*Chat{chat(1, false), chat(2, false), chat(3, true)})))
	require.NoError(t, store.Dispatch(Select(selected)))
	return store
}

func TestChatsState_HasSelection(t *testing.T) {
	assert.False(t, ChatsState{}.HasSelection())
	assert.False(t, ChatsState{Selected: 5}.HasSelection())
	assert.False(t, ChatsState{IsLoaded: true}.HasSelection())
	assert.True(t, ChatsState{IsLoaded: true, Selected: -5}.HasSelection())
}

func TestChatsStore_ReceiveChatsMarksLoaded(t *testing.T) {
	store := NewChatsStore()
	require.NoError(t, store.Dispatch(ReceiveChats([]*Chat{chat(1, false), nil})))

	state := store.Snapshot()
	assert.True(t, state.IsLoaded)
	assert.Len(t, state.List, 1)
	assert.Equal(t, 1, store.Len())
}

func TestChatsStore_SelectDropsLoadedCopy(t *testing.T) {
	store := loadedStore(t, 2)
	require.NoError(t, store.Dispatch(LoadSelected(chat(2, false))))
	require.NotNil(t, store.Snapshot().LoadedSelected)

	// same id keeps the copy
	require.NoError(t, store.Dispatch(Select(2)))
	assert.NotNil(t, store.Snapshot().LoadedSelected)

	require.NoError(t, store.Dispatch(Select(3)))
	assert.Nil(t, store.Snapshot().LoadedSelected)
}

func TestChatsStore_LoadSelectedMismatch(t *testing.T) {
	store := loadedStore(t, 2)
	err := store.Dispatch(LoadSelected(chat(3, true)))
	assert.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Nil(t, store.Snapshot().LoadedSelected)
}

func TestChatsStore_LoadSelectedNilClears(t *testing.T) {
	store := loadedStore(t, 2)
	require.NoError(t, store.Dispatch(LoadSelected(chat(2, false))))
	require.NoError(t, store.Dispatch(LoadSelected(nil)))
	assert.Nil(t, store.Snapshot().LoadedSelected)
}

func TestChatsStore_ReplaceInList(t *testing.T) {
	store := loadedStore(t, 2)
	before := store.Snapshot()

	require.NoError(t, store.Dispatch(ReplaceInList(chat(2, true))))

	after := store.Snapshot()
	assert.True(t, after.List[1].IsTakeOver)
	assert.False(t, before.List[1].IsTakeOver, "earlier snapshots must not change")
	assert.Equal(t, 3, len(after.List))
}

func TestChatsStore_ReplaceInListAbsent(t *testing.T) {
	store := loadedStore(t, 2)
	assert.ErrorIs(t, store.Dispatch(ReplaceInList(chat(42, true))), ErrChatNotInList)
	assert.ErrorIs(t, store.Dispatch(ReplaceInList(nil)), ErrChatNotInList)
}

func TestChatsStore_Reset(t *testing.T) {
	store := loadedStore(t, 2)
	require.NoError(t, store.Dispatch(Reset()))
	assert.Equal(t, ChatsState{List: []*Chat{}}, store.Snapshot())
}

func TestChatsStore_SnapshotIsIsolated(t *testing.T) {
	store := loadedStore(t, 2)
	snap := store.Snapshot()
	snap.List[0].IsTakeOver = true
	snap.List = append(snap.List, chat(9, false))

	fresh := store.Snapshot()
	assert.False(t, fresh.List[0].IsTakeOver)
	assert.Len(t, fresh.List, 3)
}

func TestChatsStore_SubscribersSeeEverySuccessfulDispatch(t *testing.T) {
	store := NewChatsStore()
	var seen []int64
	store.Subscribe(func(s ChatsState) { seen = append(seen, s.Selected) })

	require.NoError(t, store.Dispatch(ReceiveChats(nil)))
	require.NoError(t, store.Dispatch(Select(7)))
	require.Error(t, store.Dispatch(LoadSelected(chat(8, false))))

	assert.Equal(t, []int64{0, 7}, seen)
}

func TestChatsStore_RestoreDropsMismatchedCopy(t *testing.T) {
	store := NewChatsStore()
	store.Restore(ChatsState{
		IsLoaded:       true,
		Selected:       1,
		LoadedSelected: chat(2, true),
		List:           []*Chat{chat(1, false), nil},
	})

	state := store.Snapshot()
	assert.Nil(t, state.LoadedSelected)
	assert.Len(t, state.List, 1)
	assert.True(t, state.IsLoaded)
}

func TestChatsStore_ConcurrentDispatch(t *testing.T) {
	store := loadedStore(t, 1)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Dispatch(ReplaceInList(chat(int64(i%3+1), i%2 == 0)))
			_ = store.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 3, store.Len())
}

func TestReplaceAt_LeavesInputUntouched(t *testing.T) {
	list := []*Chat{chat(1, false), chat(2, false)}
	out := ReplaceAt(list, chat(2, true), 1)

	assert.False(t, list[1].IsTakeOver)
	assert.True(t, out[1].IsTakeOver)
	assert.Same(t, list[0], out[0])

	same := ReplaceAt(list, chat(5, true), 7)
	assert.Equal(t, list, same)
}
