package interfaces

// SchedulerInterface drives the periodic jobs of the sidebar: snapshot
// persistence of the chats store and statistics revalidation.
type SchedulerInterface interface {
	Init()
	Stop()
	// Restore loads the last chats snapshot into the store.
	Restore() error
	// Persist writes the current chats snapshot to disk.
	Persist() error
}
