package models

// SnapshotVersion is written into every snapshot file.
const SnapshotVersion = 1

// Snapshot is the on-disk envelope of the chats store.
type Snapshot struct {
	Version int        `json:"version"`
	Chats   ChatsState `json:"chats"`
}
