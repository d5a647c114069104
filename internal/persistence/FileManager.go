package persistence

import (
	"fmt"
	"os"
	"sidebard/internal/models"
	"sidebard/internal/persistence/interfaces"
	"sidebard/internal/providers"

	json "github.com/goccy/go-json"
)

// FileManager writes the chats store to disk and reads it back.
type FileManager struct {
	store      *models.ChatsStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store *models.ChatsStore, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := models.Snapshot{
		Version: models.SnapshotVersion,
		Chats:   f.store.Snapshot(),
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the store. A missing file is not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return err
	}
	if snapshot.Version != models.SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	f.store.Restore(snapshot.Chats)
	f.logger.Infof(providers.TypeApp, "Restored %d chats, selected %d", len(snapshot.Chats.List), snapshot.Chats.Selected)
	return nil
}
