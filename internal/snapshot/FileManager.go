package snapshot

import (
	"errors"
	"os"
	"zoodash/internal/providers"
	"zoodash/internal/snapshot/interfaces"

	json "github.com/goccy/go-json"
)

type FileManager struct {
	source     Source
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, source Source, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		source:     source,
		logger:     logger,
	}
}

// SaveToFile writes the current poller state atomically: tmp file, sync,
// rename.
func (f *FileManager) SaveToFile(fileName string) error {
	state := f.source.Snapshot()

	jsonData, err := json.Marshal(state)
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

// LoadFromFile restores a previously saved state. A missing file is not
// an error: the dashboard simply starts empty.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logger.Infof(providers.TypeApp, "No snapshot at %s, starting empty", fileName)
			return nil
		}
		return err
	}

	jsonData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var state State
	if err = json.Unmarshal(jsonData, &state); err != nil {
		return err
	}

	f.source.RestoreSnapshot(&state)
	f.logger.Infof(providers.TypeApp, "Restored snapshot from %s (saved %s)", fileName, state.SavedAt.Format("2006-01-02 15:04:05"))
	return nil
}
