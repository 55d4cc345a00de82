package persistence

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"slbstore/internal/models"
	"slbstore/internal/persistence/interfaces"
	"slbstore/internal/providers"
)

// ErrCorruptImage marks a persisted image that exists but cannot be decoded.
// Callers must not confuse it with a missing image, which simply yields a
// fresh store: masking corruption as "missing" would silently drop every
// subscription on the next start.
var ErrCorruptImage = errors.New("persisted image is corrupt")

// FileManager persists the image as a single zstd-compressed JSON blob,
// written atomically via a temp file rename.
type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(path string, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		path:       path,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Save(img *models.Image) error {
	jsonData, err := json.Marshal(img)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
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

	return os.Rename(tmpFile, f.path)
}

func (f *FileManager) Load() (*models.Image, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypePersist, "No persisted image at %s", f.path)
			return nil, nil
		}
		return nil, err
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}

	return f.decodeImage(raw)
}

func (f *FileManager) decodeImage(raw []byte) (*models.Image, error) {
	var img models.Image
	if err := json.Unmarshal(raw, &img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	if img.Version > models.ImageVersion {
		return nil, fmt.Errorf("%w: unsupported image version %d", ErrCorruptImage, img.Version)
	}
	if img.Version >= 1 {
		img.Normalize()
		return &img, nil
	}

	// No version field: either an image from before the envelope carried one,
	// or something that is not an image at all.
	var legacy models.LegacyImage
	if err := json.Unmarshal(raw, &legacy); err != nil || legacy.Subscriptions == nil {
		return nil, fmt.Errorf("%w: unrecognized image layout", ErrCorruptImage)
	}
	f.logger.Warnf(providers.TypePersist, "Unversioned image found, migrating to version %d", models.ImageVersion)
	return legacy.Upgrade(), nil
}

func (f *FileManager) Close() error {
	f.compressor.Close()
	return nil
}
