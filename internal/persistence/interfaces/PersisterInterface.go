package interfaces

import "slbstore/internal/models"

// PersisterInterface is the storage backend contract for the persisted image.
// Load returns (nil, nil) when no image has been written yet; a present but
// undecodable image is an error, never silently treated as missing.
type PersisterInterface interface {
	Save(img *models.Image) error
	Load() (*models.Image, error)
	Close() error
}
