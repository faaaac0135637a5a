package services

import (
	"context"

	"github.com/dmitrijs2005/picshare/internal/server/models"
	"github.com/dmitrijs2005/picshare/internal/server/storage"
)

// GalleryService lists every stored object with its public URL.
type GalleryService struct {
	gateway storage.Gateway
}

func NewGalleryService(gateway storage.Gateway) *GalleryService {
	return &GalleryService{gateway: gateway}
}

// BuildGallery returns the bucket contents in backend order. An empty bucket
// gives an empty, non-nil slice.
func (s *GalleryService) BuildGallery(ctx context.Context) ([]models.StoredObject, error) {
	keys, err := s.gateway.ListObjects(ctx)
	if err != nil {
		return nil, err
	}

	objects := make([]models.StoredObject, 0, len(keys))
	for _, k := range keys {
		objects = append(objects, models.StoredObject{Key: k, URL: s.gateway.PublicURL(k)})
	}
	return objects, nil
}
