package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northcourt/club-api/internal/domain/content"
)

type ContentRepository struct {
	mu    sync.RWMutex
	news  map[string]content.NewsPost
	media map[string]content.MediaItem
	merch map[string]content.MerchItem
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{
		news:  make(map[string]content.NewsPost),
		media: make(map[string]content.MediaItem),
		merch: make(map[string]content.MerchItem),
	}
}

func (r *ContentRepository) ListNews(_ context.Context) ([]content.NewsPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]content.NewsPost, 0, len(r.news))
	for _, item := range r.news {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	return out, nil
}

func (r *ContentRepository) CreateNews(_ context.Context, item content.NewsPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.news[item.ID] = item

	return nil
}

func (r *ContentRepository) DeleteNews(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.news[id]; !ok {
		return false, nil
	}
	delete(r.news, id)

	return true, nil
}

func (r *ContentRepository) ListMedia(_ context.Context) ([]content.MediaItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]content.MediaItem, 0, len(r.media))
	for _, item := range r.media {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *ContentRepository) CreateMedia(_ context.Context, item content.MediaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.media[item.ID] = item

	return nil
}

func (r *ContentRepository) DeleteMedia(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.media[id]; !ok {
		return false, nil
	}
	delete(r.media, id)

	return true, nil
}

func (r *ContentRepository) ListMerch(_ context.Context) ([]content.MerchItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]content.MerchItem, 0, len(r.merch))
	for _, item := range r.merch {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *ContentRepository) GetMerchByID(_ context.Context, id string) (content.MerchItem, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.merch[id]

	return item, ok, nil
}

func (r *ContentRepository) CreateMerch(_ context.Context, item content.MerchItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.merch[item.ID] = item

	return nil
}

func (r *ContentRepository) DeleteMerch(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.merch[id]; !ok {
		return false, nil
	}
	delete(r.merch, id)

	return true, nil
}
