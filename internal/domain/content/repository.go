package content

import "context"

type Repository interface {
	ListNews(ctx context.Context) ([]NewsPost, error)
	CreateNews(ctx context.Context, item NewsPost) error
	DeleteNews(ctx context.Context, id string) (bool, error)

	ListMedia(ctx context.Context) ([]MediaItem, error)
	CreateMedia(ctx context.Context, item MediaItem) error
	DeleteMedia(ctx context.Context, id string) (bool, error)

	ListMerch(ctx context.Context) ([]MerchItem, error)
	GetMerchByID(ctx context.Context, id string) (MerchItem, bool, error)
	CreateMerch(ctx context.Context, item MerchItem) error
	DeleteMerch(ctx context.Context, id string) (bool, error)
}
