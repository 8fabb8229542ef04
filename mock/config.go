package mock

import (
	"context"

	"github.com/fwojciec/wenku"
)

var _ wenku.ResourceStore = (*ResourceStore)(nil)

// ResourceStore is a mock implementation of wenku.ResourceStore.
type ResourceStore struct {
	LoadResourcesFn  func(ctx context.Context) ([]*wenku.Resource, error)
	FindResourceFn   func(ctx context.Context, id string) (*wenku.Resource, error)
	CreateResourceFn func(ctx context.Context, r *wenku.Resource) error
}

func (s *ResourceStore) LoadResources(ctx context.Context) ([]*wenku.Resource, error) {
	return s.LoadResourcesFn(ctx)
}

func (s *ResourceStore) FindResource(ctx context.Context, id string) (*wenku.Resource, error) {
	return s.FindResourceFn(ctx, id)
}

func (s *ResourceStore) CreateResource(ctx context.Context, r *wenku.Resource) error {
	return s.CreateResourceFn(ctx, r)
}
