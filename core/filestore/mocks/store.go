package mocks

import (
	"context"

	"catalog-manager/core/filestore"

	"github.com/stretchr/testify/mock"
)

// Store is a testify mock of filestore.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Save(ctx context.Context, content []byte, filename, folder string, kind filestore.Kind, maxBytes int64) (string, error) {
	args := m.Called(ctx, content, filename, folder, kind, maxBytes)
	return args.String(0), args.Error(1)
}

func (m *Store) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
