package storage_test

import (
	"testing"

	"catalog-manager/core/storage"
	"catalog-manager/core/storage/mocks"

	"github.com/stretchr/testify/assert"
)

var _ storage.Client = (*mocks.Client)(nil)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{
			name: "PlainEndpoint",
			cfg:  storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "media", Region: "us-east-1"},
		},
		{
			name: "HTTPScheme",
			cfg:  storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"},
		},
		{
			name: "HTTPSScheme",
			cfg:  storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true, Region: "us-east-1", TimeoutSeconds: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
