package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtogo/auth/internal/config"
)

func TestNewObjectStoreEndpointForms(t *testing.T) {
	cases := []struct {
		endpoint string
		host     string
		https    bool
	}{
		{endpoint: "127.0.0.1:9000", host: "127.0.0.1:9000"},
		{endpoint: "http://minio:9000", host: "minio:9000"},
		{endpoint: "https://s3.example.com", host: "s3.example.com", https: true},
	}

	for _, tc := range cases {
		t.Run(tc.endpoint, func(t *testing.T) {
			store, err := NewObjectStore(config.StorageConfig{
				Endpoint:    tc.endpoint,
				AccessKey:   "minio",
				SecretKey:   "minio123",
				BucketAudit: "audit",
				Region:      "us-east-1",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.host, store.client.EndpointURL().Host)
			assert.Equal(t, tc.https, store.client.EndpointURL().Scheme == "https")
			assert.Equal(t, "audit", store.Bucket())
		})
	}
}
