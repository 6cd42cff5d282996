package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtogo/auth/internal/config"
	"mtogo/auth/internal/models"
)

func TestNominatimLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "2100", r.URL.Query().Get("postalcode"))
		assert.Equal(t, "mtogo-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat":"55.7","lon":"12.57"}]`))
	}))
	defer srv.Close()

	g := NewNominatim(config.GeocodingConfig{BaseURL: srv.URL, UserAgent: "mtogo-test"})
	lon, lat, err := g.Lookup(context.Background(), models.Address{Street: "Main 1", City: "Copenhagen", Zip: "2100"})
	require.NoError(t, err)
	assert.InDelta(t, 12.57, lon, 1e-9)
	assert.InDelta(t, 55.7, lat, 1e-9)
}

func TestNominatimNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatim(config.GeocodingConfig{BaseURL: srv.URL})
	_, _, err := g.Lookup(context.Background(), models.Address{})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestNominatimUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewNominatim(config.GeocodingConfig{BaseURL: srv.URL})
	_, _, err := g.Lookup(context.Background(), models.Address{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}
