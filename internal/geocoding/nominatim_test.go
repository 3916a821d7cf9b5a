package geocoding_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/nursultantorobaev/selfhub-services/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newProvider(client geocoding.HTTPClient) *geocoding.NominatimProvider {
	return geocoding.NewNominatimProviderWithClient(client, rate.NewLimiter(rate.Inf, 1), slog.Default())
}

func TestNominatimGeocode(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("successful geocoding takes the first candidate", func(t *testing.T) {
		t.Parallel()

		var captured *http.Request
		provider := newProvider(&mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				captured = req
				return jsonResponse(http.StatusOK,
					`[{"lat":"30.2672","lon":"-97.7431"},{"lat":"1.0","lon":"2.0"}]`), nil
			},
		})

		point, err := provider.Geocode(ctx, "Austin, TX")

		require.NoError(t, err)
		require.NotNil(t, point)
		require.InEpsilon(t, 30.2672, point.Latitude, 0.0001)
		require.InEpsilon(t, -97.7431, point.Longitude, 0.0001)

		require.NotNil(t, captured)
		assert.NotEmpty(t, captured.Header.Get("User-Agent"))
		assert.Equal(t, "1", captured.URL.Query().Get("limit"))
		assert.Equal(t, "json", captured.URL.Query().Get("format"))
		assert.Equal(t, "Austin, TX", captured.URL.Query().Get("q"))
	})

	t.Run("empty response means no results", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[]`), nil
			},
		})

		point, err := provider.Geocode(ctx, "nowhere at all")

		require.Nil(t, point)
		require.ErrorIs(t, err, geocoding.ErrNoResults)
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusTooManyRequests, "slow down"), nil
			},
		})

		_, err := provider.Geocode(ctx, "Austin, TX")

		require.Error(t, err)
		require.ErrorContains(t, err, "status 429")
	})

	t.Run("transport error fails", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		})

		_, err := provider.Geocode(ctx, "Austin, TX")

		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed body fails", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"not":"a list"}`), nil
			},
		})

		_, err := provider.Geocode(ctx, "Austin, TX")

		require.Error(t, err)
		require.ErrorContains(t, err, "decode")
	})

	t.Run("unparseable coordinates fail", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[{"lat":"north","lon":"-97.7431"}]`), nil
			},
		})

		_, err := provider.Geocode(ctx, "Austin, TX")

		require.ErrorIs(t, err, geocoding.ErrNominatimInvalidCoords)
	})
}
