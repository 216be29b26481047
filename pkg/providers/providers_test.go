package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadioClientSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/search", r.URL.Path)
		assert.Equal(t, "bbc", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"stationuuid": "uuid-1", "name": "BBC Radio 1", "url_resolved": "http://stream/bbc1", "country": "UK", "tags": "pop,news"},
			{"stationuuid": "uuid-2", "name": "", "url_resolved": "http://stream/unnamed"}
		]`))
	}))
	defer srv.Close()

	client := NewRadioClient(srv.URL)
	items, err := client.Search(context.Background(), "bbc")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, media.TypeRadio, items[0].Type)
	assert.Equal(t, "uuid-1", items[0].ItemID)
	assert.Equal(t, ProviderRadioBrowser, items[0].Provider)
	assert.Equal(t, "http://stream/bbc1", items[0].URI)
	assert.Equal(t, "UK", items[0].Metadata["country"])
}

func TestRadioClientSearchEmptyQuery(t *testing.T) {
	t.Parallel()

	client := NewRadioClient("http://unused.invalid")
	items, err := client.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRadioClientServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewRadioClient(srv.URL)
	_, err := client.Search(context.Background(), "bbc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestRadioClientContextTimeout(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewRadioClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, "bbc")
	require.Error(t, err)
	<-started
}

func TestRadioClientTopStations(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/topvote/10", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"stationuuid": "uuid-1", "name": "Radio Paradise", "url": "http://stream/rp"}]`))
	}))
	defer srv.Close()

	client := NewRadioClient(srv.URL)
	items, err := client.TopStations(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, items, 1)
	// url is the fallback when url_resolved is absent.
	assert.Equal(t, "http://stream/rp", items[0].URI)
}

func TestPodcastClientSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "podcast", r.URL.Query().Get("media"))
		assert.Equal(t, "science", r.URL.Query().Get("term"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"resultCount": 1,
			"results": [
				{"collectionId": 123456, "collectionName": "Science Hour", "artistName": "BBC World Service", "feedUrl": "http://feeds/science", "primaryGenreName": "Science"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewPodcastClient(srv.URL)
	items, err := client.Search(context.Background(), "science")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, media.TypePodcast, items[0].Type)
	assert.Equal(t, "123456", items[0].ItemID)
	assert.Equal(t, ProviderITunes, items[0].Provider)
	assert.Equal(t, "BBC World Service", items[0].Metadata["creator"])
	assert.Equal(t, "Science", items[0].Metadata["genre"])
}
