package providers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/pkg/errors"
)

const defaultPodcastBaseURL = "https://itunes.apple.com"

// ProviderITunes is the provider id attached to podcasts found through the
// podcast directory.
const ProviderITunes = "itunes"

// PodcastClient searches the iTunes podcast directory.
type PodcastClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPodcastClient creates a podcast directory client. An empty baseURL
// selects the public directory.
func NewPodcastClient(baseURL string) *PodcastClient {
	if baseURL == "" {
		baseURL = defaultPodcastBaseURL
	}
	return &PodcastClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(),
	}
}

type podcastSearchResponse struct {
	ResultCount int             `json:"resultCount"`
	Results     []podcastResult `json:"results"`
}

type podcastResult struct {
	CollectionID     int64  `json:"collectionId"`
	CollectionName   string `json:"collectionName"`
	ArtistName       string `json:"artistName"`
	FeedURL          string `json:"feedUrl"`
	PrimaryGenreName string `json:"primaryGenreName"`
}

// Search finds podcasts matching the query.
func (c *PodcastClient) Search(ctx context.Context, query string) ([]media.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []media.Item{}, nil
	}

	params := url.Values{}
	params.Set("media", "podcast")
	params.Set("term", query)
	params.Set("limit", strconv.Itoa(searchLimit))

	response := podcastSearchResponse{}
	err := getJSON(ctx, c.httpClient, c.baseURL+"/search", params, &response)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	items := make([]media.Item, 0, len(response.Results))
	for _, r := range response.Results {
		if r.CollectionName == "" {
			continue
		}
		items = append(items, media.Item{
			Type:     media.TypePodcast,
			ItemID:   strconv.FormatInt(r.CollectionID, 10),
			Provider: ProviderITunes,
			Name:     r.CollectionName,
			URI:      r.FeedURL,
			Metadata: podcastMetadata(r),
		})
	}
	return items, nil
}

func podcastMetadata(r podcastResult) map[string]string {
	meta := map[string]string{}
	if r.ArtistName != "" {
		meta["creator"] = r.ArtistName
	}
	if r.PrimaryGenreName != "" {
		meta["genre"] = r.PrimaryGenreName
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
