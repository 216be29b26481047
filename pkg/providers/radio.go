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

const defaultRadioBaseURL = "https://de1.api.radio-browser.info/json"

// ProviderRadioBrowser is the provider id attached to stations found through
// the radio directory.
const ProviderRadioBrowser = "radiobrowser"

// RadioClient searches the radio-browser station directory.
type RadioClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRadioClient creates a radio directory client. An empty baseURL selects
// the public directory.
func NewRadioClient(baseURL string) *RadioClient {
	if baseURL == "" {
		baseURL = defaultRadioBaseURL
	}
	return &RadioClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(),
	}
}

type radioStationResult struct {
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URLResolved string `json:"url_resolved"`
	URL         string `json:"url"`
	Homepage    string `json:"homepage"`
	Country     string `json:"country"`
	Tags        string `json:"tags"`
}

// Search finds stations whose name matches the query.
func (c *RadioClient) Search(ctx context.Context, query string) ([]media.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []media.Item{}, nil
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("limit", strconv.Itoa(searchLimit))
	params.Set("hidebroken", "true")

	results := []radioStationResult{}
	err := getJSON(ctx, c.httpClient, c.baseURL+"/stations/search", params, &results)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return convertStations(results), nil
}

// TopStations returns the directory's most popular stations, used by the sync
// job to refresh the cached radio catalog.
func (c *RadioClient) TopStations(ctx context.Context, limit int) ([]media.Item, error) {
	if limit <= 0 {
		limit = searchLimit
	}

	results := []radioStationResult{}
	err := getJSON(ctx, c.httpClient, c.baseURL+"/stations/topvote/"+strconv.Itoa(limit), nil, &results)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return convertStations(results), nil
}

func convertStations(results []radioStationResult) []media.Item {
	items := make([]media.Item, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		streamURL := r.URLResolved
		if streamURL == "" {
			streamURL = r.URL
		}
		items = append(items, media.Item{
			Type:     media.TypeRadio,
			ItemID:   r.StationUUID,
			Provider: ProviderRadioBrowser,
			Name:     r.Name,
			URI:      streamURL,
			Metadata: stationMetadata(r),
		})
	}
	return items
}

func stationMetadata(r radioStationResult) map[string]string {
	meta := map[string]string{}
	if r.Country != "" {
		meta["country"] = r.Country
	}
	if r.Tags != "" {
		meta["tags"] = r.Tags
	}
	if r.Homepage != "" {
		meta["homepage"] = r.Homepage
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
