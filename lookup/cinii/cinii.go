// Package cinii queries the CiNii Research OpenSearch endpoint for journal
// articles by title. Results are JSON-LD; each item is flattened into a
// generic payload for profile mapping.
package cinii

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultBaseURL = "https://cir.nii.ac.jp/opensearch/articles"

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	appID      string
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithAppID sets the application id CiNii asks API consumers to send.
func WithAppID(id string) ClientOption {
	return func(c *Client) { c.appID = id }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(3), 1),
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchTitle searches articles by title and flattens each hit into a
// payload with title, authors, journal, volume, issue, pages, year and
// link keys. An empty result set is not an error.
func (c *Client) SearchTitle(ctx context.Context, title string) ([]*structpb.Struct, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("cinii: empty title query")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("title", title)
	q.Set("format", "json")
	q.Set("count", "20")
	if c.appID != "" {
		q.Set("appid", c.appID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cinii: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cinii: unexpected status %d", resp.StatusCode)
	}

	var feed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("cinii: parsing response: %w", err)
	}
	if len(feed.Graph) == 0 {
		return nil, nil
	}

	var payloads []*structpb.Struct
	for _, item := range feed.Graph[0].Items {
		p, err := structpb.NewStruct(flatten(item))
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

type searchResponse struct {
	Graph []struct {
		Items []map[string]any `json:"items"`
	} `json:"@graph"`
}

func flatten(item map[string]any) map[string]any {
	payload := map[string]any{}

	if s := itemString(item, "title", "dc:title"); s != "" {
		payload["title"] = s
	}
	if s := itemString(item, "prism:publicationName", "dc:source"); s != "" {
		payload["journal"] = s
	}
	if s := itemString(item, "prism:volume"); s != "" {
		payload["volume"] = s
	}
	if s := itemString(item, "prism:number", "prism:issue"); s != "" {
		payload["issue"] = s
	}
	if s := itemString(item, "prism:publicationDate", "dc:date"); s != "" {
		payload["year"] = s
	}
	if s := itemString(item, "@id", "link"); s != "" {
		payload["link"] = s
	}

	start := itemString(item, "prism:startingPage")
	end := itemString(item, "prism:endingPage")
	switch {
	case start != "" && end != "":
		payload["pages"] = start + "-" + end
	case start != "":
		payload["pages"] = start
	}

	if authors := itemAuthors(item); len(authors) > 0 {
		payload["authors"] = authors
	}
	return payload
}

// itemString reads the first present key, unwrapping JSON-LD value objects
// and tolerating numeric values.
func itemString(item map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := item[key]
		if !ok {
			continue
		}
		if s := anyString(v); s != "" {
			return s
		}
	}
	return ""
}

func anyString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		return anyString(t["@value"])
	case []any:
		if len(t) > 0 {
			return anyString(t[0])
		}
	}
	return ""
}

func itemAuthors(item map[string]any) []any {
	raw, ok := item["dc:creator"]
	if !ok {
		return nil
	}
	var names []any
	switch t := raw.(type) {
	case []any:
		for _, entry := range t {
			if s := anyString(entry); s != "" {
				names = append(names, s)
			}
		}
	default:
		if s := anyString(raw); s != "" {
			names = append(names, s)
		}
	}
	return names
}
