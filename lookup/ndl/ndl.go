// Package ndl queries the NDL Search SRU endpoint for book metadata by
// ISBN. Records come back as dcndl RDF embedded in the SRU envelope; the
// client flattens one record into a generic payload for profile mapping.
package ndl

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultBaseURL = "https://ndlsearch.ndl.go.jp/api/sru"

// ErrNotFound is returned when the SRU response carries no bibliographic
// record for the requested ISBN.
var ErrNotFound = errors.New("ndl: no record found")

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
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

// LookupISBN fetches the first dcndl record matching the ISBN and flattens
// it into a payload with title, creators, publisher, publisherLocation,
// issued and isbn keys.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*structpb.Struct, error) {
	isbn = strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	if isbn == "" {
		return nil, fmt.Errorf("ndl: empty isbn")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("operation", "searchRetrieve")
	q.Set("query", fmt.Sprintf("isbn=%s", isbn))
	q.Set("recordSchema", "dcndl")
	q.Set("recordPacking", "xml")
	q.Set("onlyBib", "true")
	q.Set("maximumRecords", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ndl: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ndl: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope sruResponse
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ndl: parsing response: %w", err)
	}
	if len(envelope.Records) == 0 {
		return nil, ErrNotFound
	}

	payload := flatten(envelope.Records[0].RDF.BibResource, isbn)
	if payload == nil {
		return nil, ErrNotFound
	}
	return structpb.NewStruct(payload)
}

type sruResponse struct {
	XMLName         xml.Name     `xml:"searchRetrieveResponse"`
	NumberOfRecords int          `xml:"numberOfRecords"`
	Records         []recordData `xml:"records>record>recordData"`
}

type recordData struct {
	RDF rdfRoot `xml:"RDF"`
}

type rdfRoot struct {
	BibResource bibResource `xml:"http://ndl.go.jp/dcndl/terms/ BibResource"`
}

type bibResource struct {
	Titles     []titleElem   `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creators   []agentHolder `xml:"http://purl.org/dc/terms/ creator"`
	DCCreators []string      `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Publishers []agentHolder `xml:"http://purl.org/dc/terms/ publisher"`
	Issued     []string      `xml:"http://purl.org/dc/terms/ issued"`
	Dates      []string      `xml:"http://purl.org/dc/terms/ date"`
}

type titleElem struct {
	Raw         string `xml:",chardata"`
	Description struct {
		Value string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# value"`
	} `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Description"`
}

func (t titleElem) text() string {
	if v := strings.TrimSpace(t.Description.Value); v != "" {
		return v
	}
	return strings.TrimSpace(t.Raw)
}

type agentHolder struct {
	Agent *foafAgent `xml:"http://xmlns.com/foaf/0.1/ Agent"`
	Raw   string     `xml:",chardata"`
}

type foafAgent struct {
	Name          string `xml:"http://xmlns.com/foaf/0.1/ name"`
	Transcription string `xml:"http://ndl.go.jp/dcndl/terms/ transcription"`
	Location      string `xml:"http://ndl.go.jp/dcndl/terms/ location"`
}

func flatten(bib bibResource, isbn string) map[string]any {
	payload := map[string]any{"isbn": isbn}

	for _, t := range bib.Titles {
		if s := t.text(); s != "" {
			payload["title"] = s
			break
		}
	}

	var creators []any
	for _, holder := range bib.Creators {
		if holder.Agent == nil {
			continue
		}
		name := cleanAgentName(holder.Agent.Name)
		if name == "" {
			continue
		}
		creators = append(creators, map[string]any{
			"name":    name,
			"reading": cleanReading(holder.Agent.Transcription),
		})
	}
	if len(creators) == 0 {
		for _, raw := range bib.DCCreators {
			for _, name := range splitCreatorList(raw) {
				creators = append(creators, map[string]any{"name": name})
			}
		}
	}
	if len(creators) > 0 {
		payload["creators"] = creators
	}

	for _, holder := range bib.Publishers {
		if holder.Agent == nil {
			continue
		}
		if name := strings.TrimSpace(holder.Agent.Name); name != "" {
			payload["publisher"] = name
			if loc := strings.TrimSpace(holder.Agent.Location); loc != "" {
				payload["publisherLocation"] = loc
			}
			break
		}
	}

	for _, d := range append(bib.Issued, bib.Dates...) {
		if s := strings.TrimSpace(d); s != "" {
			payload["issued"] = s
			break
		}
	}

	if _, ok := payload["title"]; !ok {
		return nil
	}
	return payload
}

var lifeDates = regexp.MustCompile(`^[0-9]{4}[-ー]?([0-9]{4})?$`)

// cleanAgentName drops the trailing birth-death dates NDL appends to
// personal names, keeping "姓, 名" so the name splitter can use the comma.
func cleanAgentName(name string) string {
	parts := strings.Split(name, ",")
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || lifeDates.MatchString(p) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) > 2 {
		kept = kept[:2]
	}
	return strings.Join(kept, ", ")
}

func cleanReading(reading string) string {
	parts := strings.Split(reading, ",")
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || lifeDates.MatchString(p) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) > 2 {
		kept = kept[:2]
	}
	return strings.Join(kept, " ")
}

var creatorSeparators = regexp.MustCompile(`[、;；/]| and `)
var roleSuffix = regexp.MustCompile(`\s*(編著|共著|監修|編|著|訳)$`)

// splitCreatorList breaks a flat dc:creator string such as
// "高橋太郎, 鈴木花子著" into individual names and strips role suffixes.
func splitCreatorList(raw string) []string {
	var names []string
	for _, part := range creatorSeparators.Split(raw, -1) {
		part = roleSuffix.ReplaceAllString(strings.TrimSpace(part), "")
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
