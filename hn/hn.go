// Package hn provides functions to fetch data from hacker news.
package hn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/mseshachalam/hncli/app"
)

const (
	// ListURL lists story ids given a base URL and an endpoint name
	ListURL = "%s/%s.json"
	// ItemURL fetches an item given a base URL and its id
	ItemURL = "%s/item/%d.json"

	// maxBodySize caps how much of a response is read
	maxBodySize = 4 << 20

	userAgent = "hncli"
)

var endpoints = map[app.Mode]string{
	app.Hottest: "topstories",
	app.Latest:  "newstories",
}

// Endpoint is the listing endpoint name for mode
func Endpoint(mode app.Mode) (string, error) {
	ep, ok := endpoints[mode]
	if !ok {
		return "", &app.ValidationError{Field: "mode", Value: mode.String(), Reason: "has no listing endpoint"}
	}
	return ep, nil
}

// Client fetches listings and items from the HN Firebase API.
// It never retries, logs or caches.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient makes a Client for baseURL whose requests each time out after timeout.
// A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ListIDs fetches story ids ranked for mode, in HN's order
func (c *Client) ListIDs(ctx context.Context, mode app.Mode) ([]int, error) {
	ep, err := Endpoint(mode)
	if err != nil {
		return nil, err
	}

	body, status, err := c.get(ctx, fmt.Sprintf(ListURL, c.BaseURL, ep))
	if err != nil {
		return nil, &Error{Kind: ErrNetwork, Op: "list", Err: err}
	}
	if status != http.StatusOK {
		return nil, &Error{Kind: ErrNetwork, Op: "list", Err: errors.Errorf("unexpected status code %d", status)}
	}
	if isNull(body) {
		return nil, &Error{Kind: ErrDecode, Op: "list", Err: errors.New("null listing")}
	}

	var raw []uint64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Kind: ErrDecode, Op: "list", Err: err}
	}

	ids := make([]int, 0, len(raw))
	for _, id := range raw {
		if id > math.MaxInt {
			return nil, &Error{Kind: ErrDecode, Op: "list", Err: errors.Errorf("id %d out of range", id)}
		}
		ids = append(ids, int(id))
	}

	return ids, nil
}

// item is the wire shape of a HN item
type item struct {
	ID          uint64 `json:"id"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Score       uint32 `json:"score"`
	Descendants uint32 `json:"descendants"`
}

// FetchDetail fetches the item with id.
// Absent optional fields decode to zero values; a null body, a deleted or a
// dead item is ErrNotFound.
func (c *Client) FetchDetail(ctx context.Context, id int) (*app.Story, error) {
	body, status, err := c.get(ctx, fmt.Sprintf(ItemURL, c.BaseURL, id))
	if err != nil {
		return nil, &Error{Kind: ErrNetwork, Op: "item", ID: id, Err: err}
	}
	switch {
	case status == http.StatusNotFound:
		return nil, &Error{Kind: ErrNotFound, Op: "item", ID: id}
	case status != http.StatusOK:
		return nil, &Error{Kind: ErrNetwork, Op: "item", ID: id, Err: errors.Errorf("unexpected status code %d", status)}
	}

	return decodeItem(id, body)
}

func decodeItem(id int, body []byte) (*app.Story, error) {
	if isNull(body) {
		return nil, &Error{Kind: ErrNotFound, Op: "item", ID: id}
	}

	var it item
	if err := json.Unmarshal(body, &it); err != nil {
		return nil, &Error{Kind: ErrDecode, Op: "item", ID: id, Err: err}
	}
	if it.ID == 0 {
		return nil, &Error{Kind: ErrDecode, Op: "item", ID: id, Err: errors.New("missing id")}
	}
	if it.ID > math.MaxInt || int(it.ID) != id {
		return nil, &Error{Kind: ErrDecode, Op: "item", ID: id, Err: errors.Errorf("got item %d", it.ID)}
	}
	if it.Deleted || it.Dead {
		return nil, &Error{Kind: ErrNotFound, Op: "item", ID: id}
	}

	return &app.Story{
		ID:          id,
		Title:       it.Title,
		Score:       int(it.Score),
		URL:         it.URL,
		Descendants: int(it.Descendants),
		Type:        it.Type,
		By:          it.By,
		Time:        it.Time,
		Text:        it.Text,
	}, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req.WithContext(ctx))
	if err != nil {
		return nil, 0, err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}

func isNull(body []byte) bool {
	return bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}
