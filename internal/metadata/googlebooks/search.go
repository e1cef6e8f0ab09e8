package googlebooks

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Search queries the volumes endpoint and returns raw records. maxResults is
// clamped to the range the upstream accepts; zero or negative selects the
// default. An empty or whitespace-only query returns no records without a
// network call.
//
// When an API key is configured and the keyed request fails with an upstream
// status error, the search is retried once without the key using only the
// bare query parameters. Referrer-restricted keys reject server-side callers,
// and the keyless quota usually still serves the request.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	maxResults = clampMaxResults(maxResults)

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("printType", "books")
	params.Set("orderBy", "relevance")
	params.Set("langRestrict", "en")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	c.logger.Debug("searching catalog",
		"query", query,
		"max_results", maxResults,
	)

	body, err := c.doRequest(ctx, c.endpoint+"?"+params.Encode())
	if err != nil {
		if c.apiKey == "" || !errors.Is(err, ErrUpstream) {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}

		// Retry without credentials, bare query only.
		c.logger.Debug("retrying search without api key", "query", query)
		fallback := url.Values{}
		fallback.Set("q", query)
		fallback.Set("maxResults", strconv.Itoa(maxResults))
		body, err = c.doRequest(ctx, c.endpoint+"?"+fallback.Encode())
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("search %q: parse response: %w", query, err)
	}
	return resp.Items, nil
}

// SearchByGenre searches for volumes within a subject.
func (c *Client) SearchByGenre(ctx context.Context, genre string, maxResults int) ([]Volume, error) {
	return c.Search(ctx, "subject:"+genre, maxResults)
}

// SearchByAuthor searches for volumes by an author. The plain author name is
// tried first since the strict inauthor syntax misses many catalog entries;
// the strict form is the fallback when the plain query comes back empty.
func (c *Client) SearchByAuthor(ctx context.Context, author string, maxResults int) ([]Volume, error) {
	results, err := c.Search(ctx, author, maxResults)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results, nil
	}
	return c.Search(ctx, fmt.Sprintf("inauthor:%q", author), maxResults)
}

// GetVolume fetches a single volume by its catalog identifier. A keyed
// request that fails with any upstream status, not-found included, is
// retried once without the key: a referrer-restricted key turns every
// lookup into a 4xx that the keyless request recovers from.
func (c *Client) GetVolume(ctx context.Context, volumeID string) (*Volume, error) {
	if volumeID == "" {
		return nil, ErrNotFound
	}

	volumeURL := c.endpoint + "/" + url.PathEscape(volumeID)
	keyed := volumeURL
	if c.apiKey != "" {
		keyed += "?key=" + url.QueryEscape(c.apiKey)
	}

	body, err := c.doRequest(ctx, keyed)
	if err != nil {
		if c.apiKey == "" || (!errors.Is(err, ErrUpstream) && !errors.Is(err, ErrNotFound)) {
			return nil, fmt.Errorf("get volume %s: %w", volumeID, err)
		}
		body, err = c.doRequest(ctx, volumeURL)
		if err != nil {
			return nil, fmt.Errorf("get volume %s: %w", volumeID, err)
		}
	}

	var vol Volume
	if err := json.Unmarshal(body, &vol); err != nil {
		return nil, fmt.Errorf("get volume %s: parse response: %w", volumeID, err)
	}
	return &vol, nil
}

func clampMaxResults(n int) int {
	if n <= 0 {
		return defaultMaxResults
	}
	if n > maxMaxResults {
		return maxMaxResults
	}
	return n
}
