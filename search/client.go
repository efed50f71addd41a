package search

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// maxResults caps how many results each provider returns; search-term
// summaries only ever look at a handful of hits.
const maxResults = 5

// doWithBackoff issues the request built by newReq, retrying on HTTP 429
// with exponential backoff up to 30 s per wait. newReq is called fresh for
// each attempt because a request body cannot be reused after a send.
func doWithBackoff(ctx context.Context, client *http.Client, newReq func() (*http.Request, error)) (*http.Response, error) {
	delay := 1 * time.Second
	for {
		req, err := newReq()
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
}

// cleanHTML removes HTML tags and decodes common entities.
func cleanHTML(s string) string {
	s = reTags.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(s)
}
