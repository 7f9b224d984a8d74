// Package spotify is a small read-only Spotify Web API client covering the
// endpoints the extractor needs. It paces requests, honors Retry-After on
// 429 responses, and exposes each listing endpoint as a paging.Source.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spotsnap/spotsnap/limiter"
	"github.com/spotsnap/spotsnap/paging"
	"github.com/spotsnap/spotsnap/request"
	"go.uber.org/zap"
)

const apiBase = "https://api.spotify.com/v1"

// Per-request ceilings documented by the Spotify Web API.
const (
	MaxPageSize         = 50
	MaxPlaylistPageSize = 100
	MaxRecentlyPlayed   = 50
	MaxAudioFeatureIDs  = 100
)

const nextReqFilename = "next-req"

// New creates a Client on top of httpClient, which must already attach
// authorization to every request (see TokenClient).
func New(httpClient *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	lim := limiter.New(nextReqFilename, time.Second/10, log)
	if err := lim.Load(); err != nil {
		log.Warn("ignoring unreadable rate-limit state", zap.Error(err))
	}
	return &Client{
		http: httpClient,
		base: apiBase,
		lim:  lim,
		log:  log,
	}
}

type Client struct {
	http *http.Client
	base string
	lim  *limiter.Limiter
	log  *zap.Logger
}

// get issues one GET, waiting out the limiter first. On a 429 it records the
// Retry-After deadline and tries again; the retry loop ends only when the
// server stops rate-limiting or ctx is canceled.
func (spo *Client) get(ctx context.Context, rawURL string, query url.Values) (io.ReadCloser, error) {
	for {
		if err := spo.lim.Wait(ctx); err != nil {
			return nil, err
		}

		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("bad url '%s': %w", rawURL, err)
		}
		if query != nil {
			u.RawQuery = query.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}

		resp, err := spo.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			resp.Body.Close()
			if err := spo.lim.Backoff(retryAfter); err != nil {
				return nil, err
			}
			spo.log.Warn("rate limited", zap.String("url", u.Path), zap.String("retry_after", retryAfter))
			continue
		}
		if err := request.Error(resp); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch error: %w", err)
		}

		spo.lim.Delay()

		return resp.Body, nil
	}
}

// getJSON fetches rawURL and decodes the response body into a T.
func getJSON[T any](ctx context.Context, spo *Client, rawURL string, query url.Values) (*T, error) {
	resp, err := spo.get(ctx, rawURL, query)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	var result T
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode error from '%s': %w", rawURL, err)
	}
	return &result, nil
}

// envelope is the paging wrapper every Spotify listing endpoint shares: a
// slice of items plus the full URL of the next page, or null on the last
// page.
type envelope[T any] struct {
	Items []T
	Next  string
}

// source walks one listing endpoint. The first NextPage call fetches first
// with query; later calls follow the next links the API returns, which embed
// their own query parameters.
type source[T any] struct {
	spo     *Client
	first   string
	query   url.Values
	started bool
	next    string
}

func (src *source[T]) NextPage(ctx context.Context) (paging.Page[T], error) {
	pageURL, query := src.next, url.Values(nil)
	if !src.started {
		pageURL, query = src.first, src.query
		src.started = true
	}

	env, err := getJSON[envelope[T]](ctx, src.spo, pageURL, query)
	if err != nil {
		return paging.Page[T]{}, err
	}

	src.next = env.Next
	return paging.Page[T]{Items: env.Items, More: env.Next != ""}, nil
}
