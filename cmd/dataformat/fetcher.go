package main

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thrustcurve/dataformat/catalog"
	"github.com/thrustcurve/dataformat/internal"
	"golang.org/x/xerrors"
)

// fetcher reads the catalog document from a URL or a file path.
type fetcher struct {
	httpClient *http.Client
}

func newFetcher() *fetcher {
	return &fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// fetch returns the body served at an http or https URL.
func (f *fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, xerrors.New("no catalog location given")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xerrors.Errorf("failed to create request: %v", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// loadCatalog reads the catalog at urlOrPath. Local files go through
// catalog.Load; URLs are fetched and parsed here.
func (f *fetcher) loadCatalog(ctx context.Context, urlOrPath string) (*catalog.Catalog, error) {
	if urlOrPath != "" && !isURL(urlOrPath) {
		return catalog.Load(urlOrPath)
	}

	data, err := f.fetch(ctx, urlOrPath)
	if err != nil {
		return nil, err
	}
	c, err := catalog.Parse(data)
	if err != nil {
		return nil, xerrors.Errorf("catalog %s: %v", urlOrPath, err)
	}
	internal.Logger.Info().Str("source", urlOrPath).Int("motors", c.Len()).Msg("catalog loaded")
	return c, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
