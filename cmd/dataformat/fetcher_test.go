package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetcher_LoadCatalogHTTP(t *testing.T) {
	data, err := os.ReadFile(testCatalog)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/motors.yml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	f := newFetcher()

	c, err := f.loadCatalog(context.Background(), srv.URL+"/motors.yml")
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	_, err = f.loadCatalog(context.Background(), srv.URL+"/other.yml")
	require.ErrorContains(t, err, "HTTP 404")
}

func TestFetcher_LoadCatalogFile(t *testing.T) {
	c, err := newFetcher().loadCatalog(context.Background(), testCatalog)
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	_, err = newFetcher().loadCatalog(context.Background(), "missing.yml")
	require.ErrorContains(t, err, "failed to read catalog")

	_, err = newFetcher().loadCatalog(context.Background(), "")
	require.ErrorContains(t, err, "no catalog location given")
}

func TestFetcher_Empty(t *testing.T) {
	_, err := newFetcher().fetch(context.Background(), "")
	require.ErrorContains(t, err, "no catalog location given")
}
