package dataformat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestResponseCache_GetOrRender(t *testing.T) {
	rc := NewResponseCache()
	key := rc.memoKey("metadata", "xml", "false")
	require.Equal(t, "metadata|xml|false", key)

	calls := 0
	render := func() (Document, error) {
		calls++
		return Document{ContentType: "text/xml", Body: []byte("<r></r>")}, nil
	}

	doc, cached, err := rc.GetOrRender(key, render)
	require.NoError(t, err)
	require.False(t, cached)
	require.Equal(t, "text/xml", doc.ContentType)

	doc, cached, err = rc.GetOrRender(key, render)
	require.NoError(t, err)
	require.True(t, cached)
	require.Equal(t, []byte("<r></r>"), doc.Body)
	require.Equal(t, 1, calls)
}

func TestResponseCache_RenderError(t *testing.T) {
	rc := NewResponseCache()

	_, _, err := rc.GetOrRender("k", func() (Document, error) {
		return Document{}, xerrors.New("oops")
	})

	require.EqualError(t, err, "oops")
	require.Zero(t, rc.Len())
	_, ok := rc.Get("k")
	require.False(t, ok)
}
