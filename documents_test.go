package dataformat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thrustcurve/dataformat/catalog"
	"github.com/thrustcurve/dataformat/formatter"
	"github.com/thrustcurve/dataformat/idmap"
)

func TestWriteMotor_SameCallsBothFormats(t *testing.T) {
	m := catalog.Motor{
		ID:           "60a1f2c3d4e5f60718293a4b",
		Manufacturer: "Aerotech",
		Designation:  "G80T-7",
		ImpulseClass: "G",
		Diameter:     0.029,
		Delays:       []string{"4", "7", "10"},
	}

	xw := formatter.NewXMLWriter(formatter.Options{Compat: true, Registry: idmap.New()})
	require.NoError(t, WriteMotor(xw, m))
	require.Contains(t, string(xw.Render()), "<motor-info><motor-id>1000001</motor-id><manufacturer>Aerotech</manufacturer>")
	require.NotContains(t, string(xw.Render()), "<common-name>")
	require.NotContains(t, string(xw.Render()), "<updated-on>")

	jw := formatter.NewJSONWriter(formatter.Options{})
	require.NoError(t, WriteMotor(jw, m))
	require.JSONEq(t, `{
		"motorId": "60a1f2c3d4e5f60718293a4b",
		"manufacturer": "Aerotech",
		"designation": "G80T-7",
		"impulseClass": "G",
		"diameter": 0.029,
		"delays": [4, 7, 10],
		"certified": false
	}`, string(jw.Render()))
}

func TestWriteSearch_NoMatches(t *testing.T) {
	w := formatter.NewXMLWriter(formatter.Options{})

	require.NoError(t, WriteSearch(w, catalog.Criteria{ImpulseClass: "O"}, nil))

	require.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><search-response>`+
		`<criteria impulseClass="O">impulseClass=O</criteria><matches>0</matches></search-response>`,
		string(w.Render()))
}

func TestWriteDocuments_RootAlreadyDeclared(t *testing.T) {
	tests := []struct {
		name  string
		write func(formatter.Writer) error
	}{
		{"metadata", func(w formatter.Writer) error { return WriteMetadata(w, &catalog.Catalog{}) }},
		{"search", func(w formatter.Writer) error { return WriteSearch(w, catalog.Criteria{}, nil) }},
		{"motor", func(w formatter.Writer) error { return WriteMotor(w, catalog.Motor{}) }},
		{"error", func(w formatter.Writer) error { return WriteError(w, "boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := formatter.NewXMLWriter(formatter.Options{Root: "other"})

			var pv *formatter.ProtocolViolationError
			require.True(t, errors.As(tt.write(w), &pv))
			require.Equal(t, "other", pv.Root)
		})
	}
}
