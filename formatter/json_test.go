package formatter

import (
	stdjson "encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/require"
	"github.com/thrustcurve/dataformat/idmap"
)

func TestJSONWriter_MotorInfo(t *testing.T) {
	w := NewJSONWriter(Options{Root: "motor-info", Compat: true, Registry: idmap.New()})

	require.True(t, w.WriteID("motor-id", "60a1f2c3d4e5f60718293a4b"))
	require.True(t, w.WriteElement("diameter", 0.029))
	require.True(t, w.WriteElementList("delays", []string{"4", "7", "10"}))

	require.JSONEq(t,
		`{"motorId": "60a1f2c3d4e5f60718293a4b", "diameter": 0.029, "delays": [4, 7, 10]}`,
		string(w.Render()))
}

func TestJSONWriter_Indented(t *testing.T) {
	w := NewJSONWriter(Options{})
	w.WriteElement("count", 2)

	require.Equal(t, "{\n  \"count\": 2\n}", string(w.Render()))
}

func TestJSONWriter_EmptyDocument(t *testing.T) {
	w := NewJSONWriter(Options{})

	require.Equal(t, "{}", string(w.Render()))
}

func TestJSONWriter_KeyOrder(t *testing.T) {
	w := NewJSONWriter(Options{})
	w.WriteElement("z-last", 1)
	w.WriteElement("a-first", 2)
	w.WriteElement("z-last", 3)

	out := string(w.Render())
	require.Less(t, strings.Index(out, `"zLast"`), strings.Index(out, `"aFirst"`))

	decoded := decodeObject(t, w.Render())
	require.Equal(t, 3.0, decoded["zLast"])
	require.Len(t, decoded, 2)
}

func TestJSONWriter_NoIDRemapping(t *testing.T) {
	reg := idmap.New()
	id := xid.New()

	w := NewJSONWriter(Options{Compat: true, Registry: reg})
	require.False(t, w.Compat())
	w.WriteID("motor-id", id)
	w.WriteIDList("motor-ids", []xid.ID{id})

	decoded := decodeObject(t, w.Render())
	require.Equal(t, id.String(), decoded["motorId"])
	require.Equal(t, []any{id.String()}, decoded["motorIds"])
	require.Zero(t, reg.Len())
	require.Equal(t, 1000001, w.ToID(1000001))
}

func TestJSONWriter_DeclareRootTwice(t *testing.T) {
	w := NewJSONWriter(Options{})
	require.NoError(t, w.DeclareRoot("search-response"))

	var pv *ProtocolViolationError
	require.True(t, errors.As(w.DeclareRoot("motor-info"), &pv))
	require.Equal(t, "search-response", pv.Root)

	w = NewJSONWriter(Options{Root: "motor-info"})
	require.Error(t, w.DeclareRoot("motor-info"))
}

func TestJSONWriter_DeclareRootEmptyName(t *testing.T) {
	w := NewJSONWriter(Options{})

	require.ErrorIs(t, w.DeclareRoot(""), ErrEmptyRoot)
	require.NoError(t, w.DeclareRoot("x"))

	var pv *ProtocolViolationError
	require.True(t, errors.As(w.DeclareRoot("y"), &pv))
	require.Equal(t, "x", pv.Root)
}

func TestJSONWriter_AbsentValues(t *testing.T) {
	var missing *string

	w := NewJSONWriter(Options{})
	require.False(t, w.WriteElement("a", nil))
	require.False(t, w.WriteElement("b", missing))
	require.False(t, w.WriteElementList("cs", []int{}))
	require.False(t, w.WriteLengthList("ds", nil))
	require.False(t, w.WriteID("e", nil))

	require.Equal(t, "{}", string(w.Render()))
}

func TestJSONWriter_Values(t *testing.T) {
	updated := time.Date(2021, 5, 17, 8, 30, 0, 0, time.UTC)

	w := NewJSONWriter(Options{})
	require.True(t, w.WriteElement("updated-on", updated))
	require.True(t, w.WriteElement("nan", math.NaN()))
	require.True(t, w.WriteElement("certified", "true"))
	require.True(t, w.WriteElement("designation", "G80T-7"))
	require.True(t, w.WriteElement("name", `Loki <"Research"> & Co`))
	require.True(t, w.WriteElement("total-impulse", Fields{
		{Name: "value", Value: "49.6"},
		{Name: "unit", Value: "Ns"},
		{Name: "note", Value: nil},
	}))

	decoded := decodeObject(t, w.Render())
	require.Equal(t, "2021-05-17T08:30:00.000Z", decoded["updatedOn"])
	require.Contains(t, decoded, "nan")
	require.Nil(t, decoded["nan"])
	require.Equal(t, true, decoded["certified"])
	require.Equal(t, "G80T-7", decoded["designation"])
	require.Equal(t, `Loki <"Research"> & Co`, decoded["name"])
	require.Equal(t, map[string]any{"value": 49.6, "unit": "Ns", "note": nil}, decoded["totalImpulse"])
}

func TestJSONWriter_LengthList(t *testing.T) {
	w := NewJSONWriter(Options{})
	require.True(t, w.WriteLengthList("diameters", []float64{0.0183, 0.020, math.NaN(), 0.1}))

	decoded := decodeObject(t, w.Render())
	require.Equal(t, []any{18.3, 20.0, nil, 100.0}, decoded["diameters"])
}

func TestJSONWriter_CloseAndRender(t *testing.T) {
	w := NewJSONWriter(Options{})
	w.WriteElement("a", 1)

	first := w.Render()
	require.False(t, w.WriteElement("b", 2))
	require.False(t, w.WriteElementList("cs", []int{1}))
	require.Equal(t, first, w.Render())

	first[0] = 'x'
	require.NotEqual(t, first, w.Render())
}

// -----------------------------------------------------------------------------
// Utility functions

func decodeObject(t *testing.T, doc []byte) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, stdjson.Unmarshal(doc, &out))
	return out
}
