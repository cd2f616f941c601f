package formatter

import (
	"bytes"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/thrustcurve/dataformat/utils"
)

// JSONWriter builds a JSON object, one key per element. Element names are
// converted to camelCase and values go through Coerce. Identifiers are never
// remapped.
//
// - implements formatter.Writer
type JSONWriter struct {
	obj     *object
	root    string
	hasRoot bool
	closed  bool
	out     []byte
}

// NewJSONWriter returns an empty JSON writer. The root name in opts is
// recorded but does not appear in the output; compatibility options are
// ignored.
func NewJSONWriter(opts Options) *JSONWriter {
	return &JSONWriter{
		obj:     newObject(),
		root:    opts.Root,
		hasRoot: opts.Root != "",
	}
}

// ContentType implements formatter.Writer.
func (w *JSONWriter) ContentType() string {
	return "application/json"
}

// Compat implements formatter.Writer. JSON documents always carry the real
// identifiers.
func (w *JSONWriter) Compat() bool {
	return false
}

// DeclareRoot implements formatter.Writer. JSON has no root element, but the
// at-most-once rule is enforced so both writers accept the same call
// sequences.
func (w *JSONWriter) DeclareRoot(name string) error {
	if w.hasRoot {
		return &ProtocolViolationError{Root: w.root}
	}
	if name == "" {
		return ErrEmptyRoot
	}
	w.root = name
	w.hasRoot = true
	return nil
}

// WriteElement implements formatter.Writer.
func (w *JSONWriter) WriteElement(name string, value any) bool {
	if w.closed || absent(value) {
		return false
	}
	w.obj.set(utils.CamelCase(name), Coerce(value))
	return true
}

// WriteElementList implements formatter.Writer.
func (w *JSONWriter) WriteElementList(name string, values any) bool {
	return w.writeList(name, listValues(values))
}

// WriteLengthList implements formatter.Writer.
func (w *JSONWriter) WriteLengthList(name string, meters []float64) bool {
	return w.writeList(name, lengthValues(meters))
}

// WriteID implements formatter.Writer.
func (w *JSONWriter) WriteID(name string, value any) bool {
	return w.WriteElement(name, value)
}

// WriteIDList implements formatter.Writer.
func (w *JSONWriter) WriteIDList(name string, values any) bool {
	return w.WriteElementList(name, values)
}

// ToID implements formatter.Writer. It returns the value unchanged.
func (w *JSONWriter) ToID(value any) any {
	return value
}

// Close implements formatter.Writer.
func (w *JSONWriter) Close() {
	w.closed = true
}

// Render implements formatter.Writer. The object is rendered once, indented
// with two spaces, with keys in the order they were first written.
func (w *JSONWriter) Render() []byte {
	w.Close()
	if w.out == nil {
		var compact bytes.Buffer
		appendJSON(&compact, w.obj)

		var out bytes.Buffer
		if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
			w.out = compact.Bytes()
		} else {
			w.out = out.Bytes()
		}
	}
	return bytes.Clone(w.out)
}

// Send implements formatter.Writer.
func (w *JSONWriter) Send(rw http.ResponseWriter) error {
	return send(rw, w.ContentType(), w.Render())
}

func (w *JSONWriter) writeList(name string, members []any) bool {
	if w.closed || len(members) == 0 {
		return false
	}
	arr := make([]any, len(members))
	for i, m := range members {
		arr[i] = Coerce(m)
	}
	w.obj.set(utils.CamelCase(name), arr)
	return true
}

// object is a JSON object that keeps keys in insertion order.
type object struct {
	keys []string
	vals map[string]any
}

func newObject() *object {
	return &object{vals: make(map[string]any)}
}

func (o *object) set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// appendJSON encodes a coerced value. Objects and arrays are walked here so key
// order survives; everything else is encoded by go-json. A value go-json
// cannot encode is written as null.
func appendJSON(b *bytes.Buffer, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case *object:
		b.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			appendJSON(b, k)
			b.WriteByte(':')
			appendJSON(b, x.vals[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			appendJSON(b, e)
		}
		b.WriteByte(']')
	default:
		data, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
		if err != nil {
			b.WriteString("null")
			return
		}
		b.Write(data)
	}
}
