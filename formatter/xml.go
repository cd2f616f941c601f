package formatter

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thrustcurve/dataformat/idmap"
	"github.com/thrustcurve/dataformat/utils"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// XMLWriter builds an XML document with a single root element.
//
// - implements formatter.Writer
type XMLWriter struct {
	b      strings.Builder
	stack  []string
	root    string
	hasRoot bool
	indent  string
	compat bool
	ids    *idmap.Registry
	closed bool
	out    []byte
}

// NewXMLWriter returns a writer with the document declaration written and, if
// opts.Root is set, the root element opened.
func NewXMLWriter(opts Options) *XMLWriter {
	w := &XMLWriter{
		indent: opts.Indent,
		compat: opts.Compat,
		ids:    opts.Registry,
	}
	if w.compat && w.ids == nil {
		w.ids = idmap.Default()
	}
	w.b.WriteString(xmlDeclaration)
	if opts.Root != "" {
		_ = w.DeclareRoot(opts.Root)
	}
	return w
}

// ContentType implements formatter.Writer.
func (w *XMLWriter) ContentType() string {
	return "text/xml"
}

// Compat implements formatter.Writer.
func (w *XMLWriter) Compat() bool {
	return w.compat
}

// DeclareRoot implements formatter.Writer. It opens the root element, or
// returns a ProtocolViolationError if the document already has one.
func (w *XMLWriter) DeclareRoot(name string) error {
	if w.hasRoot {
		return &ProtocolViolationError{Root: w.root}
	}
	if name == "" {
		return ErrEmptyRoot
	}
	w.root = name
	w.hasRoot = true
	w.openContainer(name)
	return nil
}

// WriteElement implements formatter.Writer. A Fields or map value writes its
// first entry as the element text and the remaining entries as attributes.
// Non-finite numbers are treated as absent.
func (w *XMLWriter) WriteElement(name string, value any) bool {
	if w.closed || absent(value) {
		return false
	}
	value = deref(value)

	if fields, ok := fieldsOf(value); ok {
		return w.writeStructured(name, fields)
	}

	text, ok := xmlText(value)
	if !ok {
		return false
	}
	w.ensureRoot()
	w.leaf(name, text, nil)
	return true
}

// WriteElementList implements formatter.Writer.
func (w *XMLWriter) WriteElementList(name string, values any) bool {
	return w.writeList(name, listValues(values), w.WriteElement)
}

// WriteLengthList implements formatter.Writer.
func (w *XMLWriter) WriteLengthList(name string, meters []float64) bool {
	return w.writeList(name, lengthValues(meters), w.WriteElement)
}

// WriteID implements formatter.Writer. In compatibility mode a string
// identifier is written as the integer the registry assigns to it.
func (w *XMLWriter) WriteID(name string, value any) bool {
	if w.closed || absent(value) {
		return false
	}
	return w.WriteElement(name, w.remap(deref(value)))
}

// WriteIDList implements formatter.Writer.
func (w *XMLWriter) WriteIDList(name string, values any) bool {
	return w.writeList(name, listValues(values), w.WriteID)
}

// ToID implements formatter.Writer. In compatibility mode an integer that the
// registry handed out is mapped back to its identifier; every other value is
// returned unchanged.
func (w *XMLWriter) ToID(value any) any {
	if !w.compat {
		return value
	}
	n, ok := integral(value)
	if !ok {
		return value
	}
	if id, ok := w.ids.ReverseLookup(n); ok {
		return id
	}
	return value
}

// Close implements formatter.Writer. It ends every open element.
func (w *XMLWriter) Close() {
	if w.closed {
		return
	}
	w.ensureRoot()
	for len(w.stack) > 0 {
		w.closeContainer()
	}
	if w.indent != "" {
		w.b.WriteByte('\n')
	}
	w.closed = true
	w.out = []byte(w.b.String())
}

// Render implements formatter.Writer.
func (w *XMLWriter) Render() []byte {
	w.Close()
	return bytes.Clone(w.out)
}

// Send implements formatter.Writer.
func (w *XMLWriter) Send(rw http.ResponseWriter) error {
	return send(rw, w.ContentType(), w.Render())
}

func (w *XMLWriter) remap(v any) any {
	if !w.compat {
		return v
	}
	if id, ok := identifierString(v); ok {
		return w.ids.LookupOrAssign(id)
	}
	return v
}

func (w *XMLWriter) ensureRoot() {
	if !w.hasRoot {
		_ = w.DeclareRoot(DefaultRoot)
	}
}

func (w *XMLWriter) writeStructured(name string, fields Fields) bool {
	if len(fields) == 0 {
		return false
	}
	var text string
	if !absent(fields[0].Value) {
		text, _ = xmlText(deref(fields[0].Value))
	}
	w.ensureRoot()
	w.leaf(name, text, fields[1:])
	return true
}

func (w *XMLWriter) writeList(name string, members []any, write func(string, any) bool) bool {
	if w.closed || len(members) == 0 {
		return false
	}
	w.ensureRoot()
	w.openContainer(name)
	item := utils.Singular(name)
	for _, m := range members {
		write(item, m)
	}
	w.closeContainer()
	return true
}

func (w *XMLWriter) newline() {
	if w.indent == "" {
		return
	}
	w.b.WriteByte('\n')
	for range w.stack {
		w.b.WriteString(w.indent)
	}
}

func (w *XMLWriter) openContainer(name string) {
	w.newline()
	w.b.WriteString("<")
	w.b.WriteString(name)
	w.b.WriteString(">")
	w.stack = append(w.stack, name)
}

func (w *XMLWriter) closeContainer() {
	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.newline()
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">")
}

func (w *XMLWriter) leaf(name, text string, attrs Fields) {
	w.newline()
	w.b.WriteString("<")
	w.b.WriteString(name)
	for _, a := range attrs {
		if absent(a.Value) {
			continue
		}
		v, ok := xmlText(deref(a.Value))
		if !ok {
			continue
		}
		w.b.WriteString(" ")
		w.b.WriteString(a.Name)
		w.b.WriteString("=\"")
		w.b.WriteString(xmlEscape(v))
		w.b.WriteString("\"")
	}
	w.b.WriteString(">")
	w.b.WriteString(xmlEscape(text))
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">")
}

// xmlText formats a scalar as element text. The boolean is false for values
// that cannot be represented, which are NaN and infinite numbers.
func xmlText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		return utils.Iso8601(x), true
	case fmt.Stringer:
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, rv.Type().Bits()), true
	}
	return fmt.Sprint(v), true
}

// integral returns v as an int64 if it is an integer, or a float holding a
// whole number.
func integral(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// xmlEscape escapes markup characters and replaces anything XML 1.0 cannot
// carry (control characters, invalid UTF-8) with U+FFFD.
func xmlEscape(s string) string {
	return xmlReplacer.Replace(strings.Map(xmlChar, s))
}

func xmlChar(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return utf8.RuneError
	}
	return r
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)
