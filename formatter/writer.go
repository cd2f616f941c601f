package formatter

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/thrustcurve/dataformat/idmap"
	"github.com/thrustcurve/dataformat/utils"
	"golang.org/x/xerrors"
)

// DefaultRoot names the root element the XML writer opens when content is
// written before any root was declared.
const DefaultRoot = "response"

// Writer is the document protocol shared by the XML and JSON writers. A writer
// holds one in-progress document and must not be used from several goroutines
// at once.
type Writer interface {
	// ContentType returns the MIME type of the rendered document.
	ContentType() string

	// Compat reports whether string identifiers are replaced by integers.
	Compat() bool

	// DeclareRoot names the document root. It may be called at most once.
	DeclareRoot(name string) error

	// WriteElement writes a single named value. It returns false and writes
	// nothing when the value is absent.
	WriteElement(name string, value any) bool

	// WriteElementList writes every member of a slice or array under the
	// list name. It returns false for an absent or empty list.
	WriteElementList(name string, values any) bool

	// WriteLengthList writes lengths given in meters as millimetre figures.
	WriteLengthList(name string, meters []float64) bool

	// WriteID is WriteElement for identifier values.
	WriteID(name string, value any) bool

	// WriteIDList is WriteElementList for identifier values.
	WriteIDList(name string, values any) bool

	// ToID maps a value received from a client back to the identifier it
	// stands for.
	ToID(value any) any

	// Close finalizes the document. Only the first call has an effect.
	Close()

	// Render closes the writer and returns the document.
	Render() []byte

	// Send sets the content type on the response and writes the document.
	Send(w http.ResponseWriter) error
}

// Options configures a new writer.
type Options struct {
	// Root names the document root element (XML only).
	Root string

	// Compat replaces string identifiers with integers (XML only).
	Compat bool

	// Registry holds the identifier mapping used in compatibility mode. The
	// process-wide idmap.Default() is used when nil.
	Registry *idmap.Registry

	// Indent pretty-prints XML output with the given indentation.
	Indent string
}

// Kind selects the document format.
type Kind string

const (
	KindXML  Kind = "xml"
	KindJSON Kind = "json"
)

// ErrUnknownKind is returned for a format name that has no writer.
var ErrUnknownKind = errors.New("unknown document format")

// ErrEmptyRoot is returned when a root is declared with an empty name.
var ErrEmptyRoot = errors.New("document root needs a name")

// ParseKind resolves a format name such as "xml" or "JSON".
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case KindXML:
		return KindXML, nil
	case KindJSON:
		return KindJSON, nil
	}
	return "", xerrors.Errorf("format %q: %w", name, ErrUnknownKind)
}

// New creates a writer for the given format.
func New(kind Kind, opts Options) (Writer, error) {
	switch kind {
	case KindXML:
		return NewXMLWriter(opts), nil
	case KindJSON:
		return NewJSONWriter(opts), nil
	}
	return nil, xerrors.Errorf("format %q: %w", string(kind), ErrUnknownKind)
}

// ProtocolViolationError is returned when a document root is declared while
// the document already has one.
type ProtocolViolationError struct {
	Root string
}

func (e *ProtocolViolationError) Error() string {
	return "document already has a root (" + e.Root + ")"
}

// Field is one entry of a structured element value.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered structured element value. The XML writer uses the first
// field as the element text and the others as attributes; the JSON writer
// writes an object.
type Fields []Field

func send(w http.ResponseWriter, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		return xerrors.Errorf("failed to send document: %v", err)
	}
	return nil
}

// absent reports whether v carries no value.
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// deref follows non-nil pointers to the value they hold.
func deref(v any) any {
	for {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return v
		}
		v = rv.Elem().Interface()
	}
}

// listValues flattens a slice or array into its members. Any other present
// value is a list of one.
func listValues(values any) []any {
	if absent(values) {
		return nil
	}
	values = deref(values)
	switch vs := values.(type) {
	case []any:
		return vs
	case Fields:
		return []any{vs}
	}
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{values}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// lengthValues converts lengths in meters to millimetre strings. Non-finite
// lengths become absent members.
func lengthValues(meters []float64) []any {
	out := make([]any, len(meters))
	for i, m := range meters {
		if s, ok := utils.PresentableLength(m); ok {
			out[i] = s
		}
	}
	return out
}

// fieldsOf returns the structured form of v: Fields as-is, or a map with
// string keys visited in key order.
func fieldsOf(v any) (Fields, bool) {
	if f, ok := v.(Fields); ok {
		return f, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	out := make(Fields, len(keys))
	for i, k := range keys {
		out[i] = Field{Name: k, Value: rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()}
	}
	return out, true
}

// identifierString returns the string form of an identifier value, if it has
// one: strings, named string types and fmt.Stringer implementations such as
// xid.ID. Times are not identifiers.
func identifierString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, true
	case time.Time:
		return "", false
	case fmt.Stringer:
		return id.String(), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
