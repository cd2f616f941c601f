// Package formatter builds API response documents in XML or JSON from a single
// sequence of writer calls.
//
// The basic model is:
//  1. create a writer with New (or NewXMLWriter / NewJSONWriter), naming the
//     root element in Options or with DeclareRoot
//  2. add single elements or lists of elements
//  3. Close
//  4. Render or Send
//
// Element names use the XML convention of lower-case words joined by hyphens.
// The XML writer emits them unchanged and names list members with the singular
// of the list name; the JSON writer converts them to camelCase keys:
//
//	w.WriteElementList("the-things", []string{"one", "two", "three"})
//
//	<the-things><the-thing>one</the-thing><the-thing>two</the-thing>...</the-things>
//
//	"theThings": ["one", "two", "three"]
//
// Absent values (nil, or a nil pointer, slice or map) are never written, so
// optional fields can be passed unconditionally.
//
// For clients of the previous API, whose object IDs were integers, the XML
// writer accepts a Compat option that replaces string identifiers with small
// integers drawn from an idmap.Registry. The mapping lives in memory only.
//
// Serialization is done manually for precise control over the output format.
package formatter
