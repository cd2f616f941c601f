package dataformat

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/thrustcurve/dataformat/catalog"
	"github.com/thrustcurve/dataformat/formatter"
)

// QueryError is a client mistake in the request. It is reported with status
// 400 and its message as the error document text.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// NotFoundError reports a request for a motor the catalog does not have.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

// queryParams flattens the query to its first value per key. Keys are kept
// as sent; criteria decoding matches them without regard to case.
func queryParams(q url.Values) map[string]any {
	m := make(map[string]any, len(q))
	for k, v := range q {
		if len(v) > 0 {
			m[k] = strings.TrimSpace(v[0])
		}
	}
	return m
}

// parseCompat reads the compat parameter, falling back to def when absent.
func parseCompat(q url.Values, def bool) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(q.Get("compat")))
	switch s {
	case "":
		return def, nil
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, &QueryError{Msg: "compat must be true or false."}
}

// parseCriteria decodes search criteria from the query. Values are weakly
// typed, so diameter=29 arrives as a number.
func parseCriteria(q url.Values) (catalog.Criteria, error) {
	var crit catalog.Criteria
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &crit,
	})
	if err != nil {
		return crit, err
	}

	params := queryParams(q)
	delete(params, "compat")
	if err := dec.Decode(params); err != nil {
		return crit, &QueryError{Msg: "Malformed search criteria: " + err.Error()}
	}

	if crit.Empty() {
		return crit, &QueryError{Msg: "You must provide at least one search criterion."}
	}
	if crit.Diameter < 0 {
		return crit, &QueryError{Msg: "Diameter must be a positive number of millimeters."}
	}
	return crit, nil
}

// parseMotorID reads the motorId parameter. A numeric value is passed
// through the writer's ToID so compatibility clients can send back the
// integers they were given.
func parseMotorID(q url.Values, w formatter.Writer) (string, error) {
	raw := strings.TrimSpace(q.Get("motorId"))
	if raw == "" {
		return "", &QueryError{Msg: "You must provide a motorId."}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw, nil
	}
	if id, ok := w.ToID(n).(string); ok {
		return id, nil
	}
	return raw, nil
}
