package dataformat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/thrustcurve/dataformat/formatter"
	"github.com/thrustcurve/dataformat/internal"
)

func (s *Server) handleMetadata(kind formatter.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.allowed(w, r, kind, endpointMetadata) {
			return
		}
		compat, err := parseCompat(r.URL.Query(), s.cfg.API.Compat)
		if err != nil {
			s.fail(w, kind, endpointMetadata, err)
			return
		}

		key := s.cache.memoKey(endpointMetadata, string(kind), strconv.FormatBool(compat))
		doc, cached, err := s.cache.GetOrRender(key, func() (Document, error) {
			fw := s.newWriter(kind, compat)
			if err := WriteMetadata(fw, s.catalog); err != nil {
				return Document{}, err
			}
			s.metrics.documentRendered(string(kind), endpointMetadata)
			return Document{ContentType: fw.ContentType(), Body: fw.Render()}, nil
		})
		if err != nil {
			s.fail(w, kind, endpointMetadata, err)
			return
		}

		writeDocument(w, http.StatusOK, doc)
		logSent(endpointMetadata, kind, compat, cached)
	}
}

func (s *Server) handleSearch(kind formatter.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.allowed(w, r, kind, endpointSearch) {
			return
		}
		q := r.URL.Query()
		compat, err := parseCompat(q, s.cfg.API.Compat)
		if err != nil {
			s.fail(w, kind, endpointSearch, err)
			return
		}
		crit, err := parseCriteria(q)
		if err != nil {
			s.fail(w, kind, endpointSearch, err)
			return
		}

		fw := s.newWriter(kind, compat)
		if err := WriteSearch(fw, crit, s.catalog.Search(crit)); err != nil {
			s.fail(w, kind, endpointSearch, err)
			return
		}
		s.send(w, fw, kind, endpointSearch)
		logSent(endpointSearch, kind, compat, false)
	}
}

func (s *Server) handleMotor(kind formatter.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.allowed(w, r, kind, endpointMotor) {
			return
		}
		q := r.URL.Query()
		compat, err := parseCompat(q, s.cfg.API.Compat)
		if err != nil {
			s.fail(w, kind, endpointMotor, err)
			return
		}

		fw := s.newWriter(kind, compat)
		id, err := parseMotorID(q, fw)
		if err != nil {
			s.fail(w, kind, endpointMotor, err)
			return
		}
		m, ok := s.catalog.Get(id)
		if !ok {
			s.fail(w, kind, endpointMotor, &NotFoundError{Msg: "No such motor: " + q.Get("motorId")})
			return
		}

		if err := WriteMotor(fw, m); err != nil {
			s.fail(w, kind, endpointMotor, err)
			return
		}
		s.send(w, fw, kind, endpointMotor)
		logSent(endpointMotor, kind, compat, false)
	}
}

func (s *Server) newWriter(kind formatter.Kind, compat bool) formatter.Writer {
	fw, err := formatter.New(kind, formatter.Options{
		Compat:   compat,
		Registry: s.ids,
		Indent:   s.cfg.Server.Indent,
	})
	if err != nil {
		// Routes are only registered for known kinds.
		panic(err)
	}
	return fw
}

func (s *Server) allowed(w http.ResponseWriter, r *http.Request, kind formatter.Kind, endpoint string) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	s.failWithStatus(w, kind, endpoint, http.StatusMethodNotAllowed, "Method not allowed: "+r.Method)
	return false
}

func (s *Server) send(w http.ResponseWriter, fw formatter.Writer, kind formatter.Kind, endpoint string) {
	if err := fw.Send(w); err != nil {
		internal.Logger.Warn().Err(err).Str("endpoint", endpoint).Msg("send failed")
		return
	}
	s.metrics.documentRendered(string(kind), endpoint)
}

// fail answers with an error document. Query errors are the client's fault
// and keep their message; anything else is reported as an internal error.
func (s *Server) fail(w http.ResponseWriter, kind formatter.Kind, endpoint string, err error) {
	var qe *QueryError
	var nf *NotFoundError
	switch {
	case errors.As(err, &qe):
		s.failWithStatus(w, kind, endpoint, http.StatusBadRequest, qe.Msg)
	case errors.As(err, &nf):
		s.failWithStatus(w, kind, endpoint, http.StatusNotFound, nf.Msg)
	default:
		internal.Logger.Error().Err(err).Str("endpoint", endpoint).Msg("request failed")
		s.failWithStatus(w, kind, endpoint, http.StatusInternalServerError, "Internal server error.")
	}
}

func (s *Server) failWithStatus(w http.ResponseWriter, kind formatter.Kind, endpoint string, status int, msg string) {
	s.metrics.requestFailed(endpoint)
	internal.Logger.Debug().Str("endpoint", endpoint).Int("status", status).Msg(msg)

	fw := s.newWriter(kind, false)
	_ = WriteError(fw, msg)
	writeDocument(w, status, Document{ContentType: fw.ContentType(), Body: fw.Render()})
}

func writeDocument(w http.ResponseWriter, status int, doc Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(doc.Body)
}

func logSent(endpoint string, kind formatter.Kind, compat, cached bool) {
	internal.Logger.Debug().
		Str("endpoint", endpoint).
		Str("format", string(kind)).
		Bool("compat", compat).
		Bool("cached", cached).
		Msg("document sent")
}
