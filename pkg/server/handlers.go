package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stadump/pkg/buildinfo"
	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/snapshot"
	"github.com/matzehuels/stadump/pkg/timing"
)

// Response headers set on dump output.
const (
	HeaderHash  = "X-Stadump-Hash"
	HeaderLines = "X-Stadump-Lines"
)

// CheckResponse is the body of POST /baselines/{name}/check.
type CheckResponse struct {
	Name     string `json:"name"`
	Match    bool   `json:"match"`
	Revision string `json:"revision,omitempty"`
	Hash     string `json:"hash"`
	Diff     string `json:"diff,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	snap, opts, err := s.readSnapshot(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Dump(r.Context(), "request", snap, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(HeaderHash, res.Hash)
	w.Header().Set(HeaderLines, strconv.Itoa(res.Stats.Lines.Total()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Text)
}

func (s *Server) handleListBaselines(w http.ResponseWriter, r *http.Request) {
	names, err := s.runner.Store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"baselines": names})
}

func (s *Server) handleGetBaseline(w http.ResponseWriter, r *http.Request) {
	name, err := baselineName(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.runner.Store.Get(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutBaseline(w http.ResponseWriter, r *http.Request) {
	name, err := baselineName(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, opts, err := s.readSnapshot(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.runner.SaveSnapshot(r.Context(), name, snap, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleDeleteBaseline(w http.ResponseWriter, r *http.Request) {
	name, err := baselineName(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.runner.Store.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckBaseline(w http.ResponseWriter, r *http.Request) {
	name, err := baselineName(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, opts, err := s.readSnapshot(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.CheckSnapshot(r.Context(), name, snap, opts)
	var mm *errors.MismatchError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, CheckResponse{Name: name, Match: true, Hash: res.Hash})
	case stderrors.As(err, &mm):
		writeJSON(w, http.StatusConflict, CheckResponse{Name: name, Match: false, Hash: res.Hash, Diff: mm.Diff})
	default:
		writeError(w, err)
	}
}

// readSnapshot decodes the request body and the dump query parameters.
func (s *Server) readSnapshot(w http.ResponseWriter, r *http.Request) (*timing.Snapshot, dump.Options, error) {
	q := r.URL.Query()

	format := snapshot.FormatJSON
	if v := q.Get("format"); v != "" {
		f, err := snapshot.ParseFormat(v)
		if err != nil {
			return nil, dump.Options{}, err
		}
		format = f
	}

	var opts dump.Options
	var err error
	if opts.Legacy, err = boolParam(q, "legacy"); err != nil {
		return nil, dump.Options{}, err
	}
	if opts.SortConstraints, err = boolParam(q, "sort"); err != nil {
		return nil, dump.Options{}, err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, dump.Options{}, errors.Wrap(errors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, dump.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	snap, err := s.runner.Decode(r.Context(), bytes.NewReader(body), format, "request")
	if err != nil {
		return nil, dump.Options{}, err
	}
	return snap, opts, nil
}

func boolParam(q url.Values, key string) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: invalid boolean %q", key, v)
	}
	return b, nil
}

// baselineName reads and validates the {name} route parameter.
func baselineName(r *http.Request) (string, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidName, "invalid baseline name escape")
	}
	if err := errors.ValidateBaselineName(name); err != nil {
		return "", err
	}
	return name, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), ErrorResponse{Error: errors.UserMessage(err), Code: code})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidSnapshot,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeBaselineNotFound:
		return http.StatusNotFound
	case errors.ErrCodeBaselineMismatch:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
