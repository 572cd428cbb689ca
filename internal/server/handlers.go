package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	pkgio "github.com/matzehuels/squaremap/pkg/io"

	"github.com/matzehuels/squaremap/pkg/buildinfo"
	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/errors"
	"github.com/matzehuels/squaremap/pkg/observability"
	"github.com/matzehuels/squaremap/pkg/pipeline"
)

// layoutRequest is the body of /v1/layout and /v1/render/{format}. The
// embedded options supply width, height, alignment, style, palette and the
// other render switches.
type layoutRequest struct {
	pipeline.Options
	Items []dataset.Item `json:"items"`
}

type batchRequest struct {
	Requests []layoutRequest `json:"requests"`
}

type batchResponse struct {
	Layouts []dataset.Layout `json:"layouts"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Item    string      `json:"item,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.counters == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "metrics are not enabled"))
		return
	}
	writeJSON(w, r, http.StatusOK, s.counters.Snapshot())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.layout(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := pkgio.WriteLayoutJSON(l, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatJSON])
	w.WriteHeader(http.StatusOK)
	writeBody(w, r, buf.Bytes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	var req layoutRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.layout(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.options(r.Context(), req)
	opts.Formats = []string{format}
	artifacts, err := s.runner.Render(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	writeBody(w, r, data)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Requests) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeEmptyInput, "batch has no requests"))
		return
	}
	if s.settings.MaxBatch > 0 && len(req.Requests) > s.settings.MaxBatch {
		s.writeError(w, r, errors.New(errors.ErrCodePayloadTooLarge, "batch of %d exceeds the limit of %d", len(req.Requests), s.settings.MaxBatch))
		return
	}

	layouts := make([]dataset.Layout, len(req.Requests))
	g, gctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.settings.BatchLimit)
	for i, lr := range req.Requests {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			l, err := s.layout(gctx, lr)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "request %d: %s", i, errors.UserMessage(err))
			}
			layouts[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, batchResponse{Layouts: layouts})
}

func (s *Server) layout(ctx context.Context, req layoutRequest) (dataset.Layout, error) {
	ds := dataset.Dataset{Title: req.Title, Items: req.Items}
	return s.runner.Layout(ctx, ds, s.options(ctx, req))
}

// options copies the client options and applies server-side limits.
func (s *Server) options(ctx context.Context, req layoutRequest) pipeline.Options {
	opts := req.Options
	opts.MaxItems = s.settings.MaxItems
	opts.Logger = log.FromContext(ctx)
	return opts
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodePayloadTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if stderrors.Is(err, io.EOF) {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err)
	}
	return nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodePayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Code: errors.GetCode(err), Message: errors.UserMessage(err), Item: errors.ItemOf(err)}
	if resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
		resp.Message = "internal error"
	}
	if status == http.StatusGatewayTimeout {
		resp.Message = "request timed out"
	}

	observability.HTTP().OnError(r.Context(), observability.RequestEvent{
		Method: r.Method,
		Route:  routePattern(r),
		Status: status,
		Err:    err,
	})
	logger := log.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Debug("request rejected", "code", resp.Code, "error", fmt.Sprint(err))
	}
	writeJSON(w, r, status, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.FromContext(r.Context()).Debug("write response failed", "error", err)
	}
}

// writeBody writes an already encoded body. Failures usually mean the
// client went away, so they are only logged.
func writeBody(w http.ResponseWriter, r *http.Request, data []byte) {
	if _, err := w.Write(data); err != nil {
		log.FromContext(r.Context()).Debug("write response failed", "error", err, "bytes", len(data))
	}
}
