package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/diploma-scanner/internal/gallery"
	"github.com/jonathan/diploma-scanner/internal/ingestion"
	"github.com/jonathan/diploma-scanner/internal/metrics"
	"github.com/jonathan/diploma-scanner/internal/types"
	"github.com/jonathan/diploma-scanner/schemas"
	"go.uber.org/zap"
)

// handleExtract runs the extractor over the posted document.
// A text/plain body is the document itself, with html and legacy taken from
// the query string; any other body is decoded as a types.ExtractRequest.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := s.decodeExtractRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	text := req.Text
	if req.HTML {
		text, err = ingestion.TextFromHTML(text)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	extractor, mode := s.extractor, metrics.ModeStandard
	if req.Legacy {
		extractor, mode = s.legacyExtractor, metrics.ModeLegacy
	}

	record, report := extractor.ExtractWithReport(text)
	metrics.ObserveReport(mode, report.Outcomes)

	resp := types.ExtractResponse{
		ID:     uuid.New().String(),
		Record: record,
		Report: report.Outcomes,
	}
	s.logger.Debug("document extracted",
		zap.String("id", resp.ID),
		zap.String("mode", mode),
		zap.Int("matched", report.Matched()),
		zap.Strings("fallbacks", report.Fallbacks()))

	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) decodeExtractRequest(r *http.Request) (*types.ExtractRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "text/plain" {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		req := &types.ExtractRequest{Text: string(body)}
		if req.HTML, err = queryBool(r, "html"); err != nil {
			return nil, err
		}
		if req.Legacy, err = queryBool(r, "legacy"); err != nil {
			return nil, err
		}
		if err := ingestion.RequireText(req.Text, "request body"); err != nil {
			return nil, err
		}
		return req, nil
	}

	var req types.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "text", Message: "is required"}
	}
	if err := ingestion.RequireText(req.Text, "text"); err != nil {
		return nil, err
	}
	return &req, nil
}

// handleRepos serves one display page of the repository gallery.
func (s *Server) handleRepos(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	perPage, err := queryInt(r, "per_page", s.displayPageSize)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	repos, err := s.gallery.Repos(r.Context())
	if err != nil {
		s.logger.Error("gallery failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, gallery.Paginate(repos, page, perPage))
}

// handleSchema returns the JSON Schema of the extracted record.
func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, schemas.DiplomaRecordSchema); err != nil {
		s.logger.Warn("failed to write schema", zap.Error(err))
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrValidation{Field: key, Message: "must be an integer"}
	}
	return n, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ErrValidation{Field: key, Message: "must be a boolean"}
	}
	return b, nil
}
