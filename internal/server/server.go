// Package server exposes attachments, analytics and chat over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf-chat/internal/ai"
	"github.com/thywilljoshua/pdf-chat/internal/analysis"
	"github.com/thywilljoshua/pdf-chat/internal/attachment"
	"github.com/thywilljoshua/pdf-chat/internal/extract"
)

// Server owns the attachments it creates until they are deleted.
type Server struct {
	processor      *attachment.Processor
	assistant      ai.Assistant
	logger         *zap.Logger
	gatherer       prometheus.Gatherer
	maxUploadBytes int64

	mu          sync.RWMutex
	attachments map[string]*attachment.Attachment
}

type Config struct {
	Processor      *attachment.Processor
	Assistant      ai.Assistant
	Logger         *zap.Logger
	Gatherer       prometheus.Gatherer
	MaxUploadBytes int64
}

func New(cfg Config) *Server {
	s := &Server{
		processor:      cfg.Processor,
		assistant:      cfg.Assistant,
		logger:         cfg.Logger,
		gatherer:       cfg.Gatherer,
		maxUploadBytes: cfg.MaxUploadBytes,
		attachments:    make(map[string]*attachment.Attachment),
	}
	if s.assistant == nil {
		s.assistant = ai.Noop{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = 64 << 20
	}
	return s
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/attachments", s.handleUpload).Methods(http.MethodPost)
	api.HandleFunc("/attachments/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/attachments/{id}", s.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/attachments/{id}/preview", s.handlePreview).Methods(http.MethodGet)
	api.HandleFunc("/attachments/{id}/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/attachments/{id}/keyinfo", s.handleKeyInfo).Methods(http.MethodGet)
	api.HandleFunc("/attachments/{id}/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/attachments/{id}/chat", s.handleChat).Methods(http.MethodPost)
	api.HandleFunc("/attachments/{id}/analysis", s.handleAnalysis).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Close releases every attachment still held.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, att := range s.attachments {
		s.processor.Release(att)
		delete(s.attachments, id)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, http.StatusRequestEntityTooLarge, extract.ErrTooLarge)
			return
		}
		s.writeError(w, http.StatusBadRequest, errors.New("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	src := extract.SourceFile{
		Name: header.Filename,
		Size: header.Size,
		Kind: declaredKind(header),
	}
	// Metadata is checked before the body is read.
	if err := extract.Validate(src); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	if src.Data, err = io.ReadAll(file); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	att, err := s.processor.Process(r.Context(), src)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.mu.Lock()
	s.attachments[att.ID] = att
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, att)
}

// declaredKind is the part's Content-Type, or a guess from the file
// extension when the client sent none or a generic one.
func declaredKind(h *multipart.FileHeader) string {
	kind := h.Header.Get("Content-Type")
	if kind == "" || kind == "application/octet-stream" {
		if guess := mime.TypeByExtension(filepath.Ext(h.Filename)); guess != "" {
			return guess
		}
	}
	return kind
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if att, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, att)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	att, ok := s.attachments[id]
	delete(s.attachments, id)
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	s.processor.Release(att)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	att, ok := s.lookup(w, r)
	if !ok {
		return
	}
	data, kind, ok := s.processor.Preview(att)
	if !ok {
		s.writeError(w, http.StatusGone, errors.New("preview handle released"))
		return
	}
	w.Header().Set("Content-Type", kind)
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if att, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, analysis.ComputeStats(att.ExtractedText, att.PageCount))
	}
}

func (s *Server) handleKeyInfo(w http.ResponseWriter, r *http.Request) {
	if att, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, analysis.ExtractKeyInfo(att.ExtractedText))
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	att, ok := s.lookup(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "found": analysis.Contains(att.ExtractedText, q)})
}

type chatRequest struct {
	Message string       `json:"message"`
	History []ai.Message `json:"history"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	att, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("message is required"))
		return
	}
	reply, err := s.assistant.Chat(r.Context(), req.Message, req.History, att.ExtractedText)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	att, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out, err := s.assistant.Analyze(r.Context(), att.ExtractedText, att.Name)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"analysis": out})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*attachment.Attachment, bool) {
	s.mu.RLock()
	att, ok := s.attachments[mux.Vars(r)["id"]]
	s.mu.RUnlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, errNotFound)
	}
	return att, ok
}
