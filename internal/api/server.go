// Package api exposes the ingest pipeline over HTTP: file uploads, invoice
// queries, PDF rendering, and tax calculation.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/invoiceflow/ingest-cli/internal/engine"
	"github.com/invoiceflow/ingest-cli/internal/model"
	"github.com/invoiceflow/ingest-cli/internal/reader"
	"github.com/invoiceflow/ingest-cli/internal/render"
	"github.com/invoiceflow/ingest-cli/internal/store"
	"github.com/invoiceflow/ingest-cli/internal/tax"
)

// Options configures the API server.
type Options struct {
	AllowedOrigins []string
	RateLimit      rate.Limit
	MaxUploadBytes int64
	AutoApplyTax   bool
}

// Server wires the store and parse engine into HTTP handlers.
type Server struct {
	store   store.Store
	eng     *engine.Engine
	opts    Options
	limiter *rate.Limiter
}

// NewServer creates an API server.
func NewServer(st store.Store, eng *engine.Engine, opts Options) *Server {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 25 << 20
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		store:   st,
		eng:     eng,
		opts:    opts,
		limiter: rate.NewLimiter(opts.RateLimit, int(opts.RateLimit)),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.logRequests)
	r.Use(s.throttle)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/uploads", s.handleUpload)
		r.Get("/uploads/{uploadID}", s.handleGetUpload)
		r.Get("/invoices", s.handleListInvoices)
		r.Get("/invoices/{invoiceID}", s.handleGetInvoice)
		r.Get("/invoices/{invoiceID}/pdf", s.handleInvoicePDF)
		r.Post("/tax/calculate", s.handleCalculateTax)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// uploadResponse is the success body for POST /api/uploads.
type uploadResponse struct {
	UploadID      string              `json:"upload_id"`
	Filename      string              `json:"filename"`
	InvoicesCount int                 `json:"invoices_count"`
	Status        string              `json:"status"`
	Metadata      model.ParseMetadata `json:"metadata"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		writeError(w, http.StatusBadRequest, "only CSV and XLSX files are supported")
		return
	}

	upload, err := s.store.CreateUpload(ctx, header.Filename, header.Size)
	if err != nil {
		zap.L().Error("create upload", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record upload")
		return
	}

	table, err := s.materialize(file, ext)
	if err != nil {
		s.store.FailUpload(ctx, upload.ID, err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := s.eng.Parse(ctx, table)
	if err != nil {
		s.store.FailUpload(ctx, upload.ID, err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.opts.AutoApplyTax {
		for i := range outcome.Invoices {
			tax.ApplyDefault(&outcome.Invoices[i])
		}
	}

	saved, err := s.store.SaveInvoices(ctx, upload.ID, outcome.Invoices)
	if err != nil {
		zap.L().Error("save invoices", zap.String("upload_id", upload.ID), zap.Error(err))
		s.store.FailUpload(ctx, upload.ID, err.Error())
		writeError(w, http.StatusInternalServerError, "failed to save invoices")
		return
	}
	if err := s.store.CompleteUpload(ctx, upload.ID, len(saved)); err != nil {
		zap.L().Error("complete upload", zap.String("upload_id", upload.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to finalize upload")
		return
	}

	zap.L().Info("upload processed",
		zap.String("upload_id", upload.ID),
		zap.String("filename", header.Filename),
		zap.Int("invoices", len(saved)),
	)

	writeJSON(w, http.StatusCreated, uploadResponse{
		UploadID:      upload.ID,
		Filename:      header.Filename,
		InvoicesCount: len(saved),
		Status:        string(model.UploadStatusCompleted),
		Metadata:      outcome.Metadata,
	})
}

// materialize spools the uploaded stream to a temp file and reads it as a
// table. XLSX needs a real file on disk; CSV goes through the same path for
// uniformity.
func (s *Server) materialize(src io.Reader, ext string) (engine.Table, error) {
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return engine.Table{}, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return engine.Table{}, err
	}
	if err := tmp.Close(); err != nil {
		return engine.Table{}, err
	}

	return reader.ReadFile(tmp.Name())
}

func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := s.store.GetUpload(r.Context(), chi.URLParam(r, "uploadID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "upload not found")
			return
		}
		zap.L().Error("get upload", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load upload")
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.InvoiceFilter{
		Status:   model.InvoiceStatus(q.Get("status")),
		Client:   q.Get("client"),
		UploadID: q.Get("upload_id"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	invoices, err := s.store.ListInvoices(r.Context(), filter)
	if err != nil {
		zap.L().Error("list invoices", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := s.store.GetInvoice(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		zap.L().Error("get invoice", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load invoice")
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (s *Server) handleInvoicePDF(w http.ResponseWriter, r *http.Request) {
	invoice, err := s.store.GetInvoice(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		zap.L().Error("get invoice for pdf", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load invoice")
		return
	}

	pdf, err := render.Invoice(*invoice)
	if err != nil {
		zap.L().Error("render pdf", zap.String("invoice_id", invoice.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice_`+invoice.InvoiceNumber+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// taxRequest is the body for POST /api/tax/calculate.
type taxRequest struct {
	Amount        float64 `json:"amount"`
	StateCode     string  `json:"state_code"`
	ClientAddress string  `json:"client_address"`
}

func (s *Server) handleCalculateTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}
	writeJSON(w, http.StatusOK, tax.Calculate(req.Amount, req.StateCode, req.ClientAddress))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
