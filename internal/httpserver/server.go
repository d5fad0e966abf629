// Package httpserver is the dashboard backend: it serves the search
// datasets and acknowledges spreadsheet uploads.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/duckdb"
)

// DefaultMaxUploadBytes bounds the upload request body.
const DefaultMaxUploadBytes = 32 << 20

// ReceiptStore is the narrow store contract required by the HTTP API.
type ReceiptStore interface {
	RecordUpload(r duckdb.UploadReceipt) error
	RecentUploads(limit int) ([]duckdb.UploadReceipt, error)
	UploadCount() (int64, error)
}

// Config configures the server.
type Config struct {
	Addr           string
	DataDir        string
	MaxUploadBytes int64
	CORSAllowAll   bool
	Log            *zap.Logger
}

// Server provides the backend HTTP API.
type Server struct {
	cfg       Config
	store     ReceiptStore
	log       *zap.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	now       func() time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(cfg Config, store ReceiptStore) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "0.0.0.0:8000"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:       cfg,
		store:     store,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Handler builds the routed engine, wrapped in CORS when enabled.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/", s.handleRoot)
	r.GET("/items", s.handleItems)
	r.GET("/health", s.handleHealth)
	r.GET("/data/responses/:file", s.handleDataset)
	r.POST("/test", s.handleUpload)
	r.GET("/uploads", s.handleUploads)

	if !s.cfg.CORSAllowAll {
		return r
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	})(r)
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello": "World!!!"})
}

func (s *Server) handleItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"values": []gin.H{
			{"id": 1, "value": "item1"},
			{"id": 2, "value": "item2"},
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	}
	if s.store != nil {
		n, err := s.store.UploadCount()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
			return
		}
		body["uploads"] = n
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleDataset(c *gin.Context) {
	b, err := readDataset(s.cfg.DataDir, c.Param("file"))
	if errors.Is(err, errDatasetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
		return
	}
	if err != nil {
		s.log.Warn("read dataset", zap.String("file", c.Param("file")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read dataset"})
		return
	}
	c.Data(http.StatusOK, "application/json", b)
}

func (s *Server) handleUpload(c *gin.Context) {
	if c.Request.ContentLength > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": "field 'file' is required"})
		return
	}

	receipt := duckdb.UploadReceipt{
		ID:              uuid.NewString(),
		Filename:        fh.Filename,
		SizeBytes:       fh.Size,
		ContentType:     fh.Header.Get("Content-Type"),
		Source:          c.PostForm("source"),
		ClientTimestamp: c.PostForm("timestamp"),
		ReceivedAt:      s.now().UTC(),
	}
	if s.store != nil {
		if err := s.store.RecordUpload(receipt); err != nil {
			s.log.Error("record upload", zap.String("file", fh.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record upload"})
			return
		}
	}

	s.log.Info("upload received",
		zap.String("id", receipt.ID),
		zap.String("file", receipt.Filename),
		zap.Int64("bytes", receipt.SizeBytes),
		zap.String("source", receipt.Source))
	c.JSON(http.StatusOK, gin.H{
		"message": "File received",
		"receipt": receipt,
	})
}

func (s *Server) handleUploads(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, gin.H{"uploads": []duckdb.UploadReceipt{}})
		return
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	receipts, err := s.store.RecentUploads(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list uploads"})
		return
	}
	if receipts == nil {
		receipts = []duckdb.UploadReceipt{}
	}
	c.JSON(http.StatusOK, gin.H{"uploads": receipts})
}
