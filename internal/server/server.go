package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/verilens/verilens/internal/classify"
	"github.com/verilens/verilens/internal/model"
	"github.com/verilens/verilens/internal/pipeline"
)

// Server exposes the analysis pipeline over HTTP
type Server struct {
	engine   *gin.Engine
	pipeline *pipeline.Pipeline
	cfg      model.ServerConfig
	maxBytes int64
	maxList  int
}

// New creates a server around the pipeline
func New(cfg *model.Config, p *pipeline.Pipeline) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	s := &Server{
		engine:   engine,
		pipeline: p,
		cfg:      cfg.Server,
		maxBytes: cfg.HTTP.MaxImageBytes,
		maxList:  cfg.History.MaxList,
	}

	engine.GET("/healthz", s.handleHealth)
	engine.POST("/api/analyze", s.handleAnalyze)
	engine.GET("/api/history", s.handleHistory)

	return s
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "verilens"})
}

// handleAnalyze accepts either a multipart "image" file or a form/query
// "url" field, mirroring the two intake paths of the original app.
func (s *Server) handleAnalyze(c *gin.Context) {
	ctx := c.Request.Context()

	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
			return
		}
		if int64(len(data)) > s.maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload size limit"})
			return
		}

		rec, err := s.pipeline.AnalyzeBytes(ctx, data, header.Filename, model.SourceUpload)
		s.respond(c, rec, err)
		return
	}

	if rawURL := c.PostForm("url"); rawURL != "" {
		rec, err := s.pipeline.AnalyzeURL(ctx, rawURL)
		s.respond(c, rec, err)
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "provide an 'image' file or a 'url' field"})
}

func (s *Server) respond(c *gin.Context, rec *model.ScanRecord, err error) {
	if err != nil {
		status := http.StatusBadGateway
		if !errors.Is(err, classify.ErrAllProvidersFailed) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleHistory(c *gin.Context) {
	store := s.pipeline.History()
	if store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history is disabled"})
		return
	}

	limit := s.maxList
	if raw := c.Query("limit"); raw != "" {
		if n, err := parseLimit(raw, s.maxList); err == nil {
			limit = n
		}
	}

	records, err := store.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, _ := store.Count()

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
	})
}
