// Package server exposes a trained classifier over HTTP.
package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bm25tree/internal/models"
)

//go:generate mockgen -source=server.go -destination=mock_classifier_test.go -package=server

// Classifier is the part of models.TextClassifier the handlers use.
type Classifier interface {
	Classify(text string) (bool, error)
	ClassifyBatch(texts []string) ([]bool, error)
	Prune(n int)
	Print(w io.Writer) error
	Stats() models.TreeStats
}

type Options struct {
	// APIKey, when set, must be sent as X-API-Key to mutating endpoints.
	APIKey string
	// StaticDir holds index.html and the files served under /static.
	StaticDir string
	Logger    *zap.Logger
}

type handler struct {
	clf    Classifier
	logger *zap.Logger
}

type batchReq struct {
	Texts []string `json:"texts" binding:"required"`
}

// New returns the router:
//
//	GET  /          index.html from StaticDir
//	GET  /query?s=  true or false
//	POST /batch     {"texts": [...]} -> {"labels": [...]}
//	GET  /tree      the printed tree
//	GET  /stats     node, leaf and depth counts
//	POST /prune?n=  prune, then return the new stats
//	GET  /healthz
func New(clf Classifier, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{clf: clf, logger: logger}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	index := filepath.Join(opts.StaticDir, "index.html")
	r.GET("/", func(c *gin.Context) {
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no index page"})
			return
		}
		c.File(index)
	})
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/query", h.query)
	r.POST("/batch", h.batch)
	r.GET("/tree", h.tree)
	r.GET("/stats", func(c *gin.Context) { c.JSON(http.StatusOK, h.clf.Stats()) })

	admin := r.Group("/")
	admin.Use(apiKeyMiddleware(opts.APIKey))
	admin.POST("/prune", h.prune)
	return r
}

func (h *handler) query(c *gin.Context) {
	s, ok := c.GetQuery("s")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter s"})
		return
	}
	label, err := h.clf.Classify(s)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *handler) batch(c *gin.Context) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	labels, err := h.clf.ClassifyBatch(req.Texts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

func (h *handler) tree(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.clf.Print(&buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (h *handler) prune(c *gin.Context) {
	n, err := strconv.Atoi(c.Query("n"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a non-negative integer"})
		return
	}
	h.clf.Prune(n)
	st := h.clf.Stats()
	h.logger.Info("tree pruned", zap.Int("n", n), zap.Int("nodes", st.Nodes), zap.Int("leaves", st.Leaves))
	c.JSON(http.StatusOK, st)
}

func (h *handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, models.ErrEmptyTree) {
		status = http.StatusServiceUnavailable
	}
	h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func apiKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
