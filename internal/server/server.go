// Package server exposes the rule-based toolkit (sanitizer, citation
// validator, QA checklist) over HTTP for editor integrations and
// pipeline use. LLM-backed operations stay on the CLI.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quarterdeck/taxdesk/internal/citation"
	"github.com/quarterdeck/taxdesk/internal/config"
	"github.com/quarterdeck/taxdesk/internal/qa"
	"github.com/quarterdeck/taxdesk/internal/redact"
)

type Server struct {
	cfg *config.Config
	log *zap.Logger
}

func NewServer(cfg *config.Config, log *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, log: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/sanitize", s.Sanitize)
	r.POST("/validate", s.Validate)
	r.POST("/qa", s.QA)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type SanitizeRequest struct {
	Text              string `json:"text" binding:"required"`
	SelfPrefix        string `json:"self_prefix"`
	PreserveStructure *bool  `json:"preserve_structure"`
}

func (s *Server) Sanitize(c *gin.Context) {
	var req SanitizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cfg := redact.Config{
		SelfPrefix:        s.cfg.Sanitizer.SelfPrefix,
		PreserveStructure: s.cfg.Sanitizer.PreserveStructure,
	}
	if req.SelfPrefix != "" {
		cfg.SelfPrefix = req.SelfPrefix
	}
	if req.PreserveStructure != nil {
		cfg.PreserveStructure = *req.PreserveStructure
	}

	sanitizer := redact.NewSanitizer(cfg)
	sanitized := sanitizer.Sanitize(req.Text)

	requestID := uuid.NewString()
	s.log.Info("sanitize request served",
		zap.String("request_id", requestID),
		zap.Int("total_redactions", sanitizer.Report().TotalRedactions))

	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"sanitized":  sanitized,
		"report":     sanitizer.Report(),
	})
}

type ValidateRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	valid, issues := citation.ValidateAll(req.Text)
	if issues == nil {
		issues = []citation.Issue{}
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": uuid.NewString(),
		"valid":      valid,
		"issues":     issues,
		"summary":    citation.Summary(req.Text),
	})
}

type QARequest struct {
	Memo       string `json:"memo" binding:"required"`
	SelfPrefix string `json:"self_prefix"`
}

func (s *Server) QA(c *gin.Context) {
	var req QARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	prefix := s.cfg.Sanitizer.SelfPrefix
	if req.SelfPrefix != "" {
		prefix = req.SelfPrefix
	}

	report := qa.NewChecker(req.Memo, prefix).Run()

	c.JSON(http.StatusOK, gin.H{
		"request_id": uuid.NewString(),
		"passed":     report.Passed(),
		"score":      report.Score(),
		"report":     report,
	})
}
