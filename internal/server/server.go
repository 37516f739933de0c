// Package server exposes the plagiarism check over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/languages"
	"github.com/getlawrence/antiplag/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	MsgValidation = "Validation Error"
	MsgInternal   = "Internal Error"
)

// Checker runs a single plagiarism check.
type Checker interface {
	Check(ctx context.Context, input domain.CheckInput) (*domain.CheckResult, error)
}

type Server struct {
	checker  Checker
	registry *languages.LanguageRegistry
	logger   logger.Logger
}

func NewServer(checker Checker, registry *languages.LanguageRegistry, log logger.Logger) *Server {
	return &Server{
		checker:  checker,
		registry: registry,
		logger:   logger.OrNop(log),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.POST("/check/", s.Check)
	r.GET("/languages", s.Languages)
	r.GET("/healthz", s.Health)

	return r
}

// ErrorResponse is the body of every non-200 reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
}

func (s *Server) Check(c *gin.Context) {
	var req domain.CheckInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgValidation, Details: err.Error()})
		return
	}
	clean(&req)

	result, err := s.checker.Check(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type languageInfo struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Family languages.Family `json:"family"`
}

func (s *Server) Languages(c *gin.Context) {
	all := s.registry.All()
	out := make([]languageInfo, 0, len(all))
	for _, id := range s.registry.Supported() {
		l := all[id]
		out = append(out, languageInfo{ID: l.ID, Name: l.Linguist, Family: l.Family})
	}
	c.JSON(http.StatusOK, gin.H{"languages": out})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) writeError(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		s.logger.Logf("check failed: %v\n", de)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: de.Message, Details: de.Details})
		return
	}
	s.logger.Logf("internal error: %v\n", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: MsgInternal})
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Logf("%s %s %d %s\n", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// clean normalizes pasted source: carriage returns dropped, trailing
// newlines trimmed.
func clean(in *domain.CheckInput) {
	in.Lang = cleanString(in.Lang)
	in.RefCode = cleanString(in.RefCode)
	for i := range in.Candidates {
		in.Candidates[i].UUID = cleanString(in.Candidates[i].UUID)
		in.Candidates[i].Code = cleanString(in.Candidates[i].Code)
	}
}

func cleanString(s string) string {
	return strings.TrimRight(strings.ReplaceAll(s, "\r", ""), "\n")
}
