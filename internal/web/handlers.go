package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yildizm/spamscope/internal/analysis"
	"github.com/yildizm/spamscope/internal/analyzer"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// pageData feeds the index template
type pageData struct {
	Title          string
	Subtitle       string
	Placeholder    string
	ResultsHeading string
	SpamCardTitle  string
	AICardTitle    string
	Footer         string

	Text   string
	Screen analyzer.Screen
}

func newPageData(text string, screen analyzer.Screen) pageData {
	return pageData{
		Title:          analyzer.Title,
		Subtitle:       analyzer.Subtitle,
		Placeholder:    analyzer.Placeholder,
		ResultsHeading: analyzer.ResultsHeading,
		SpamCardTitle:  analyzer.SpamCardTitle,
		AICardTitle:    analyzer.AICardTitle,
		Footer:         analyzer.Footer,
		Text:           text,
		Screen:         screen,
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": ServiceName,
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageData("", analyzer.Render(analyzer.Idle())))
}

func (s *Server) handleSubmitForm(c *gin.Context) {
	text := c.PostForm("text")
	state := s.submit(c, text)
	c.HTML(statusFor(state), "index.html", newPageData(text, analyzer.Render(state)))
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	state := s.submit(c, req.Text)
	c.JSON(statusFor(state), analyzer.Render(state))
}

// submit runs one submission on a fresh analyzer
func (s *Server) submit(c *gin.Context, text string) analyzer.State {
	a := analyzer.New(s.service, s.log)
	return a.Submit(c.Request.Context(), text)
}

// statusFor maps the final state to an HTTP status
func statusFor(state analyzer.State) int {
	if state.Phase() != analyzer.PhaseError {
		return http.StatusOK
	}
	if state.Failure() == analyzer.FailureValidation {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
