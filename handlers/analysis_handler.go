package handlers

import (
	"errors"
	"log"
	"net/http"

	"lawwatch-backend/models"
	"lawwatch-backend/service"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles HTTP requests for document analysis
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	taxonomy        *service.TaxonomySnapshot
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, taxonomy *service.TaxonomySnapshot) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		taxonomy:        taxonomy,
	}
}

// AnalyzeRequest represents the request body for a synchronous analysis
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Analyze handles POST /api/analyses
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	numParagraphs := service.ParagraphCount(len(req.Text))
	instructions := service.AnalysisInstructions(numParagraphs, h.taxonomy.Topics())

	analysis, err := h.analysisService.Analyze(c.Request.Context(), instructions, req.Text)
	if err != nil {
		status, code := classifyAnalysisError(err)
		log.Printf("Warning: analysis request failed: %v", err)
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	// The response carries a derived view; the validated record itself is
	// never altered.
	deduplicated := service.DeduplicateCitations(analysis.Citations)
	view := *analysis
	view.Citations = deduplicated

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"analysis":               view,
			"flattened_federal_laws": service.FlattenCitations(deduplicated),
		},
	})
}

// Topics handles GET /api/topics
func (h *AnalysisHandler) Topics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"topics": h.taxonomy.Topics(),
		},
	})
}

// classifyAnalysisError maps analysis failures to HTTP statuses. Grammar
// and taxonomy rejections are the provider returning a record we refuse to
// accept; exhausted retries mean the upstream never produced one.
func classifyAnalysisError(err error) (int, string) {
	var retryErr *service.RetryExhaustedError
	if errors.As(err, &retryErr) {
		return http.StatusBadGateway, "PROVIDER_UNAVAILABLE"
	}

	var citationErr *models.CitationFormatError
	var penaltyErr *service.PenaltyPrecisionError
	var topicErr *service.UnknownTopicError
	switch {
	case errors.As(err, &citationErr):
		return http.StatusUnprocessableEntity, "INVALID_CITATION"
	case errors.As(err, &penaltyErr):
		return http.StatusUnprocessableEntity, "INVALID_PENALTY"
	case errors.As(err, &topicErr):
		return http.StatusUnprocessableEntity, "INVALID_TOPIC"
	case errors.Is(err, service.ErrMissingSummary):
		return http.StatusUnprocessableEntity, "MISSING_SUMMARY"
	}
	return http.StatusInternalServerError, "ANALYSIS_FAILED"
}
