package documents

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/analysis"
	"contract-backend/internal/extract"
	"contract-backend/internal/llm"
	"contract-backend/internal/shared/server/middleware"
	"contract-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/report", h.downloadReport)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	result, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "a PDF file is required", nil)
		case errors.Is(err, extract.ErrUnreadable):
			respond.Error(c, http.StatusBadRequest, "unreadable_document", "could not extract text from the PDF", nil)
		case errors.Is(err, analysis.ErrSchema):
			respond.Error(c, http.StatusBadRequest, "analysis_schema_error", "analysis output could not be validated", nil)
		case errors.Is(err, llm.ErrCompletion):
			respond.Error(c, http.StatusBadRequest, "analysis_failed", "analysis service is unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toAnalysisResponse(result))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	docs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	items := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toResponse(doc))
	}
	respond.OK(c, gin.H{"documents": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	doc, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load document", nil)
		return
	}
	respond.OK(c, toResponse(doc))
}

func (h *Handler) downloadReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rc, contentType, err := h.Svc.OpenReport(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open report", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		// Headers are already out; just record the stream failure.
		_ = c.Error(err)
	}
}
