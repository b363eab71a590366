package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/model"
	"github.com/Priyanka-kale21/webhack/internal/repository"
	"github.com/Priyanka-kale21/webhack/internal/service"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(svc service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: svc}
}

func paginationFromQuery(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return repository.Pagination{Page: page, PageSize: size}
}

// @Summary Run an audit
// @Description Crawls up to maxPages same-origin pages from url and scores each one.
// @Tags    audits
// @Accept  json
// @Produce json
// @Param   input body model.AuditRequest true "Site to audit"
// @Success 200 {object} model.AuditResponse
// @Failure 400 {object} map[string]string "error"
// @Failure 413 {object} map[string]string "error"
// @Failure 429 {object} map[string]string "error"
// @Failure 500 {object} map[string]string "error, details"
// @Router  /api/audit [post]
func (h *AuditHandler) Create(c *gin.Context) {
	var in model.AuditRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrURLRequired.Error()})
		return
	}

	resp, err := h.auditService.Run(c.Request.Context(), &in)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, service.ErrURLRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, crawler.ErrInvalidSeed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTooManyAudits):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Audit failed", "details": err.Error()})
	}
}

// @Summary List stored audits (paginated)
// @Tags    audits
// @Produce json
// @Param   page      query int false "page"
// @Param   page_size query int false "page_size"
// @Success 200 {object} model.PaginatedResponse[model.AuditSummaryDTO]
// @Failure 503 {object} map[string]string "error"
// @Router  /api/audits [get]
func (h *AuditHandler) List(c *gin.Context) {
	page, err := h.auditService.List(paginationFromQuery(c))
	if err != nil {
		h.historyError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Get one stored audit
// @Tags    audits
// @Produce json
// @Param   id path string true "Audit ID"
// @Success 200 {object} model.AuditResponse
// @Failure 404 {object} map[string]string "error"
// @Failure 503 {object} map[string]string "error"
// @Router  /api/audits/{id} [get]
func (h *AuditHandler) Get(c *gin.Context) {
	resp, err := h.auditService.Get(c.Param("id"))
	if err != nil {
		h.historyError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuditHandler) historyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrAuditNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// RegisterRoutes mounts the audit endpoints on the given router group.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/audit", h.Create)
	rg.GET("/audits", h.List)
	rg.GET("/audits/:id", h.Get)
}
