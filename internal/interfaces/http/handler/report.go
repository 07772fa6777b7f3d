package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/stockroom/backoffice/internal/application/report"
	"github.com/stockroom/backoffice/internal/domain/report"
)

type categorySummarizer interface {
	CategorySummary(ctx context.Context, tenantID, categoryID uuid.UUID) (*reportapp.CategorySummaryResponse, error)
}

type sellRollup interface {
	Rollup(ctx context.Context, tenantID uuid.UUID, f report.SellFilter) (*reportapp.RollupResponse, error)
}

// ReportHandler serves the category summary and the sell rollup
type ReportHandler struct {
	BaseHandler
	summary categorySummarizer
	rollup  sellRollup
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(summary categorySummarizer, rollup sellRollup) *ReportHandler {
	return &ReportHandler{summary: summary, rollup: rollup}
}

// CategorySummary handles GET /api/categories/:id/summary
func (h *ReportHandler) CategorySummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.summary.CategorySummary(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SellRollup handles GET /api/sells/rollup.
// Empty filter parameters mean "no restriction".
func (h *ReportHandler) SellRollup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := report.SellFilter{
		CategoryID: strings.TrimSpace(c.Query("category_id")),
		BrandID:    strings.TrimSpace(c.Query("brand_id")),
		ProductID:  strings.TrimSpace(c.Query("product_id")),
		SellerID:   strings.TrimSpace(c.Query("seller_id")),
	}

	rollup, err := h.rollup.Rollup(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rollup)
}
