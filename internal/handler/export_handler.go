package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oti-labs/studify-api/internal/service"
	"github.com/oti-labs/studify-api/pkg/response"
)

// Exporter renders the reconciled week to a downloadable format.
type Exporter interface {
	Render(ctx context.Context, format service.ExportFormat) ([]byte, error)
}

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	exports Exporter
}

// NewExportHandler constructs the export handler.
func NewExportHandler(exports Exporter) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Download renders the week schedule. Format defaults to CSV.
func (h *ExportHandler) Download(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	out, err := h.exports.Render(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "text/csv"
	if format == service.FormatPDF {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=schedule.%s", format))
	c.Data(http.StatusOK, contentType, out)
}
