package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstims/internal/middleware"
	"gstims/internal/service"
)

// ExportHandler handles reconciliation export endpoints.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportRequest selects the GSTIN and format to export.
type ExportRequest struct {
	CompanyGSTIN string `json:"company_gstin" binding:"required"`
	Format       string `json:"format" binding:"required,oneof=xlsx csv"`
}

// Export handles POST /api/v1/ims/export
// @Summary      Export the reconciliation view
// @Description  Builds an Excel or CSV export, stages it in object storage and returns a presigned download URL
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        request body ExportRequest true "Company GSTIN and format"
// @Success      200 {object} APIResponse{data=service.ExportResult}
// @Security     BearerAuth
// @Router       /ims/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	company := middleware.GetCompany(c)

	var (
		result *service.ExportResult
		err    error
	)
	switch req.Format {
	case "csv":
		result, err = h.exportService.ExportCSV(c.Request.Context(), company, req.CompanyGSTIN)
	default:
		result, err = h.exportService.ExportExcel(c.Request.Context(), company, req.CompanyGSTIN)
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
