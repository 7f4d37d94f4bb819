package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstims/internal/domain"
	"gstims/internal/service"
)

// SyncHandler handles the portal upload/download endpoints.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// GSTINRequest selects the company GSTIN a sync operation applies to.
type GSTINRequest struct {
	CompanyGSTIN string `json:"company_gstin" binding:"required"`
}

// Download handles POST /api/v1/ims/download
// @Summary      Download invoices from the portal
// @Description  Enqueues a remote IMS download for the GSTIN; returns immediately
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body GSTINRequest true "Company GSTIN"
// @Success      202 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /ims/download [post]
func (h *SyncHandler) Download(c *gin.Context) {
	var req GSTINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.syncService.DownloadInvoices(c.Request.Context(), req.CompanyGSTIN); err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, gin.H{"queued": "download"})
}

// Save handles POST /api/v1/ims/save
// @Summary      Upload pending actions
// @Description  Builds and submits the save batch for the GSTIN; an empty eligible set is a no-op
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body GSTINRequest true "Company GSTIN"
// @Success      200 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      412 {object} APIResponse
// @Security     BearerAuth
// @Router       /ims/save [post]
func (h *SyncHandler) Save(c *gin.Context) {
	var req GSTINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.syncService.SaveInvoices(c.Request.Context(), req.CompanyGSTIN); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"submitted": "save"})
}

// Reset handles POST /api/v1/ims/reset
// @Summary      Upload pending action resets
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body GSTINRequest true "Company GSTIN"
// @Success      200 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      412 {object} APIResponse
// @Security     BearerAuth
// @Router       /ims/reset [post]
func (h *SyncHandler) Reset(c *gin.Context) {
	var req GSTINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.syncService.ResetInvoices(c.Request.Context(), req.CompanyGSTIN); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"submitted": "reset"})
}

// SyncReupload handles POST /api/v1/ims/sync-reupload
// @Summary      Sync with the portal and reupload
// @Description  Enqueues the combined download-then-upload unit; upload is skipped when the portal reports queued invoices
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body GSTINRequest true "Company GSTIN"
// @Success      202 {object} APIResponse
// @Security     BearerAuth
// @Router       /ims/sync-reupload [post]
func (h *SyncHandler) SyncReupload(c *gin.Context) {
	var req GSTINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.syncService.SyncWithGSTNAndReupload(c.Request.Context(), req.CompanyGSTIN); err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, gin.H{"queued": "sync-reupload"})
}

// ActionStatus handles GET /api/v1/ims/action-status
// @Summary      Poll the processing status of a submitted request
// @Description  Returns the portal status for the oldest unprocessed request of the given type; Processed when nothing is pending
// @Tags         sync
// @Produce      json
// @Param        company_gstin query string true "Company GSTIN"
// @Param        request_type query string true "save or reset"
// @Success      200 {object} APIResponse{data=service.ActionStatusResult}
// @Security     BearerAuth
// @Router       /ims/action-status [get]
func (h *SyncHandler) ActionStatus(c *gin.Context) {
	companyGSTIN := c.Query("company_gstin")
	requestType := domain.RequestType(c.Query("request_type"))
	if companyGSTIN == "" || (requestType != domain.RequestTypeSave && requestType != domain.RequestTypeReset) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"company_gstin is required and request_type must be save or reset")
		return
	}

	result, err := h.syncService.CheckActionStatus(c.Request.Context(), companyGSTIN, requestType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
