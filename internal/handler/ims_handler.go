package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstims/internal/domain"
	"gstims/internal/middleware"
	"gstims/internal/port"
	"gstims/internal/service"
)

// IMSHandler handles the reconciliation view and action endpoints.
type IMSHandler struct {
	reconService  *service.ReconService
	actionService *service.ActionService
}

// NewIMSHandler creates a new IMSHandler.
func NewIMSHandler(reconService *service.ReconService, actionService *service.ActionService) *IMSHandler {
	return &IMSHandler{reconService: reconService, actionService: actionService}
}

// ReconcileRequest selects the company GSTIN to reconcile.
type ReconcileRequest struct {
	CompanyGSTIN string `json:"company_gstin" binding:"required"`
}

// Reconcile handles POST /api/v1/ims/reconcile
// @Summary      Auto-reconcile and fetch invoice data
// @Description  Runs the automatic matching pass and returns the merged reconciliation view with pending portal request types
// @Tags         ims
// @Accept       json
// @Produce      json
// @Param        request body ReconcileRequest true "Company GSTIN"
// @Success      200 {object} APIResponse{data=service.InvoiceData}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /ims/reconcile [post]
func (h *IMSHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	data, err := h.reconService.AutoReconcileAndGetData(c.Request.Context(), middleware.GetCompany(c), req.CompanyGSTIN)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, data)
}

// UpdateActionRequest sets one IMS action on a batch of inward supplies.
type UpdateActionRequest struct {
	CompanyGSTIN string      `json:"company_gstin" binding:"required"`
	InvoiceIDs   []uuid.UUID `json:"invoice_ids" binding:"required"`
	Action       string      `json:"action" binding:"required"`
}

// UpdateAction handles POST /api/v1/ims/actions
// @Summary      Set the IMS action on invoices
// @Description  Applies Accepted/Rejected/Pending/No Action to the selected inward supplies as one atomic batch
// @Tags         ims
// @Accept       json
// @Produce      json
// @Param        request body UpdateActionRequest true "Invoice ids and action"
// @Success      200 {object} APIResponse
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /ims/actions [post]
func (h *IMSHandler) UpdateAction(c *gin.Context) {
	var req UpdateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	err := h.actionService.UpdateAction(c.Request.Context(), req.CompanyGSTIN, req.InvoiceIDs, domain.IMSAction(req.Action))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": len(req.InvoiceIDs)})
}

// InvoiceDetails handles GET /api/v1/ims/invoice-details
func (h *IMSHandler) InvoiceDetails(c *gin.Context) {
	companyGSTIN := c.Query("company_gstin")
	purchaseName := c.Query("purchase_name")
	supplyID, err := uuid.Parse(c.Query("inward_supply_id"))
	if companyGSTIN == "" || purchaseName == "" || err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"company_gstin, purchase_name and inward_supply_id are required")
		return
	}

	view, err := h.reconService.GetInvoiceDetails(c.Request.Context(), middleware.GetCompany(c), companyGSTIN, purchaseName, supplyID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// LinkRequest manually links one purchase invoice to an inward supply.
type LinkRequest struct {
	InwardSupplyID uuid.UUID `json:"inward_supply_id" binding:"required"`
	LinkDoctype    string    `json:"link_doctype" binding:"required"`
	PurchaseName   string    `json:"purchase_name" binding:"required"`
}

// Link handles POST /api/v1/ims/links
func (h *IMSHandler) Link(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.reconService.LinkDocuments(c.Request.Context(), req.InwardSupplyID, req.LinkDoctype, req.PurchaseName); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"linked": req.PurchaseName})
}

// UnlinkRequest clears links for a batch of inward supplies.
type UnlinkRequest struct {
	CompanyGSTIN    string      `json:"company_gstin" binding:"required"`
	InwardSupplyIDs []uuid.UUID `json:"inward_supply_ids" binding:"required"`
}

// Unlink handles DELETE /api/v1/ims/links
func (h *IMSHandler) Unlink(c *gin.Context) {
	var req UnlinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.reconService.UnlinkDocuments(c.Request.Context(), req.CompanyGSTIN, req.InwardSupplyIDs); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"unlinked": len(req.InwardSupplyIDs)})
}

// LinkOptions handles GET /api/v1/ims/link-options
func (h *IMSHandler) LinkOptions(c *gin.Context) {
	companyGSTIN := c.Query("company_gstin")
	if companyGSTIN == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "company_gstin is required")
		return
	}

	filter := port.LinkOptionFilter{
		SupplierGSTIN: c.Query("supplier_gstin"),
		ShowMatched:   c.Query("show_matched") == "true",
	}
	if from := c.Query("bill_from_date"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "bill_from_date must be YYYY-MM-DD")
			return
		}
		filter.BillFromDate = t
	}
	if to := c.Query("bill_to_date"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "bill_to_date must be YYYY-MM-DD")
			return
		}
		filter.BillToDate = t
	}

	options, err := h.reconService.GetLinkOptions(c.Request.Context(), companyGSTIN, filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, options)
}

// PeriodOptions handles GET /api/v1/ims/period-options
func (h *IMSHandler) PeriodOptions(c *gin.Context) {
	companyGSTIN := c.Query("company_gstin")
	if companyGSTIN == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "company_gstin is required")
		return
	}

	periods, err := h.reconService.GetPeriodOptions(c.Request.Context(), middleware.GetCompany(c), companyGSTIN)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, periods)
}
