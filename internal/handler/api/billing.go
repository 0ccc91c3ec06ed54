package api

import (
	"errors"
	"net/http"

	"guildhall/internal/domain/member"
	reqdto "guildhall/internal/handler/dto/request"
	resdto "guildhall/internal/handler/dto/response"
	"guildhall/internal/handler/middleware"
	"guildhall/internal/pkg/errs"
	"guildhall/internal/usecase/commands"
	"guildhall/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BillingHandler struct {
	billingCommands    commands.BillingCommands
	transactionQueries queries.TransactionQueries
}

func NewBillingHandler(billingCommands commands.BillingCommands, transactionQueries queries.TransactionQueries) *BillingHandler {
	return &BillingHandler{
		billingCommands:    billingCommands,
		transactionQueries: transactionQueries,
	}
}

// @Summary List my transactions
// @Description List invoices and charges of the current user
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.TransactionView
// @Failure 401 {object} map[string]string
// @Router /transactions [get]
func (h *BillingHandler) GetMyTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.transactionQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get transaction
// @Description Get transaction by ID
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} queries.TransactionView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *BillingHandler) GetTransaction(c *gin.Context) {
	userID, role, ok := actorFrom(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	view, err := h.transactionQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	// Members see only their own transactions.
	if view.UserID != userID && role != member.RoleAdministrator {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Create transaction
// @Description Administrator creates a manual charge or invoice
// @Tags billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTransactionRequest true "Transaction request"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions [post]
func (h *BillingHandler) CreateTransaction(c *gin.Context) {
	var req reqdto.CreateTransactionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.billingCommands.CreateManualCharge(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, commands.ErrInvalidTransactionType), errors.Is(err, commands.ErrInvalidDueDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Mark transaction paid
// @Description Administrator settles a transaction by hand
// @Tags billing
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /transactions/{id}/pay [post]
func (h *BillingHandler) MarkTransactionPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	if err := h.billingCommands.MarkPaid(c.Request.Context(), id); err != nil {
		h.respondBillingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Payment webhook
// @Description Payment provider callback confirming or declining a payment
// @Tags billing
// @Accept json
// @Param X-Webhook-Secret header string true "Shared webhook secret"
// @Param request body reqdto.PaymentWebhookRequest true "Webhook payload"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /webhooks/payment [post]
func (h *BillingHandler) PaymentWebhook(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.billingCommands.ConfirmPayment(c.Request.Context(), req.TransactionID, req.IsApproved())
	if err != nil {
		// Paid-again deliveries are fine; webhooks get retried.
		if errors.Is(err, errs.ErrAlreadyPaid) {
			c.Status(http.StatusNoContent)
			return
		}
		h.respondBillingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Run monthly invoices
// @Description Administrator triggers the monthly invoice batch
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BatchReportResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /billing/run-invoices [post]
func (h *BillingHandler) RunMonthlyInvoices(c *gin.Context) {
	report, err := h.billingCommands.GenerateMonthlyInvoices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.BatchReportResponse{
		Processed: report.Processed,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	})
}

// @Summary Run overdue scan
// @Description Administrator triggers the overdue flagging batch
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BatchReportResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /billing/run-overdue-scan [post]
func (h *BillingHandler) RunOverdueScan(c *gin.Context) {
	report, err := h.billingCommands.FlagOverdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.BatchReportResponse{
		Processed: report.Processed,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	})
}

func (h *BillingHandler) respondBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, errs.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction already paid"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
