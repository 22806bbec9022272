package handler

import (
	"strconv"
	"time"

	"agent-settlement/internal/adapter/http/dto"
	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"
	"agent-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles settlement endpoints.
type PaymentHandler struct {
	settlementSvc ports.SettlementService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(settlementSvc ports.SettlementService) *PaymentHandler {
	return &PaymentHandler{settlementSvc: settlementSvc}
}

// ProcessPayment handles POST /api/v1/payments.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.settlementSvc.Process(c.Request.Context(), ports.ProcessPaymentRequest{
		CheckoutSessionID:  req.CheckoutSessionID,
		Amount:             req.Amount,
		Currency:           req.Currency,
		WalletToken:        req.WalletToken,
		SpendingLimitToken: req.SpendingLimitToken,
		PaymentMandate:     req.PaymentMandate,
		CartMandate:        req.CartMandate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ProcessRefund handles POST /api/v1/payments/refund.
func (h *PaymentHandler) ProcessRefund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.settlementSvc.Refund(c.Request.Context(), ports.RefundRequest{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Reason:        req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetTransaction handles GET /api/v1/payments/:id.
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	txn, err := h.settlementSvc.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// ListTransactions handles GET /api/v1/payments.
func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	var params ports.TransactionListParams
	if s := c.Query("status"); s != "" {
		status := domain.TransactionStatus(s)
		params.Status = &status
	}
	params.Limit = 50
	if limit, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 || n > 500 {
			response.Error(c, apperror.Validation("limit must be between 1 and 500"))
			return
		}
		params.Limit = n
	}

	txns, err := h.settlementSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, toTransactionResponse(&txns[i]))
	}
	response.OK(c, out)
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:                tx.ID,
		CheckoutSessionID: tx.CheckoutSessionID,
		WalletID:          tx.WalletID,
		WalletSource:      string(tx.WalletSource),
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		Status:            string(tx.Status),
		MandateReference:  tx.MandateReference,
		MandateValid:      tx.MandateValid,
		RefundedAmount:    tx.RefundedAmount,
		ErrorCode:         tx.ErrorCode,
		ErrorMessage:      tx.ErrorMessage,
		CreatedAt:         tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CompletedAt != nil {
		s := tx.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	if tx.RefundedAt != nil {
		s := tx.RefundedAt.Format(time.RFC3339)
		resp.RefundedAt = &s
	}
	return resp
}
