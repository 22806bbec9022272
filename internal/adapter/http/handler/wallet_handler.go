package handler

import (
	"time"

	"agent-settlement/internal/adapter/http/dto"
	"agent-settlement/internal/core/domain"
	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"
	"agent-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles store-ledger account endpoints.
type WalletHandler struct {
	ledger ports.Ledger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger ports.Ledger) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// CreateWallet handles POST /api/v1/wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.ledger.CreateAccount(c.Request.Context(), req.OwnerID, req.InitialBalance, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(account))
}

// GetBalance handles GET /api/v1/wallets/:id.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	account, err := h.ledger.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(account))
}

// IssueToken handles POST /api/v1/wallets/:id/tokens.
func (h *WalletHandler) IssueToken(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, err := h.ledger.IssueToken(c.Request.Context(), c.Param("id"), req.OwnerID,
		time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.TokenResponse{
		Token:    token.Token,
		WalletID: token.WalletID,
	}
	if token.ExpiresAt != nil {
		s := token.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &s
	}
	response.Created(c, resp)
}

// Topup handles POST /api/v1/wallets/:id/topup (operator only).
func (h *WalletHandler) Topup(c *gin.Context) {
	var req dto.TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.ledger.Credit(c.Request.Context(), c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(account))
}

func toWalletResponse(w *domain.WalletAccount) dto.WalletResponse {
	return dto.WalletResponse{
		WalletID:  w.WalletID,
		OwnerID:   w.OwnerID,
		Balance:   w.Balance,
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}
