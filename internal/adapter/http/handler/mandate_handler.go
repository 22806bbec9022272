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

// MandateHandler handles mandate construction and verification endpoints.
type MandateHandler struct {
	builder   ports.MandateBuilder
	validator ports.MandateValidator
}

// NewMandateHandler creates a new MandateHandler.
func NewMandateHandler(builder ports.MandateBuilder, validator ports.MandateValidator) *MandateHandler {
	return &MandateHandler{builder: builder, validator: validator}
}

// BuildIntent handles POST /api/v1/mandates/intent.
func (h *MandateHandler) BuildIntent(c *gin.Context) {
	var req dto.BuildIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	intent := h.builder.BuildIntent(ports.IntentRequest{
		Description:           req.Description,
		Merchants:             req.Merchants,
		SKUs:                  req.SKUs,
		ConfirmationRequired:  req.ConfirmationRequired,
		RefundabilityRequired: req.RefundabilityRequired,
		TTL:                   time.Duration(req.TTLSeconds) * time.Second,
	})
	response.Created(c, intent)
}

// SignCart handles POST /api/v1/mandates/cart. The service signs the cart
// with the merchant key, binding the contents hash into the authorization.
func (h *MandateHandler) SignCart(c *gin.Context) {
	var req dto.SignCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	contents, err := h.builder.BuildCartContents(toCartRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	cart, err := h.builder.SignCart(contents, "", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cart)
}

// SignPayment handles POST /api/v1/mandates/payment.
func (h *MandateHandler) SignPayment(c *gin.Context) {
	var req dto.SignPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.builder.SignPayment(req.Cart, ports.PaymentMandateRequest{
		PaymentMethod: req.PaymentMethod,
		PayerName:     req.PayerName,
		PayerEmail:    req.PayerEmail,
		TTL:           time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// FullFlow handles POST /api/v1/mandates/flow: the whole intent, cart and
// payment chain in a single call.
func (h *MandateHandler) FullFlow(c *gin.Context) {
	var req dto.FullFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	flow, err := h.builder.FullFlow(req.Description, toCartRequest(req.Cart), ports.PaymentMandateRequest{
		PaymentMethod: req.Payment.PaymentMethod,
		PayerName:     req.Payment.PayerName,
		PayerEmail:    req.Payment.PayerEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, flow)
}

// CreateSpendingLimit handles POST /api/v1/mandates/spending-limit.
func (h *MandateHandler) CreateSpendingLimit(c *gin.Context) {
	var req dto.SpendingLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, err := h.builder.CreateSpendingLimit(
		domain.SpendingLimit{MaxAmount: req.MaxAmount, Currency: req.Currency},
		req.Beneficiary,
		time.Duration(req.TTLSeconds)*time.Second,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SpendingLimitResponse{Token: token})
}

// ValidateCart handles POST /api/v1/mandates/cart/validate.
func (h *MandateHandler) ValidateCart(c *gin.Context) {
	var req dto.ValidateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	v, err := h.validator.ValidateCart(req.Cart)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CartValidationResponse{
		Valid:    true,
		CartID:   v.CartID,
		Merchant: v.Merchant,
		Amount:   v.Total.MinorUnits,
		Currency: v.Total.Currency,
	})
}

func toCartRequest(req dto.SignCartRequest) ports.CartRequest {
	items := make([]ports.CartItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.CartItemInput{
			Label:     it.Label,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return ports.CartRequest{
		CartID:          req.CartID,
		MerchantName:    req.MerchantName,
		Items:           items,
		Currency:        req.Currency,
		TTL:             time.Duration(req.TTLSeconds) * time.Second,
		AcceptedMethods: req.AcceptedMethods,
	}
}
