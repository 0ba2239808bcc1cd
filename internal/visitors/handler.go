package visitors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ghostorshell-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the credit service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches credit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credits", h.balance)
	rg.POST("/credits/purchase", h.purchase)
}

func (h *Handler) balance(c *gin.Context) {
	visitorID, ip := Identity(c.Request)
	c.Set("visitorId", visitorID)

	credit, err := h.Svc.Balance(c.Request.Context(), visitorID, ip)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load credits", nil)
		return
	}
	respond.OK(c, credit)
}

type purchaseRequest struct {
	Credits    int    `json:"credits"`
	PaymentRef string `json:"paymentRef"`
}

func (h *Handler) purchase(c *gin.Context) {
	visitorID, ip := Identity(c.Request)
	c.Set("visitorId", visitorID)

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Credits <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "credits must be positive", nil)
		return
	}

	if _, err := h.Svc.Balance(c.Request.Context(), visitorID, ip); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load credits", nil)
		return
	}
	credit, err := h.Svc.Purchase(c.Request.Context(), visitorID, req.Credits, req.PaymentRef)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to add credits", nil)
		return
	}
	respond.OK(c, credit)
}
