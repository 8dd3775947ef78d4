package payment

import (
	"net/http"
	"strconv"

	"allyoucangym/internal/api"
	"allyoucangym/internal/auth"
	"allyoucangym/internal/subscription"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Checkout godoc
// @Summary      Pay for a subscription package
// @Description  Charges the catalog price of the package and subscribes the caller to it.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        packageKey  path      string           true  "Package key, e.g. basic_monthly"
// @Param        request     body      CheckoutRequest  true  "Card details"
// @Success      200         {object}  api.Response{data=CheckoutResult}
// @Failure      400         {object}  api.ErrorResponse
// @Failure      401         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /api/payments/checkout/{packageKey} [post]
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	var req CheckoutRequest
	if !api.BindJSON(c, &req) {
		return
	}

	result, err := h.svc.Checkout(c.Request.Context(), CheckoutInput{
		UserID:     userID,
		PackageKey: subscription.PackageKey(c.Param("packageKey")),
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Payment processed successfully", result)
}

// History godoc
// @Summary      Payment history of the caller
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"  default(50)
// @Param        offset  query     int  false  "Offset"     default(0)
// @Success      200     {object}  api.Response{data=[]Payment}
// @Failure      401     {object}  api.ErrorResponse
// @Router       /api/payments/history [get]
func (h *Handler) History(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payments, err := h.svc.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Payment history retrieved successfully", payments)
}
