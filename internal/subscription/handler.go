package subscription

import (
	"time"

	"allyoucangym/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// ListPackages godoc
// @Summary      List subscription packages
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  api.Response{data=[]Package}
// @Router       /api/subscriptions/subscriptionPackages [get]
func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.svc.ListPackages(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "All subscription packages retrieved successfully", packages)
}

// GetPackage godoc
// @Summary      Get subscription package
// @Tags         subscriptions
// @Produce      json
// @Param        packageKey  path      string  true  "Package key, e.g. basic_monthly"
// @Success      200         {object}  api.Response{data=Package}
// @Failure      404         {object}  api.ErrorResponse
// @Router       /api/subscriptions/subscriptionPackages/{packageKey} [get]
func (h *Handler) GetPackage(c *gin.Context) {
	pkg, err := h.svc.GetPackage(c.Request.Context(), PackageKey(c.Param("packageKey")))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Subscription package retrieved successfully", pkg)
}

// CreateSubscription godoc
// @Summary      Subscribe a user to a package
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userId   path      string         true  "User ID"
// @Param        request  body      CreateRequest  true  "Package key and start date"
// @Success      201      {object}  api.Response{data=Subscription}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/users/{userId}/subscription [post]
func (h *Handler) CreateSubscription(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}
	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}
	start, err := ParseStartDate(req.StartDate, h.now())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	sub, err := h.svc.Subscribe(c.Request.Context(), userID, PackageKey(req.SubscriptionPackageID), start)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.Created(c, "Subscription created successfully.", sub)
}

// ListUserSubscriptions godoc
// @Summary      List a user's subscriptions
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  api.Response{data=[]Subscription}
// @Router       /api/users/{userId}/subscription [get]
func (h *Handler) ListUserSubscriptions(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}

	subs, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Subscriptions retrieved successfully.", subs)
}

// UpdateSubscription godoc
// @Summary      Update a subscription
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userId          path      string         true  "User ID"
// @Param        subscriptionId  path      string         true  "Subscription ID"
// @Param        request         body      UpdateRequest  true  "Fields to change"
// @Success      200             {object}  api.Response{data=Subscription}
// @Failure      404             {object}  api.ErrorResponse
// @Router       /api/users/{userId}/subscription/{subscriptionId} [put]
func (h *Handler) UpdateSubscription(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}
	subscriptionID, ok := api.PathID(c, "subscriptionId")
	if !ok {
		return
	}
	var req UpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sub, err := h.svc.Update(c.Request.Context(), userID, subscriptionID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Subscription updated successfully.", sub)
}

// CancelSubscription godoc
// @Summary      Cancel a subscription
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        userId          path      string  true  "User ID"
// @Param        subscriptionId  path      string  true  "Subscription ID"
// @Success      200             {object}  api.Response{data=Subscription}
// @Failure      404             {object}  api.ErrorResponse
// @Router       /api/users/{userId}/subscription/{subscriptionId} [delete]
func (h *Handler) CancelSubscription(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}
	subscriptionID, ok := api.PathID(c, "subscriptionId")
	if !ok {
		return
	}

	sub, err := h.svc.Cancel(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Subscription cancelled successfully.", sub)
}
