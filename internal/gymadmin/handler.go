package gymadmin

import (
	"allyoucangym/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register godoc
// @Summary      Register gym admin
// @Tags         gymAdmins
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Admin registration data"
// @Success      201      {object}  api.Response{data=GymAdmin}
// @Failure      400      {object}  api.ErrorResponse
// @Router       /api/gymAdmins [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.Created(c, "Gym admin registered successfully", a)
}

// Login godoc
// @Summary      Login gym admin
// @Description  Accepts the email or the username in the email field.
// @Tags         gymAdmins
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Admin credentials"
// @Success      200      {object}  api.Response{data=LoginResponse}
// @Failure      401      {object}  api.ErrorResponse
// @Router       /api/gymAdmins/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindJSON(c, &req) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Login successful", res)
}

// GetAdmin godoc
// @Summary      Get gym admin with managed gyms
// @Tags         gymAdmins
// @Security     BearerAuth
// @Produce      json
// @Param        adminId  path      string  true  "Admin ID"
// @Success      200      {object}  api.Response{data=Profile}
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/gymAdmins/{adminId} [get]
func (h *Handler) GetAdmin(c *gin.Context) {
	adminID, ok := api.PathID(c, "adminId")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), adminID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Gym admin retrieved successfully", p)
}

// AddGym godoc
// @Summary      Link a gym to the admin
// @Tags         gymAdmins
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        adminId  path      string         true  "Admin ID"
// @Param        request  body      AddGymRequest  true  "Gym to manage"
// @Success      200      {object}  api.Response{data=GymAdmin}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/gymAdmins/{adminId}/gyms [post]
func (h *Handler) AddGym(c *gin.Context) {
	adminID, ok := api.PathID(c, "adminId")
	if !ok {
		return
	}

	var req AddGymRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.svc.AddGym(c.Request.Context(), adminID, req.GymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Gym added to admin successfully", a)
}
