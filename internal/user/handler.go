package user

import (
	"allyoucangym/internal/api"
	"allyoucangym/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register godoc
// @Summary      Register new user
// @Description  Creates a user account and returns a bearer token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "User registration data"
// @Success      201      {object}  api.Response{data=AuthResponse}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindJSON(c, &req) {
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.Created(c, "User registered successfully", res)
}

// Login godoc
// @Summary      Login user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "User credentials"
// @Success      200      {object}  api.Response{data=AuthResponse}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /api/users/login [post]
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

// Search godoc
// @Summary      Search users by username
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        username  query     string  true  "Part of a username"
// @Success      200       {object}  api.Response{data=[]PublicProfile}
// @Failure      400       {object}  api.ErrorResponse
// @Router       /api/users/search [get]
func (h *Handler) Search(c *gin.Context) {
	profiles, err := h.svc.Search(c.Request.Context(), c.Query("username"))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Users retrieved successfully", profiles)
}

// GetProfile godoc
// @Summary      Get user profile
// @Description  Owners get their full record, everyone else only id and username.
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  api.Response{data=User}
// @Failure      404     {object}  api.ErrorResponse
// @Router       /api/users/{userId} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}
	requesterID, _ := auth.GetUserID(c)

	profile, err := h.svc.Profile(c.Request.Context(), requesterID, userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "User retrieved successfully", profile)
}

// Update godoc
// @Summary      Update own profile
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userId   path      string         true  "User ID"
// @Param        request  body      UpdateRequest  true  "Fields to change"
// @Success      200      {object}  api.Response{data=User}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/users/{userId} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}

	var req UpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, err := h.svc.Update(c.Request.Context(), userID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "User updated successfully", u)
}

// Delete godoc
// @Summary      Delete own account
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  api.Response
// @Failure      403     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /api/users/{userId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID); err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "User deleted successfully", nil)
}
