package gym

import (
	"net/http"
	"strconv"

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

// ListGyms godoc
// @Summary      List gyms
// @Tags         gyms
// @Produce      json
// @Success      200  {object}  api.Response{data=[]Gym}
// @Router       /api/gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	gyms, err := h.svc.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Gyms retrieved successfully", gyms)
}

// GetGym godoc
// @Summary      Get gym
// @Tags         gyms
// @Produce      json
// @Param        gymId  path      string  true  "Gym ID"
// @Success      200    {object}  api.Response{data=Gym}
// @Failure      404    {object}  api.ErrorResponse
// @Router       /api/gyms/{gymId} [get]
func (h *Handler) GetGym(c *gin.Context) {
	id, ok := api.PathID(c, "gymId")
	if !ok {
		return
	}

	g, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Gym retrieved successfully", g)
}

// CreateGym godoc
// @Summary      Create gym
// @Description  Creates a gym owned by the calling gym admin.
// @Tags         gyms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateGymRequest  true  "Gym data"
// @Success      201      {object}  api.Response{data=Gym}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if !api.BindJSON(c, &req) {
		return
	}
	adminID, _ := auth.GetUserID(c)

	g, err := h.svc.Create(c.Request.Context(), adminID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.Created(c, "Gym created successfully", g)
}

// UpdateGym godoc
// @Summary      Update gym
// @Tags         gyms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymId    path      string            true  "Gym ID"
// @Param        request  body      UpdateGymRequest  true  "Fields to change"
// @Success      200      {object}  api.Response{data=Gym}
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/gyms/{gymId} [put]
func (h *Handler) UpdateGym(c *gin.Context) {
	id, ok := api.PathID(c, "gymId")
	if !ok {
		return
	}

	var req UpdateGymRequest
	if !api.BindJSON(c, &req) {
		return
	}

	g, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Gym updated successfully", g)
}

// DeleteGym godoc
// @Summary      Delete gym
// @Description  Deletes the gym and all of its sessions.
// @Tags         gyms
// @Security     BearerAuth
// @Produce      json
// @Param        gymId  path      string  true  "Gym ID"
// @Success      200    {object}  api.Response
// @Failure      403    {object}  api.ErrorResponse
// @Failure      404    {object}  api.ErrorResponse
// @Router       /api/gyms/{gymId} [delete]
func (h *Handler) DeleteGym(c *gin.Context) {
	id, ok := api.PathID(c, "gymId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Gym deleted successfully", nil)
}

// FilterGyms godoc
// @Summary      Filter gyms
// @Description  Filters gyms by session type and, with all of latitude, longitude and distance, by distance in km.
// @Tags         gyms
// @Produce      json
// @Param        sessionType  query     string  false  "Session type"
// @Param        latitude     query     number  false  "Latitude"
// @Param        longitude    query     number  false  "Longitude"
// @Param        distance     query     number  false  "Maximum distance in km"
// @Success      200          {object}  api.Response{data=[]Gym}
// @Failure      400          {object}  api.ErrorResponse
// @Router       /api/gyms/filter [get]
func (h *Handler) FilterGyms(c *gin.Context) {
	params := FilterParams{SessionType: c.Query("sessionType")}

	for _, q := range []struct {
		name string
		dst  **float64
	}{
		{"latitude", &params.Latitude},
		{"longitude", &params.Longitude},
		{"distance", &params.DistanceKm},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, "Invalid "+q.name, "Invalid "+q.name)
			return
		}
		*q.dst = &v
	}

	gyms, err := h.svc.Filter(c.Request.Context(), params)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Gyms retrieved successfully", gyms)
}

// SearchGyms godoc
// @Summary      Search gyms
// @Tags         gyms
// @Produce      json
// @Param        keyword   query     string  false  "Single keyword"
// @Param        keywords  query     string  false  "Comma separated keywords"
// @Success      200       {object}  api.Response{data=[]Gym}
// @Router       /api/gyms/search [get]
func (h *Handler) SearchGyms(c *gin.Context) {
	query := c.Query("keywords")
	if query == "" {
		query = c.Query("keyword")
	}

	gyms, err := h.svc.Search(c.Request.Context(), query)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Gyms retrieved successfully", gyms)
}
