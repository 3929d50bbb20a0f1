package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
)

type AirplaneTypeHandler struct {
	service catalog.CatalogUseCase
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewAirplaneTypeHandler(service catalog.CatalogUseCase) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{service: service}
}

func (h *AirplaneTypeHandler) Register(router *gin.RouterGroup, staff gin.HandlerFunc) {
	router.GET("", h.list)
	router.POST("", staff, h.create)
}

func (h *AirplaneTypeHandler) list(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]airplaneTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, airplaneTypeResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirplaneTypeHandler) create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := h.service.CreateAirplaneType(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

type AirplaneHandler struct {
	service catalog.CatalogUseCase
}

// airplaneListResponse flattens the type to its name.
type airplaneListResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

type airplaneDetailResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Rows         int                  `json:"rows"`
	SeatsInRow   int                  `json:"seats_in_row"`
	Capacity     int                  `json:"capacity"`
	AirplaneType airplaneTypeResponse `json:"airplane_type"`
}

func toAirplaneListResponse(a domain.Airplane) airplaneListResponse {
	out := airplaneListResponse{
		ID:         a.ID,
		Name:       a.Name,
		Rows:       a.Rows,
		SeatsInRow: a.SeatsInRow,
		Capacity:   a.Capacity(),
	}
	if a.AirplaneType != nil {
		out.AirplaneType = a.AirplaneType.Name
	}
	return out
}

func toAirplaneDetailResponse(a domain.Airplane) airplaneDetailResponse {
	out := airplaneDetailResponse{
		ID:         a.ID,
		Name:       a.Name,
		Rows:       a.Rows,
		SeatsInRow: a.SeatsInRow,
		Capacity:   a.Capacity(),
	}
	if a.AirplaneType != nil {
		out.AirplaneType = airplaneTypeResponse{ID: a.AirplaneType.ID, Name: a.AirplaneType.Name}
	}
	return out
}

func NewAirplaneHandler(service catalog.CatalogUseCase) *AirplaneHandler {
	return &AirplaneHandler{service: service}
}

func (h *AirplaneHandler) Register(router *gin.RouterGroup, staff gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", staff, h.create)
	router.PUT("/:id", staff, h.update)
	router.DELETE("/:id", staff, h.delete)
}

func (h *AirplaneHandler) list(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]airplaneListResponse, 0, len(airplanes))
	for _, a := range airplanes {
		out = append(out, toAirplaneListResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirplaneHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneDetailResponse(*airplane))
}

func (h *AirplaneHandler) create(c *gin.Context) {
	var req catalog.AirplaneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airplane, err := h.service.CreateAirplane(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirplaneDetailResponse(*airplane))
}

func (h *AirplaneHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req catalog.AirplaneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airplane, err := h.service.UpdateAirplane(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneDetailResponse(*airplane))
}

func (h *AirplaneHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplane(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
