package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
)

type RouteHandler struct {
	service catalog.CatalogUseCase
}

// routeListResponse flattens airports to their names for compact lists.
type routeListResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

// routeDetailResponse expands both airports in full.
type routeDetailResponse struct {
	ID          int64           `json:"id"`
	Source      airportResponse `json:"source"`
	Destination airportResponse `json:"destination"`
	Distance    int             `json:"distance"`
}

func toRouteListResponse(r domain.Route) routeListResponse {
	out := routeListResponse{ID: r.ID, Distance: r.Distance}
	if r.Source != nil {
		out.Source = r.Source.Name
	}
	if r.Destination != nil {
		out.Destination = r.Destination.Name
	}
	return out
}

func toRouteDetailResponse(r domain.Route) routeDetailResponse {
	out := routeDetailResponse{ID: r.ID, Distance: r.Distance}
	if r.Source != nil {
		out.Source = toAirportResponse(*r.Source)
	}
	if r.Destination != nil {
		out.Destination = toAirportResponse(*r.Destination)
	}
	return out
}

func NewRouteHandler(service catalog.CatalogUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup, staff gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", staff, h.create)
	router.PUT("/:id", staff, h.update)
	router.DELETE("/:id", staff, h.delete)
}

func (h *RouteHandler) list(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]routeListResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteListResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteDetailResponse(*route))
}

func (h *RouteHandler) create(c *gin.Context) {
	var req catalog.RouteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	route, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRouteDetailResponse(*route))
}

func (h *RouteHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req catalog.RouteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	route, err := h.service.UpdateRoute(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRouteDetailResponse(*route))
}

func (h *RouteHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
