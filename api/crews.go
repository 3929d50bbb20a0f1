package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
)

type CrewHandler struct {
	service catalog.CatalogUseCase
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func toCrewResponse(c domain.Crew) crewResponse {
	return crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

func NewCrewHandler(service catalog.CatalogUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup, staff gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", staff, h.create)
	router.PUT("/:id", staff, h.update)
	router.DELETE("/:id", staff, h.delete)
}

func (h *CrewHandler) list(c *gin.Context) {
	members, err := h.service.ListCrew(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]crewResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toCrewResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	member, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(*member))
}

func (h *CrewHandler) create(c *gin.Context) {
	var req catalog.CrewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	member, err := h.service.CreateCrew(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCrewResponse(*member))
}

func (h *CrewHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req catalog.CrewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	member, err := h.service.UpdateCrew(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCrewResponse(*member))
}

func (h *CrewHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCrew(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
