package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/orders"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

// createOrderRequest is the write projection: foreign keys only, no nested
// objects and no created_at -- the server stamps that itself.
type createOrderRequest struct {
	Tickets []orders.TicketInput `json:"tickets"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	Reference string           `json:"reference"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

func toOrderResponse(o domain.Order) orderResponse {
	out := orderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		CreatedAt: o.CreatedAt,
		Tickets:   make([]ticketResponse, 0, len(o.Tickets)),
	}
	for _, t := range o.Tickets {
		out.Tickets = append(out.Tickets, toTicketResponse(t))
	}
	return out
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.POST("/:id/tickets", h.addTicket)
}

func (h *OrderHandler) list(c *gin.Context) {
	result, err := h.service.ListOrders(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]orderResponse, 0, len(result))
	for _, o := range result {
		out = append(out, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), callerID(c), req.Tickets)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *OrderHandler) addTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req orders.TicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ticket, err := h.service.AddTicket(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTicketResponse(*ticket))
}
