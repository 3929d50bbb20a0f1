package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/orders"
)

type TicketHandler struct {
	service orders.OrderUseCase
}

// ticketResponse shows the flight as its list projection so a ticket reads
// as a row/seat on a labelled flight.
type ticketResponse struct {
	ID      int64               `json:"id"`
	Row     int                 `json:"row"`
	Seat    int                 `json:"seat"`
	Flight  *flightListResponse `json:"flight,omitempty"`
	OrderID int64               `json:"order"`
}

func toTicketResponse(t domain.Ticket) ticketResponse {
	out := ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, OrderID: t.OrderID}
	if t.Flight != nil {
		f := toFlightListResponse(*t.Flight)
		out.Flight = &f
	}
	return out
}

func NewTicketHandler(service orders.OrderUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *TicketHandler) list(c *gin.Context) {
	tickets, err := h.service.ListTickets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(*ticket))
}
