package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	fmt.Printf("send email to %s about %s for order %s (%d tickets)\n",
		event.Email, event.Type, event.Reference, len(event.Tickets))
	return nil
}
