package mail

import (
	"context"
	"fmt"
	"sync"

	"github.com/corpspend/expense-api/internal/core/ports"
)

// Outbox is the test-mode mail channel. Messages are captured in memory and
// each delivery returns a preview path served by the debug outbox endpoint.
type Outbox struct {
	mu       sync.Mutex
	messages []ports.MailMessage
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

// Send captures msg and returns its preview reference.
func (o *Outbox) Send(_ context.Context, msg ports.MailMessage) (*ports.Delivery, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.messages = append(o.messages, msg)
	return &ports.Delivery{
		PreviewURL: fmt.Sprintf("/debug/outbox/%d", len(o.messages)-1),
	}, nil
}

// Get returns the captured message at index.
func (o *Outbox) Get(index int) (ports.MailMessage, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if index < 0 || index >= len(o.messages) {
		return ports.MailMessage{}, false
	}
	return o.messages[index], true
}

// Len returns the number of captured messages.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.messages)
}
