// internal/notify/mailer_test.go
package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailerDeliversQueuedEmails(t *testing.T) {
	var mu sync.Mutex
	var sent []Email

	m := NewMailerWithSender(8, func(email Email) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, email)
		return nil
	})

	m.Enqueue("a@example.com", "Order SuccessFull", "order placed")
	m.Enqueue("b@example.com", "Hurray!, You Have an order to process", "get it ready")
	m.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "b@example.com", sent[1].To)
}

func TestMailerSwallowsDeliveryFailures(t *testing.T) {
	m := NewMailerWithSender(8, func(Email) error {
		return errors.New("smtp down")
	})

	// Must not panic or propagate anywhere.
	m.Enqueue("a@example.com", "subject", "message")
	m.Close()
}

func TestMailerDropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	m := NewMailerWithSender(1, func(Email) error {
		<-block
		return nil
	})

	// One in flight, one queued, the rest dropped. Enqueue must return
	// promptly regardless.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			m.Enqueue("a@example.com", "subject", "message")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(block)
	m.Close()
}

func TestMailerIgnoresEmptyRecipient(t *testing.T) {
	m := NewMailerWithSender(1, func(Email) error {
		t.Error("nothing should be delivered")
		return nil
	})

	m.Enqueue("", "subject", "message")
	m.Close()
}
