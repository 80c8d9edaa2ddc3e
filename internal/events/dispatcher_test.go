package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var registered, other int
	d.Subscribe(EventVolunteerRegistered, func(context.Context, Event) error {
		registered++
		return nil
	})
	d.Subscribe(EventVolunteerUnregistered, func(context.Context, Event) error {
		other++
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventVolunteerRegistered}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if registered != 1 || other != 0 {
		t.Fatalf("handler routing wrong: registered=%d other=%d", registered, other)
	}
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	var second bool
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		second = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserRegistered}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !second {
		t.Fatal("later handlers must still run after an earlier failure")
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventEventCreated}); err != nil {
		t.Fatalf("publish with no subscribers: %v", err)
	}
}
