package outbox_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"car-sharing-app/internal/domain/events"
	"car-sharing-app/internal/infra/outbox"

	"go.uber.org/zap"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())

	var mu sync.Mutex
	var got []events.Event
	done := make(chan struct{}, 1)
	bus.Subscribe(events.NameRentalOpened, func(ctx context.Context, e events.Event) error {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		done <- struct{}{}
		return nil
	})

	bus.Start(context.Background())
	defer bus.Stop()

	if err := bus.Publish(context.Background(), events.RentalOpened{RentalID: 1, CarModel: "Model 3"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	opened, ok := got[0].(events.RentalOpened)
	if !ok || opened.CarModel != "Model 3" {
		t.Fatalf("delivered %+v", got[0])
	}
}

func TestBusIgnoresUnsubscribedEvents(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())
	bus.Start(context.Background())
	defer bus.Stop()

	if err := bus.Publish(context.Background(), events.RentalClosed{RentalID: 1}); err != nil {
		t.Fatalf("Publish without subscriber: %v", err)
	}
}

func TestBusSurvivesHandlerPanic(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())

	delivered := make(chan struct{}, 2)
	bus.Subscribe(events.NameRentalOpened, func(ctx context.Context, e events.Event) error {
		delivered <- struct{}{}
		panic("handler bug")
	})

	bus.Start(context.Background())
	defer bus.Stop()

	for i := 0; i < 2; i++ {
		if err := bus.Publish(context.Background(), events.RentalOpened{RentalID: uint(i)}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d was not delivered after panic", i)
		}
	}
}

func TestBusStopDrainsQueue(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())

	var mu sync.Mutex
	count := 0
	bus.Subscribe(events.NameRentalClosed, func(ctx context.Context, e events.Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	bus.Start(context.Background())
	for i := 0; i < 5; i++ {
		if err := bus.Publish(context.Background(), events.RentalClosed{RentalID: uint(i)}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}
	bus.Stop()

	mu.Lock()
	defer mu.Unlock()
	if count != 5 {
		t.Fatalf("delivered %d events before stop; want 5", count)
	}
}
