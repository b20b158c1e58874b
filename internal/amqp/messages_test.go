package amqp

import (
	"context"
	"testing"
)

func TestEntityEventRoundTrip(t *testing.T) {
	ev := NewEntityEvent("transactions", "created", "tx-1", "alice")
	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := EntityEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Resource != "transactions" || decoded.Action != "created" {
		t.Errorf("got %+v", decoded)
	}
	if decoded.ID != "tx-1" || decoded.Owner != "alice" {
		t.Errorf("got %+v", decoded)
	}
	if decoded.At.IsZero() {
		t.Error("event should carry a timestamp")
	}
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	if err := p.PublishEntityEvent(context.Background(), NewEntityEvent("accounts", "deleted", "a1", "alice")); err != nil {
		t.Errorf("nil publisher should be a no-op, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("nil close should be a no-op, got %v", err)
	}
}
