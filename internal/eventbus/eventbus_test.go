package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Publish("hello")
	select {
	case e := <-sub:
		if e != "hello" {
			t.Fatalf("got %v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestPublishNonBlocking(t *testing.T) {
	b := New()
	b.Subscribe() // never drained
	for i := 0; i < subscriberBuffer*2; i++ {
		b.Publish(i) // must not block
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Close()
	b.Close()
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
	b.Publish("dropped") // no panic after close
}

func TestSubscribeAfterClose(t *testing.T) {
	b := New()
	b.Close()
	sub := b.Subscribe()
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
}
