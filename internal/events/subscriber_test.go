package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

// connectPair returns a publisher and subscriber on a fresh embedded server.
func connectPair(t *testing.T, subOpts ...nats.Option) (*NATSPublisher, *NATSSubscriber) {
	t.Helper()
	url := startTestNATS(t)
	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	t.Cleanup(func() { pub.Close() })
	sub, err := NewNATSSubscriber(url, subOpts...)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	t.Cleanup(func() { sub.Close() })
	return pub, sub
}

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed early")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return nil
}

func TestNATSSubscriber_GraphBuiltRoundTrip(t *testing.T) {
	pub, sub := connectPair(t)

	ch, cancel, err := sub.Subscribe(TopicGraphBuilt)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer cancel()

	want := GraphBuilt{ProjectID: 3, Stats: &model.GraphStats{StakeholderCount: 2, ProblemCount: 5}}
	if err := pub.Publish(context.Background(), TopicGraphBuilt, want); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	var got GraphBuilt
	if err := json.Unmarshal(receive(t, ch), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.ProjectID != 3 || got.Stats == nil || *got.Stats != *want.Stats {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNATSSubscriber_WildcardMatchesEveryTopic(t *testing.T) {
	pub, sub := connectPair(t)

	ch, cancel, err := sub.Subscribe(TopicAll)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer cancel()

	ctx := context.Background()
	pub.Publish(ctx, TopicGraphBuilt, GraphBuilt{ProjectID: 1})
	pub.Publish(ctx, TopicExportCompleted, ExportCompleted{Destination: "s3://b/k", Projects: 1})
	pub.Publish(ctx, "other.topic", map[string]int{"ignored": 1})
	pub.conn.Flush()

	first, second := receive(t, ch), receive(t, ch)
	if string(first) != `{"project_id":1,"stats":null}` {
		t.Errorf("first = %s", first)
	}
	var exp ExportCompleted
	if err := json.Unmarshal(second, &exp); err != nil || exp.Destination != "s3://b/k" {
		t.Errorf("second = %s (%v)", second, err)
	}

	select {
	case msg := <-ch:
		t.Errorf("received message outside discovery.>: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNATSSubscriber_CancelClosesChannel(t *testing.T) {
	_, sub := connectPair(t)

	ch, cancel, err := sub.Subscribe(TopicAll)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	cancel()
	cancel() // idempotent

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after cancel")
	}
}

func TestNATSSubscriber_CancelDuringPublishing(t *testing.T) {
	pub, sub := connectPair(t)

	ch, cancel, err := sub.Subscribe(TopicAll)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 200 {
			_ = pub.conn.Publish(TopicGraphBuilt, []byte(`{"project_id":9}`))
		}
		pub.conn.Flush()
	}()
	cancel()
	<-done

	// Payloads buffered before cancel are still readable; the channel then
	// closes and never exceeds its buffer.
	n := 0
	for range ch {
		n++
	}
	if n > subscriberBuffer {
		t.Errorf("drained %d payloads, buffer is %d", n, subscriberBuffer)
	}
}

func TestNATSSubscriber_DropsWhenFull(t *testing.T) {
	pub, sub := connectPair(t)

	ch, cancel, err := sub.Subscribe(TopicGraphBuilt)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	for range subscriberBuffer * 2 {
		_ = pub.conn.Publish(TopicGraphBuilt, []byte(`{}`))
	}
	pub.conn.Flush()

	deadline := time.Now().Add(2 * time.Second)
	for len(ch) < subscriberBuffer && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	n := 0
	for range ch {
		n++
	}
	if n != subscriberBuffer {
		t.Errorf("buffered %d payloads, want %d", n, subscriberBuffer)
	}
}

func TestNATSSubscriber_AcceptsHandlerOptions(t *testing.T) {
	_, sub := connectPair(t, nats.ReconnectHandler(func(*nats.Conn) {}))
	if !sub.conn.IsConnected() {
		t.Fatal("expected subscriber to be connected")
	}
	if got := sub.conn.Opts.Name; got != "discovery-watch" {
		t.Errorf("client name = %q, want %q", got, "discovery-watch")
	}
}
