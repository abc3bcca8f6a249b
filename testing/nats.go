package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// RosterHistory is the number of revisions kept by buckets from Broker.RosterBucket.
const RosterHistory = 5

// Broker is an in-process JetStream server standing in for the ward's broker.
type Broker struct {
	Server    *server.Server
	Conn      *nats.Conn
	JetStream jetstream.JetStream

	tb       testing.TB
	stopOnce sync.Once
}

// StartBroker starts an embedded NATS server with JetStream on a random local port
// and connects a client to it. Client and server are closed through tb.Cleanup.
//
// The client gives up reconnecting quickly, so tests that call Stop see broker
// outages within a fraction of a second instead of hanging.
//
// Example:
//
//	broker := chargetest.StartBroker(t)
//	kv := broker.RosterBucket("ward-4")
//	pub := publish.NewKVPublisher(kv)
func StartBroker(tb testing.TB) *Broker {
	tb.Helper()

	ns, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  tb.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	if err != nil {
		tb.Fatalf("create embedded NATS server: %v", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		tb.Fatal("embedded NATS server not ready within 5s")
	}

	nc, err := nats.Connect(ns.ClientURL(),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(1),
		nats.ReconnectWait(50*time.Millisecond),
	)
	if err != nil {
		ns.Shutdown()
		tb.Fatalf("connect to embedded NATS server: %v", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		ns.Shutdown()
		tb.Fatalf("create JetStream context: %v", err)
	}

	b := &Broker{Server: ns, Conn: nc, JetStream: js, tb: tb}
	tb.Cleanup(func() {
		nc.Close()
		b.Stop()
	})

	return b
}

// RosterBucket creates an in-memory bucket that keeps RosterHistory revisions per
// roster, enough to assert on what a refresh changed.
func (b *Broker) RosterBucket(name string) jetstream.KeyValue {
	b.tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	kv, err := b.JetStream.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "test rosters: " + name,
		History:     RosterHistory,
		Storage:     jetstream.MemoryStorage,
	})
	if err != nil {
		b.tb.Fatalf("create roster bucket %s: %v", name, err)
	}

	return kv
}

// Stop shuts the server down while the client stays open, simulating a broker
// outage. Safe to call more than once.
func (b *Broker) Stop() {
	b.stopOnce.Do(func() {
		b.Server.Shutdown()
		b.Server.WaitForShutdown()
	})
}
