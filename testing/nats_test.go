package testing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartBroker(t *testing.T) {
	broker := StartBroker(t)

	require.True(t, broker.Conn.IsConnected())
	require.True(t, broker.Server.ReadyForConnections(time.Second))

	info, err := broker.JetStream.AccountInfo(t.Context())
	require.NoError(t, err)
	require.NotNil(t, info)
}

func TestStartBroker_Parallel(t *testing.T) {
	t.Parallel()

	for range 3 {
		t.Run("parallel", func(t *testing.T) {
			t.Parallel()

			require.True(t, StartBroker(t).Conn.IsConnected())
		})
	}
}

func TestBroker_RosterBucket(t *testing.T) {
	kv := StartBroker(t).RosterBucket("test-rosters")

	require.Equal(t, "test-rosters", kv.Bucket())

	for i := range RosterHistory + 2 {
		_, err := kv.Put(t.Context(), "roster.day", []byte{byte('a' + i)})
		require.NoError(t, err)
	}

	history, err := kv.History(t.Context(), "roster.day")
	require.NoError(t, err)
	require.Len(t, history, RosterHistory)
	require.Equal(t, []byte{byte('a' + RosterHistory + 1)}, history[len(history)-1].Value())
}

func TestBroker_Stop(t *testing.T) {
	broker := StartBroker(t)
	kv := broker.RosterBucket("outage")

	broker.Stop()
	broker.Stop()

	require.Eventually(t, broker.Conn.IsClosed, 5*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	_, err := kv.Get(ctx, "roster.day")
	require.Error(t, err)
}
