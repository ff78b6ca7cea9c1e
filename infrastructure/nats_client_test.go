package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSClient_NotConnected(t *testing.T) {
	client := NewNATSClient("nats://localhost:4222", "officepool")

	assert.False(t, client.IsConnected())

	err := client.Publish(context.Background(), "pools.created", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")

	err = client.EnsureStream(PoolEventsStream, NewEventSubjectMapper().GetAllSubjects())
	require.Error(t, err)

	assert.NoError(t, client.Close())
}
