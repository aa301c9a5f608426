package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordEvent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	subject := "u1"
	require.NoError(t, env.events.CreateEvent(ctx, "user.register", "info", "User 'a@example.com' registered.", &subject))

	events, err := env.events.GetRecentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotEmpty(t, events[0].ID)
	require.Equal(t, "user.register", events[0].Type)
	require.Equal(t, "info", events[0].Level)
	require.Equal(t, "u1", *events[0].SubjectID)
	require.False(t, events[0].CreatedAt.IsZero())
}

func TestGetRecentEvents(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	for i := 0; i < 60; i++ {
		msg := fmt.Sprintf("event %d", i)
		require.NoError(t, env.events.CreateEvent(ctx, "place.update", "info", msg, nil))
	}

	t.Run("newest first", func(t *testing.T) {
		events, err := env.events.GetRecentEvents(ctx, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Equal(t, "event 59", events[0].Message)
		require.Equal(t, "event 58", events[1].Message)
	})

	t.Run("zero and negative limits fall back to the default", func(t *testing.T) {
		events, err := env.events.GetRecentEvents(ctx, 0)
		require.NoError(t, err)
		require.Len(t, events, 50)

		events, err = env.events.GetRecentEvents(ctx, -3)
		require.NoError(t, err)
		require.Len(t, events, 50)
	})

	t.Run("oversized limits fall back to the default", func(t *testing.T) {
		events, err := env.events.GetRecentEvents(ctx, 500)
		require.NoError(t, err)
		require.Len(t, events, 50)
	})
}
