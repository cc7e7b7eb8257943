package mq

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitWithoutRedisDispatchesLocally(t *testing.T) {
	e := NewEmitter(nil)
	var got []Index
	e.Handle(func(_ context.Context, ev Index) { got = append(got, ev) })

	e.Emit(context.Background(), "recipe-created", Index{EntityType: "recipe", Method: "POST", EntityId: "7"})

	require.Len(t, got, 1)
	assert.Equal(t, "recipe", got[0].EntityType)
	assert.Equal(t, "7", got[0].EntityId)
	assert.NotEmpty(t, got[0].Origin)
}

func TestEmitThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	conn := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer conn.Close()

	publisher := NewEmitter(conn)
	subscriber := NewEmitter(conn)

	received := make(chan Index, 1)
	subscriber.Handle(func(_ context.Context, ev Index) { received <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go subscriber.Run(ctx)

	// wait for the subscription before publishing
	deadline := time.Now().Add(2 * time.Second)
	for mr.PubSubNumSub(Channel)[Channel] == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	publisher.Emit(ctx, "ingredient-deleted", Index{EntityType: "ingredient", Method: "DELETE", EntityId: "4"})

	select {
	case ev := <-received:
		assert.Equal(t, "ingredient", ev.EntityType)
		assert.Equal(t, "4", ev.EntityId)
		assert.Equal(t, publisher.origin, ev.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("event never arrived")
	}
}

func TestRunWithoutRedisWaitsForCancel(t *testing.T) {
	e := NewEmitter(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestLocalRecognisesOwnEvents(t *testing.T) {
	mine := NewEmitter(nil)
	other := NewEmitter(nil)

	var got Index
	mine.Handle(func(_ context.Context, ev Index) { got = ev })
	mine.Emit(context.Background(), "recipe-created", Index{EntityType: "recipe", Method: "POST", EntityId: "1"})

	assert.True(t, mine.Local(got))
	assert.False(t, other.Local(got))
}
