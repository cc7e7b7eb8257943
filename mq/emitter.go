// Package mq spreads "something changed in the backend" events between
// instances through Redis pub/sub. Without Redis the events stay local.
package mq

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const Channel = "saborify-events"

// Index describes one mutation that went through the API client.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	Origin     string `json:"origin,omitempty"`
}

type Handler func(ctx context.Context, ev Index)

type Emitter struct {
	conn     *redis.Client
	origin   string
	mu       sync.RWMutex
	handlers []Handler
}

// NewEmitter publishes through conn; a nil conn keeps everything in process.
func NewEmitter(conn *redis.Client) *Emitter {
	return &Emitter{conn: conn, origin: uuid.New().String()}
}

func (e *Emitter) Handle(h Handler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, h)
	e.mu.Unlock()
}

func (e *Emitter) dispatch(ctx context.Context, ev Index) {
	e.mu.RLock()
	handlers := append([]Handler(nil), e.handlers...)
	e.mu.RUnlock()
	for _, h := range handlers {
		h(ctx, ev)
	}
}

// Emit publishes ev. Every instance, this one included, handles it once it
// comes back through the subscription. If publishing fails the event is
// handled locally so this instance still catches up.
func (e *Emitter) Emit(ctx context.Context, eventName string, ev Index) {
	ev.Origin = e.origin
	if e.conn == nil {
		e.dispatch(ctx, ev)
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] Failed to marshal %s: %v", eventName, err)
		return
	}
	if err := e.conn.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
		e.dispatch(ctx, ev)
		return
	}
	log.Printf("[Emit] %s published to %s", eventName, Channel)
}

// Local reports whether ev was emitted by this instance.
func (e *Emitter) Local(ev Index) bool {
	return ev.Origin == e.origin
}

// Run consumes the channel until ctx is done. With no Redis connection it
// just waits.
func (e *Emitter) Run(ctx context.Context) {
	if e.conn == nil {
		<-ctx.Done()
		return
	}

	sub := e.conn.Subscribe(ctx, Channel)
	defer sub.Close()
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for backend change events...")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Index
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[EventWorker] Failed to parse event: %v", err)
				continue
			}
			e.dispatch(ctx, ev)
		}
	}
}
