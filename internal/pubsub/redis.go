// Package pubsub is the cross-process broadcast fabric. Envelopes published
// here reach every process's local registry, so a multi-instance deployment
// keeps the same mailbox semantics as a single process.
package pubsub

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"intrachat/internal/common"
)

const mailboxChannel = "intrachat:mailbox"

type frame struct {
	UserID   string          `json:"user_id"`
	Envelope common.Envelope `json:"envelope"`
}

// RedisFabric implements common.Broadcaster over a redis pub/sub channel.
// Local delivery happens when the subscription loop receives the publish
// back, same as for every other process.
type RedisFabric struct {
	rdb   *redis.Client
	local common.Broadcaster
}

func NewRedisFabric(addr string, local common.Broadcaster) *RedisFabric {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisFabric{rdb: rdb, local: local}
}

func (f *RedisFabric) Broadcast(userID string, env common.Envelope) {
	data, err := json.Marshal(frame{UserID: userID, Envelope: env})
	if err != nil {
		log.Printf("fabric encode failed: %v", err)
		return
	}

	if err := f.rdb.Publish(context.Background(), mailboxChannel, data).Err(); err != nil {
		// degraded mode: still reach the sessions this process owns
		log.Printf("fabric publish failed, delivering locally: %v", err)
		f.local.Broadcast(userID, env)
	}
}

func (f *RedisFabric) BroadcastMany(userIDs []string, env common.Envelope) {
	for _, userID := range userIDs {
		f.Broadcast(userID, env)
	}
}

// Run consumes the mailbox channel and hands frames to the local registry.
// It returns when the context is cancelled.
func (f *RedisFabric) Run(ctx context.Context) {
	sub := f.rdb.Subscribe(ctx, mailboxChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var fr frame
			if err := json.Unmarshal([]byte(msg.Payload), &fr); err != nil {
				log.Printf("fabric decode failed: %v", err)
				continue
			}
			f.local.Broadcast(fr.UserID, fr.Envelope)
		case <-ctx.Done():
			return
		}
	}
}
