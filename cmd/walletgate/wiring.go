package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/layer-3/walletgate/adapters/store"
	"github.com/layer-3/walletgate/adapters/tokenizer"
	"github.com/layer-3/walletgate/config"
	"github.com/layer-3/walletgate/ports"
)

func openRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach Redis: %w", err)
	}
	return client, nil
}

// newSessionStore picks Redis when a client is given, memory otherwise,
// and seals records when configured
func newSessionStore(cfg config.Config, client *redis.Client) (ports.SessionStore, error) {
	ttl := cfg.Gate().SessionTTL

	var (
		blob  store.Blob
		plain ports.SessionStore
	)
	if client != nil {
		s := store.NewRedisStore(client, store.DefaultKey, ttl)
		blob, plain = s, s
	} else {
		s := store.NewMemoryStore()
		blob, plain = s, s
	}

	if !cfg.SealSessions {
		return plain, nil
	}

	key, err := loadSigningKey(cfg.SessionKey)
	if err != nil {
		return nil, err
	}
	return store.NewSealed(blob, tokenizer.NewJWTSealer(key), ttl), nil
}

// loadSigningKey reads a PEM EC key. Without a path an ephemeral key is generated
// and sealed sessions do not survive a restart.
func loadSigningKey(path string) (*ecdsa.PrivateKey, error) {
	if path == "" {
		logger.Warn("no session_key configured, sealing with an ephemeral key")
		return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session key: %w", err)
	}
	key, err := jwt.ParseECPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("parse session key: %w", err)
	}
	return key, nil
}

// eventBus is where gate events go: Redis streams when Redis is configured,
// an in-process channel otherwise
type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	closers    []func() error
}

func newEventBus(client *redis.Client) (*eventBus, error) {
	wmLogger := watermill.NewStdLogger(false, false)

	if client == nil {
		ch := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		return &eventBus{publisher: ch, subscriber: ch, closers: []func() error{ch.Close}}, nil
	}

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: client,
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis publisher: %w", err)
	}
	subscriber, err := redisstream.NewSubscriber(
		redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "walletgate",
		},
		wmLogger,
	)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to create Redis subscriber: %w", err)
	}
	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		closers:    []func() error{subscriber.Close, publisher.Close},
	}, nil
}

func (b *eventBus) Close() {
	for _, closeFn := range b.closers {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close event bus", zap.Error(err))
		}
	}
}
