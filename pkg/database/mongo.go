package database

import (
	"context"
	"fmt"
	"time"

	mevent "go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/backoffice/pkg/metrics"
)

// OpenMongo connects to uri and pings the primary. Command durations are
// reported under the "mongo" backend label.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	monitor := &mevent.CommandMonitor{
		Succeeded: func(_ context.Context, e *mevent.CommandSucceededEvent) {
			metrics.ObserveDBDuration("mongo", e.CommandName, e.Duration)
		},
		Failed: func(_ context.Context, e *mevent.CommandFailedEvent) {
			metrics.ObserveDBDuration("mongo", e.CommandName, e.Duration)
		},
	}

	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(monitor).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return client, nil
}
