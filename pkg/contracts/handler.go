package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Worker is a background loop that runs beside the HTTP server, such as a
// Kafka consumer. Start blocks until ctx is cancelled or the worker fails.
type Worker interface {
	Start(ctx context.Context) error
	Close() error
}
