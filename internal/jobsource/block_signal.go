//go:build !zmq

package jobsource

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrNoZMQ is returned when a notification address is set but the binary was
// built without the zmq tag.
var ErrNoZMQ = errors.New("built without zmq support, rebuild with -tags zmq")

// StartBlockSignal returns a nil channel for an empty addr and ErrNoZMQ
// otherwise.
func StartBlockSignal(_ context.Context, addr string, _ *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}
	return nil, ErrNoZMQ
}
