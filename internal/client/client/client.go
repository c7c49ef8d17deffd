package client

import (
	"context"

	"github.com/smpn3pacet/pustaka/internal/client/models"
)

// Action names a mutation kind sent to the remote endpoint.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Client talks to the remote collection endpoint.
//
// FetchAll reads the entire remote collection. Failures are classified as
// common.ErrNetwork (unreachable, non-success status) or common.ErrFormat
// (the response is not the expected collection shape); callers must treat
// both as "remote unavailable" and keep serving local data.
//
// Push sends one mutation. The transport gives no reliable success signal
// (the endpoint may answer opaquely), so a nil return means only "the request
// was handed to the network"; callers must assume eventual success and verify
// via a later FetchAll. No ordering is guaranteed between concurrent pushes.
type Client interface {
	FetchAll(ctx context.Context) ([]*models.Item, error)
	Push(ctx context.Context, action Action, item *models.Item) error
	Ping(ctx context.Context) error
}
