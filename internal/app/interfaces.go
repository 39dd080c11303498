// internal/app/interfaces.go
package app

import (
	"context"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/media"
)

// Compile-time assertions that the concrete types satisfy their interfaces.
var (
	_ MediaSource     = (*api.Client)(nil)
	_ PopupController = (*PopupManager)(nil)
)

// MediaSource is the part of the backend a session talks to.
type MediaSource interface {
	RandomMedia(ctx context.Context) ([]media.Item, error)
	GetMedia(ctx context.Context, ids []string) ([]media.Item, error)
	Act(ctx context.Context, req api.ActionRequest) error
	Preview(ctx context.Context, url string) ([]byte, error)
}
