// internal/app/features/lists/handler.go
package lists

import (
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/rosterhub/internal/app/cascade"
	"github.com/dalemusser/rosterhub/internal/app/notify"
	liststore "github.com/dalemusser/rosterhub/internal/app/store/lists"
	userstore "github.com/dalemusser/rosterhub/internal/app/store/users"
)

const (
	listShortTimeout = 5 * time.Second
	listMedTimeout   = 10 * time.Second
	listLongTimeout  = 30 * time.Second
)

// Handler is the feature-level entry point for Lists.
type Handler struct {
	Lists       *liststore.Store
	Users       *userstore.Store
	Notifier    *notify.Notifier
	Deactivator *cascade.Deactivator
	Log         *zap.Logger
}

// NewHandler constructs a Lists handler bound to its stores and workers.
func NewHandler(lists *liststore.Store, users *userstore.Store, notifier *notify.Notifier, deactivator *cascade.Deactivator, logger *zap.Logger) *Handler {
	return &Handler{
		Lists:       lists,
		Users:       users,
		Notifier:    notifier,
		Deactivator: deactivator,
		Log:         logger,
	}
}
