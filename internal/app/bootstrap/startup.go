// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/rosterhub/internal/app/cascade"
	"github.com/dalemusser/rosterhub/internal/app/notify"
	liststore "github.com/dalemusser/rosterhub/internal/app/store/lists"
	listuserstore "github.com/dalemusser/rosterhub/internal/app/store/listusers"
	notificationstore "github.com/dalemusser/rosterhub/internal/app/store/notifications"
	userstore "github.com/dalemusser/rosterhub/internal/app/store/users"
	"github.com/dalemusser/rosterhub/internal/app/system/mailer"
	"github.com/dalemusser/rosterhub/internal/app/system/workers"
)

// Shared application components constructed once in Startup, used by
// BuildHandler, and torn down in Shutdown.
var (
	lists         *liststore.Store
	listUsers     *listuserstore.Store
	users         *userstore.Store
	notifications *notificationstore.Store

	notifier    *notify.Notifier
	deactivator *cascade.Deactivator
	reconciler  *workers.Reconcile
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It
// constructs the stores and starts the background workers: the notification
// dispatcher and the cascade reconciliation sweep.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.RosterHubMongoDatabase

	lists = liststore.New(db)
	listUsers = listuserstore.New(db)
	users = userstore.New(db)
	notifications = notificationstore.New(db)

	var sender mailer.Sender = mailer.NopMailer{}
	if appCfg.MailSMTPHost != "" {
		sender = mailer.NewSMTP(appCfg.MailSMTPHost, appCfg.MailSMTPPort, appCfg.MailFrom, logger)
	} else {
		logger.Warn("mail_smtp_host not set; manager notifications will persist without email")
	}

	notifier = notify.New(notifications, users, sender, logger, notify.Options{
		SiteName:      appCfg.SiteName,
		BaseURL:       appCfg.BaseURL,
		QueueSize:     appCfg.NotifyQueueSize,
		RetryAttempts: appCfg.NotifyRetryAttempts,
	})
	notifier.Start()

	deactivator = cascade.New(lists, listUsers, users, logger)

	if appCfg.ReconcileInterval > 0 {
		reconciler = workers.NewReconcile(db, listUsers, deactivator, logger, appCfg.ReconcileInterval)
		reconciler.Start()
	} else {
		logger.Warn("reconcile_interval is 0; cascade reconciliation sweep disabled")
	}

	return nil
}
