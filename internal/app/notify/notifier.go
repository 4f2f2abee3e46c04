// internal/app/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	retry "github.com/avast/retry-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	notificationstore "github.com/dalemusser/rosterhub/internal/app/store/notifications"
	userstore "github.com/dalemusser/rosterhub/internal/app/store/users"
	"github.com/dalemusser/rosterhub/internal/app/system/mailer"
	"github.com/dalemusser/rosterhub/internal/app/system/metrics"
	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// Event is one manager-set change on a list, captured at update time. The
// embedded snapshot keeps the notification text stable even if the list is
// renamed before the event is dispatched.
type Event struct {
	List       models.Snapshot
	Added      []primitive.ObjectID
	Removed    []primitive.ObjectID
	ChangedBy  primitive.ObjectID
	ByName     string
	OccurredAt time.Time
}

// Options configure the dispatcher.
type Options struct {
	SiteName      string
	BaseURL       string
	QueueSize     int
	RetryAttempts uint
}

// Notifier persists and emails manager-change notifications off the request
// path. Enqueue never blocks a request: when the queue is full the event is
// dropped, logged, and counted.
type Notifier struct {
	notifications *notificationstore.Store
	users         *userstore.Store
	mail          mailer.Sender
	log           *zap.Logger
	opts          Options

	queue    chan Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New builds a Notifier. Call Start before Enqueue.
func New(notifications *notificationstore.Store, users *userstore.Store, mail mailer.Sender, log *zap.Logger, opts Options) *Notifier {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 3
	}
	return &Notifier{
		notifications: notifications,
		users:         users,
		mail:          mail,
		log:           log,
		opts:          opts,
		queue:         make(chan Event, opts.QueueSize),
		done:          make(chan struct{}),
	}
}

// Start launches the dispatch worker.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go n.run()
	n.log.Info("notification dispatcher started",
		zap.Int("queue_size", n.opts.QueueSize),
		zap.Uint("retry_attempts", n.opts.RetryAttempts))
}

// Stop drains queued events and waits for the worker to finish. Safe to
// call more than once.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.done)
		n.wg.Wait()
		n.log.Info("notification dispatcher stopped")
	})
}

// Enqueue hands an event to the dispatcher without blocking.
func (n *Notifier) Enqueue(e Event) {
	if len(e.Added) == 0 && len(e.Removed) == 0 {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	select {
	case n.queue <- e:
	default:
		metrics.NotificationsDropped.Inc()
		n.log.Error("notification queue full, dropping event",
			zap.String("list_id", e.List.ID.Hex()),
			zap.Int("added", len(e.Added)),
			zap.Int("removed", len(e.Removed)))
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()

	for {
		select {
		case e := <-n.queue:
			n.dispatch(e)
		case <-n.done:
			// Drain whatever was queued before shutdown.
			for {
				select {
				case e := <-n.queue:
					n.dispatch(e)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) dispatch(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, uid := range e.Added {
		n.deliver(ctx, models.NotifyAddedListManager, uid, e)
	}
	for _, uid := range e.Removed {
		n.deliver(ctx, models.NotifyRemovedListManager, uid, e)
	}
}

// deliver persists the notification, then emails the affected user.
// Persistence retries; the dedupe key makes a retried insert a no-op, so an
// interrupted run never double-notifies. Email is best effort after the
// record exists.
func (n *Notifier) deliver(ctx context.Context, typ string, uid primitive.ObjectID, e Event) {
	doc := models.Notification{
		Type:      typ,
		User:      uid,
		CreatedBy: e.ChangedBy,
		List:      e.List,
		DedupeKey: fmt.Sprintf("%s:%s:%s:%d", typ, e.List.ID.Hex(), uid.Hex(), e.OccurredAt.UnixNano()),
		CreatedAt: e.OccurredAt,
	}

	var inserted bool
	err := retry.Do(func() error {
		var err error
		inserted, err = n.notifications.Insert(ctx, doc)
		return err
	},
		retry.Attempts(n.opts.RetryAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		metrics.NotificationFailures.Inc()
		n.log.Error("notification insert failed",
			zap.String("type", typ),
			zap.String("user_id", uid.Hex()),
			zap.String("list_id", e.List.ID.Hex()),
			zap.Error(err))
		return
	}
	if !inserted {
		// Already delivered by an earlier run.
		return
	}

	metrics.NotificationsSent.Inc()

	if err := n.email(ctx, typ, uid, e); err != nil {
		// The persisted notification is the source of truth; a failed email
		// is logged and not retried past the retry budget.
		n.log.Warn("notification email failed",
			zap.String("type", typ),
			zap.String("user_id", uid.Hex()),
			zap.Error(err))
	}
}

func (n *Notifier) email(ctx context.Context, typ string, uid primitive.ObjectID, e Event) error {
	u, err := n.users.GetByID(ctx, uid)
	if err != nil {
		return fmt.Errorf("load recipient: %w", err)
	}

	data := mailer.ManagerEmailData{
		SiteName: n.opts.SiteName,
		ListName: e.List.Name,
		ListURL:  fmt.Sprintf("%s/lists/%s", n.opts.BaseURL, e.List.ID.Hex()),
		ByName:   e.ByName,
	}

	var msg mailer.Email
	if typ == models.NotifyAddedListManager {
		msg = mailer.BuildManagerAddedEmail(data)
	} else {
		msg = mailer.BuildManagerRemovedEmail(data)
	}
	msg.To = u.Email

	return retry.Do(func() error { return n.mail.Send(msg) },
		retry.Attempts(n.opts.RetryAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}
