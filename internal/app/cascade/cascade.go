// internal/app/cascade/cascade.go
package cascade

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/rosterhub/internal/app/policy/listpolicy"
	liststore "github.com/dalemusser/rosterhub/internal/app/store/lists"
	listuserstore "github.com/dalemusser/rosterhub/internal/app/store/listusers"
	userstore "github.com/dalemusser/rosterhub/internal/app/store/users"
	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/metrics"
	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// Deactivator soft-deletes lists and keeps the denormalized membership
// references on user documents consistent with the authoritative list_users
// rows.
type Deactivator struct {
	lists *liststore.Store
	rows  *listuserstore.Store
	users *userstore.Store
	log   *zap.Logger
}

func New(lists *liststore.Store, rows *listuserstore.Store, users *userstore.Store, log *zap.Logger) *Deactivator {
	return &Deactivator{lists: lists, rows: rows, users: users, log: log}
}

// SoftDelete marks the list deleted and cleans up every join row and user
// reference, then returns the deleted document. Per-row cleanup failures are
// isolated: logged, counted, and left for the reconciliation sweep. Deleting
// an already-deleted list re-runs cleanup and returns the record, so the
// operation is idempotent.
func (d *Deactivator) SoftDelete(ctx context.Context, listID primitive.ObjectID, actor *models.User) (*models.List, error) {
	l, err := d.lists.FindByID(ctx, listID, true)
	if err != nil {
		return nil, err
	}
	if !listpolicy.CanManage(actor, l) {
		return nil, apierr.ErrForbidden
	}

	deleted, err := d.lists.MarkDeleted(ctx, listID)
	if err != nil {
		return nil, err
	}

	d.Cleanup(ctx, deleted.ID)
	return deleted, nil
}

// Cleanup walks every join row for the list and cleans each one. Rows are
// processed independently so one bad row never blocks the rest.
func (d *Deactivator) Cleanup(ctx context.Context, listID primitive.ObjectID) {
	rows, err := d.rows.FindByList(ctx, listID)
	if err != nil {
		d.log.Error("cascade: loading join rows failed",
			zap.String("list_id", listID.Hex()),
			zap.Error(err))
		return
	}

	for _, row := range rows {
		if err := d.CleanupRow(ctx, row); err != nil {
			metrics.CascadeRowFailures.Inc()
			d.log.Error("cascade: row cleanup failed",
				zap.String("list_id", listID.Hex()),
				zap.String("row_id", row.ID.Hex()),
				zap.String("user_id", row.User.Hex()),
				zap.Error(err))
			continue
		}
		metrics.CascadeRowsCleaned.Inc()
	}
}

// CleanupRow removes the row's denormalized reference from the user
// document, then soft-deletes the join row. The user write comes first: the
// row's deleted flag is the completion marker the reconciliation sweep
// selects on, so it must only be set once the user document is clean. For
// organization rows the scalar field is unset only while it still points at
// this row; plural fields are pulled by row id. Both writes are no-ops when
// already applied.
func (d *Deactivator) CleanupRow(ctx context.Context, row models.ListUser) error {
	field, ok := row.Type.UserField()
	if !ok {
		return fmt.Errorf("unknown list type %q on row %s", row.Type, row.ID.Hex())
	}

	if field.Scalar {
		if _, err := d.users.ClearOrganizationRef(ctx, row.User, row.ID); err != nil {
			return fmt.Errorf("clear organization ref: %w", err)
		}
	} else {
		if _, err := d.users.PullMembershipRef(ctx, row.User, field.Name, row.ID); err != nil {
			return fmt.Errorf("pull %s ref: %w", field.Name, err)
		}
	}

	if err := d.rows.MarkDeleted(ctx, row.ID); err != nil {
		return fmt.Errorf("mark row deleted: %w", err)
	}
	return nil
}
