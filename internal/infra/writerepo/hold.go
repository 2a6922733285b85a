package writerepo

import (
	"context"
	"slices"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/infra"
	"lodge-booking/internal/infra/converter"
	"lodge-booking/internal/infra/db"
	"lodge-booking/internal/infra/readstore"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Every hold write takes the same transaction-scoped lock, so two sessions cannot both
	// pass the overlap check for the same nights.
	lockHoldsSQL = `SELECT pg_advisory_xact_lock(hashtext('bookings.holds'))`

	deleteSessionHoldsSQL = `DELETE FROM bookings WHERE status = 'proposed' AND session_token = $1`

	insertBookingSQL = `INSERT INTO bookings (` + converter.BookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
)

type HoldRepository struct {
	db       db.TxBeginner
	detector *conflict.Detector
}

func NewHoldRepository(db db.TxBeginner, detector *conflict.Detector) *HoldRepository {
	return &HoldRepository{db: db, detector: detector}
}

func (r *HoldRepository) SaveHold(ctx context.Context, hold *booking.Booking, excludeBookingID uuid.UUID) error {
	if hold.Status() != booking.StatusProposed {
		return errs.Newf("save hold: booking %s has status %s", hold.ID(), hold.Status())
	}
	row, err := converter.BookingToRow(hold)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockHoldsSQL); err != nil {
			return infra.WrapRepoErr("failed to lock holds", err)
		}
		if _, err := tx.Exec(ctx, deleteSessionHoldsSQL, hold.SessionToken()); err != nil {
			return infra.WrapRepoErr("failed to release session holds", err)
		}

		existing, err := readstore.ListBookings(ctx, tx, hold.Rooms()...)
		if err != nil {
			return err
		}
		existing = slices.DeleteFunc(existing, func(b *booking.Booking) bool { return b.ID() == hold.ID() })
		if err := r.detector.Detect(conflict.CandidateFor(hold), existing, excludeBookingID).Err(); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, insertBookingSQL,
			row.ID, row.Status, row.Rooms, row.StartDate, row.EndDate, row.Guests, row.Overrides,
			row.Bulk, row.TotalPrice, row.SessionToken, row.ExpiresAt, row.CreatedAt)
		if err != nil {
			if pgconv.IsUniqueViolation(err) {
				return infra.WrapRepoErr("booking already exists", err, infra.KindDuplicateKey)
			}
			return infra.WrapRepoErr("failed to insert hold", err)
		}
		return nil
	})
}
