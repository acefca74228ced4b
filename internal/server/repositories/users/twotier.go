package users

import (
	"context"
	"errors"
	"time"

	"github.com/talenthub/talenthub/internal/common"
	"github.com/talenthub/talenthub/internal/logging"
	"github.com/talenthub/talenthub/internal/server/models"
)

// TrackFallback is invoked whenever the fallback tier serves an
// operation the durable tier could not.
type TrackFallback func(op string)

// TwoTierRepository fronts the durable tier with the in-process fallback
// tier. Every durable call runs under a bounded timeout; on any durable
// infrastructure error the operation is retried once against the
// fallback tier. Callers are never told which tier answered.
//
// Reads check the durable tier first and the fallback tier second, and
// return the first match without merging. Writes land in exactly one
// tier: the durable tier when reachable, the fallback tier otherwise.
// The two tiers are not synchronized — this is a read path over two
// stores, not a read-through cache.
type TwoTierRepository struct {
	durable  Repository
	fallback *InMemoryRepository
	timeout  time.Duration
	logger   logging.Logger
	track    TrackFallback
}

func NewTwoTierRepository(durable Repository, fallback *InMemoryRepository, timeout time.Duration, logger logging.Logger, track TrackFallback) *TwoTierRepository {
	if track == nil {
		track = func(string) {}
	}
	return &TwoTierRepository{
		durable:  durable,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
		track:    track,
	}
}

func (r *TwoTierRepository) durableCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Put inserts a record into exactly one tier. A conflict from either
// tier surfaces as common.ErrAlreadyExists; uniqueness spans the union
// of both tiers, so a record parked in the fallback tier during an
// earlier outage still blocks re-registration.
func (r *TwoTierRepository) Put(ctx context.Context, user *models.User) error {
	if r.fallback.Has(user.Email) {
		return common.ErrAlreadyExists
	}

	dctx, cancel := r.durableCtx(ctx)
	defer cancel()

	err := r.durable.Put(dctx, user)
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrAlreadyExists) {
		return common.ErrAlreadyExists
	}

	r.logger.Warn(ctx, "durable tier put failed, writing to fallback tier", "error", err.Error())
	r.track("put")

	if ferr := r.fallback.Put(ctx, user); ferr != nil {
		if errors.Is(ferr, common.ErrAlreadyExists) {
			return common.ErrAlreadyExists
		}
		return common.ErrStoreUnavailable
	}
	return nil
}

// GetByEmail consults the durable tier first. A durable miss still needs
// the fallback check, since the record may have been written during an
// outage.
func (r *TwoTierRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	dctx, cancel := r.durableCtx(ctx)
	defer cancel()

	user, err := r.durable.GetByEmail(dctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		r.logger.Warn(ctx, "durable tier get failed, reading fallback tier", "error", err.Error())
		r.track("get")
	}
	return r.fallback.GetByEmail(ctx, email)
}

func (r *TwoTierRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	dctx, cancel := r.durableCtx(ctx)
	defer cancel()

	user, err := r.durable.GetByID(dctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		r.logger.Warn(ctx, "durable tier get failed, reading fallback tier", "error", err.Error())
		r.track("get")
	}
	return r.fallback.GetByID(ctx, id)
}

// Update follows the read path's order: durable first, then the
// fallback tier for records that only exist there.
func (r *TwoTierRepository) Update(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	dctx, cancel := r.durableCtx(ctx)
	defer cancel()

	user, err := r.durable.Update(dctx, id, upd)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		r.logger.Warn(ctx, "durable tier update failed, updating fallback tier", "error", err.Error())
		r.track("update")
	}
	return r.fallback.Update(ctx, id, upd)
}
