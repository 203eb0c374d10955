// Package controllers wires the aggregation core to the HTTP surface
// consumed by the presentation layer.
//
// Handlers never interpret budget numbers themselves: they fetch the raw
// snapshot (through the cache), hand it to the pure core packages and
// return the result. After any mutation the month's cache is dropped so
// the next read re-fetches and re-aggregates, there is no optimistic
// delta application.
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bufferbudget/backend/internal/cache"
	"github.com/bufferbudget/backend/internal/httperror"
	"github.com/bufferbudget/backend/internal/models"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/bufferbudget/backend/internal/upstream"
	"github.com/gin-gonic/gin"
)

// Controller holds the collaborators the handlers need.
type Controller struct {
	Upstream *upstream.Client
	Cache    *cache.Cache
}

// status maps an error to the HTTP status the handler responds with.
func status(err error) int {
	var upstreamErr *upstream.Error

	switch {
	case errors.Is(err, upstream.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseMonth binds the :month URI parameter.
func parseMonth(c *gin.Context) (types.Month, bool) {
	month, err := types.ParseMonth(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httperror.NewFromString("the month must be specified as YYYY-MM"))
		return types.Month{}, false
	}

	return month, true
}

// budgetFor returns the budget snapshot for a month, from the cache when
// possible.
func (co Controller) budgetFor(ctx context.Context, month types.Month) (models.Budget, error) {
	var budget models.Budget

	if payload, ok, err := co.Cache.Get(month, cache.KindBudget); err == nil && ok {
		if err := json.Unmarshal(payload, &budget); err == nil {
			return budget, nil
		}
	}

	budget, err := co.Upstream.GetBudget(ctx, month)
	if err != nil {
		return models.Budget{}, err
	}

	co.storeSnapshot(month, cache.KindBudget, budget)

	return budget, nil
}

// feedFor returns a transaction feed for a month, from the cache when
// possible. kind is one of the cache kinds.
func (co Controller) feedFor(ctx context.Context, month types.Month, kind string) ([]models.Transaction, error) {
	if payload, ok, err := co.Cache.Get(month, kind); err == nil && ok {
		var feed []models.Transaction
		if err := json.Unmarshal(payload, &feed); err == nil {
			return feed, nil
		}
	}

	var feed []models.Transaction
	var err error

	switch kind {
	case cache.KindDeleted:
		feed, err = co.Upstream.GetDeletedTransactions(ctx, month)
	default:
		feed, err = co.Upstream.GetUncategorizedTransactions(ctx, month)
	}
	if err != nil {
		return nil, err
	}

	co.storeSnapshot(month, kind, feed)

	return feed, nil
}

// storeSnapshot caches a fetched payload. A cache write failure is not a
// request failure, the snapshot is simply re-fetched next time.
func (co Controller) storeSnapshot(month types.Month, kind string, payload any) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return
	}

	_ = co.Cache.Put(month, kind, encoded)
}

// invalidate drops the cached snapshots of a month after a mutation.
func (co Controller) invalidate(month types.Month) {
	_ = co.Cache.Invalidate(month)
}

// invalidateAll drops every cached snapshot. Used by mutations that
// cannot be attributed to a single month, e.g. deleting by entity id.
func (co Controller) invalidateAll() {
	// A mutation on an entity of one month can shift another month's
	// feed window, dropping everything is the safe default
	for _, month := range co.cachedMonths() {
		_ = co.Cache.Invalidate(month)
	}
}

func (co Controller) cachedMonths() []types.Month {
	months, err := co.Cache.Months()
	if err != nil {
		return nil
	}

	return months
}
