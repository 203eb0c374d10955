package controllers

import (
	"net/http"
	"strings"

	"github.com/bufferbudget/backend/internal/cache"
	"github.com/bufferbudget/backend/internal/httperror"
	"github.com/bufferbudget/backend/internal/httputil"
	"github.com/bufferbudget/backend/internal/reconcile"
	"github.com/bufferbudget/backend/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactionList)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)

		r.OPTIONS("/:id/restore", co.OptionsTransactionRestore)
		r.POST("/:id/restore", co.RestoreTransaction)

		r.OPTIONS("/:id/splits", co.OptionsTransactionSplits)
		r.POST("/:id/splits", co.CreateSplits)
	}
}

// RegisterMonthTransactionRoutes registers the reconciled transaction
// list under the months group.
func (co Controller) RegisterMonthTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month/transactions", co.OptionsMonthTransactions)
	r.GET("/:month/transactions", co.GetMonthTransactions)
}

// TransactionQueryFilter are the query parameters of the reconciled
// transaction list.
type TransactionQueryFilter struct {
	Status string `form:"status"` // uncategorized, categorized or deleted
	Filter string `form:"filter"` // Glob matched against description and merchant
}

// TransactionListResponse is the reconciled transaction list of a month.
type TransactionListResponse struct {
	Uncategorized []reconcile.Entry `json:"uncategorized,omitempty"`
	Categorized   []reconcile.Entry `json:"categorized,omitempty"`
	Deleted       []reconcile.Entry `json:"deleted,omitempty"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/transactions [options]
func (co Controller) OptionsMonthTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Reconciled transactions
// @Description	Returns the disjoint transaction sets of a month: uncategorized with quick-categorization suggestions, categorized including reconstructed split parents, and, on request, soft-deleted ones
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		502		{object}	httperror.Error
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Param			status	query		string	false	"Only return one set: uncategorized, categorized or deleted"
// @Param			filter	query		string	false	"Glob filter on description and merchant"
// @Router			/v1/months/{month}/transactions [get]
func (co Controller) GetMonthTransactions(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	var filter TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	var response TransactionListResponse

	if filter.Status == "" || filter.Status == "uncategorized" || filter.Status == "categorized" {
		// Only the reconciled sets need the budget, the deleted view
		// renders without one
		budget, err := co.budgetFor(c.Request.Context(), month)
		if err != nil {
			c.JSON(status(err), httperror.New(err))
			return
		}

		feed, err := co.feedFor(c.Request.Context(), month, cache.KindUncategorized)
		if err != nil {
			c.JSON(status(err), httperror.New(err))
			return
		}

		result := reconcile.Reconcile(feed, budget)
		response.Uncategorized = filterEntries(result.Uncategorized, filter.Filter)
		response.Categorized = filterEntries(result.Categorized, filter.Filter)
	}

	// Deleted transactions only show up in the explicit "show deleted"
	// view
	if filter.Status == "deleted" {
		feed, err := co.feedFor(c.Request.Context(), month, cache.KindDeleted)
		if err != nil {
			c.JSON(status(err), httperror.New(err))
			return
		}

		response.Deleted = filterEntries(reconcile.Deleted(feed), filter.Filter)
	}

	switch filter.Status {
	case "uncategorized":
		response.Categorized = nil
	case "categorized":
		response.Uncategorized = nil
	}

	c.JSON(http.StatusOK, response)
}

// filterEntries keeps the entries whose description or merchant matches
// the glob pattern, case-insensitively.
func filterEntries(entries []reconcile.Entry, pattern string) []reconcile.Entry {
	if pattern == "" {
		return entries
	}

	pattern = strings.ToLower(pattern)

	filtered := make([]reconcile.Entry, 0, len(entries))
	for _, entry := range entries {
		if glob.Glob(pattern, strings.ToLower(entry.Description)) ||
			glob.Glob(pattern, strings.ToLower(entry.Merchant)) {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	string	true	"ID of the transaction"
// @Router			/v1/transactions/{id}/restore [options]
func (co Controller) OptionsTransactionRestore(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create transaction
// @Description	Creates a manual transaction upstream and returns the stored entity
// @Tags			Transactions
// @Produce		json
// @Success		201	{object}	models.Transaction
// @Failure		400	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			transaction	body	upstream.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable upstream.TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	created, err := co.Upstream.CreateTransaction(c.Request.Context(), editable)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.JSON(http.StatusCreated, created)
}

// @Summary		Update transaction
// @Description	Updates a transaction upstream, e.g. to assign it to a budget item, and returns the stored entity
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	models.Transaction
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id			path	string							true	"ID of the transaction"
// @Param			transaction	body	upstream.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	var editable upstream.TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	updated, err := co.Upstream.UpdateTransaction(c.Request.Context(), uri.ID.UUID, editable)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.JSON(http.StatusOK, updated)
}

// @Summary		Delete transaction
// @Description	Soft-deletes a transaction upstream. It stops contributing to actuals and moves to the deleted view
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id	path	string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	if err := co.Upstream.DeleteTransaction(c.Request.Context(), uri.ID.UUID); err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.Status(http.StatusNoContent)
}

// @Summary		Restore transaction
// @Description	Restores a soft-deleted transaction upstream and returns the stored entity
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	models.Transaction
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id	path	string	true	"ID of the transaction"
// @Router			/v1/transactions/{id}/restore [post]
func (co Controller) RestoreTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	restored, err := co.Upstream.RestoreTransaction(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.JSON(http.StatusOK, restored)
}
