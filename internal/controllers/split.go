package controllers

import (
	"net/http"

	"github.com/bufferbudget/backend/internal/httperror"
	"github.com/bufferbudget/backend/internal/httputil"
	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/split"
	"github.com/bufferbudget/backend/internal/upstream"
	"github.com/gin-gonic/gin"
)

// RegisterSplitRoutes registers the routes for splits with the
// RouterGroup that is passed.
func (co Controller) RegisterSplitRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/validate", co.OptionsSplitValidate)
		r.POST("/validate", co.ValidateSplit)
	}

	{
		r.OPTIONS("/:id", co.OptionsSplitDetail)
		r.DELETE("/:id", co.DeleteSplit)
	}
}

// SplitValidateRequest is a working split edit to validate.
type SplitValidateRequest struct {
	ParentAmount money.Money   `json:"parentAmount"`
	Shares       []split.Share `json:"shares"`
	// AutoBalance, when set, is the index of the share that should
	// absorb the remainder. Its suggested amount is returned alongside
	// the validation result.
	AutoBalance *int `json:"autoBalance,omitempty"`
}

// SplitValidateResponse is the validation state of a split edit.
type SplitValidateResponse struct {
	split.Result
	AutoBalanced *money.Money `json:"autoBalanced,omitempty"` // Suggested amount for the auto-balanced share
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Splits
// @Success		204
// @Router			/v1/splits/validate [options]
func (co Controller) OptionsSplitValidate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Splits
// @Success		204
// @Param			id	path	string	true	"ID of the split share"
// @Router			/v1/splits/{id} [options]
func (co Controller) OptionsSplitDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Validate split
// @Description	Checks a working split edit against its parent amount. An imbalance is reported, not rejected, so the client can surface it while the user is still typing
// @Tags			Splits
// @Produce		json
// @Success		200	{object}	SplitValidateResponse
// @Failure		400	{object}	httperror.Error
// @Param			split	body	SplitValidateRequest	true	"Split edit"
// @Router			/v1/splits/validate [post]
func (co Controller) ValidateSplit(c *gin.Context) {
	var request SplitValidateRequest
	if err := httputil.BindData(c, &request); err != nil {
		return
	}

	response := SplitValidateResponse{
		Result: split.Validate(request.ParentAmount, request.Shares),
	}

	if request.AutoBalance != nil {
		balanced, err := split.AutoBalance(request.ParentAmount, request.Shares, *request.AutoBalance)
		if err != nil {
			c.JSON(http.StatusBadRequest, httperror.New(err))
			return
		}

		response.AutoBalanced = &balanced
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Splits
// @Success		204
// @Param			id	path	string	true	"ID of the transaction"
// @Router			/v1/transactions/{id}/splits [options]
func (co Controller) OptionsTransactionSplits(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create splits
// @Description	Divides a transaction across budget items upstream. The split is validated first, an unbalanced or incomplete split is rejected
// @Tags			Splits
// @Produce		json
// @Success		201	{object}	models.Transaction
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id		path	string					true	"ID of the parent transaction"
// @Param			shares	body	[]upstream.SplitEditable	true	"Shares"
// @Router			/v1/transactions/{id}/splits [post]
func (co Controller) CreateSplits(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	var shares []upstream.SplitEditable
	if err := httputil.BindData(c, &shares); err != nil {
		return
	}

	parent, err := co.Upstream.GetTransaction(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	working := make([]split.Share, 0, len(shares))
	for i := range shares {
		working = append(working, split.Share{
			ItemID: &shares[i].BudgetItemID,
			Amount: shares[i].Amount.String(),
		})
	}

	if result := split.Validate(parent.Amount, working); !result.Submittable {
		c.JSON(http.StatusBadRequest, httperror.NewFromString(
			"the split is not submittable: it must be balanced and have at least two complete shares",
		))
		return
	}

	created, err := co.Upstream.CreateSplits(c.Request.Context(), uri.ID.UUID, shares)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.JSON(http.StatusCreated, created)
}

// @Summary		Delete split
// @Description	Removes one share of a split upstream
// @Tags			Splits
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id	path	string	true	"ID of the split share"
// @Router			/v1/splits/{id} [delete]
func (co Controller) DeleteSplit(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	if err := co.Upstream.DeleteSplit(c.Request.Context(), uri.ID.UUID); err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.Status(http.StatusNoContent)
}
