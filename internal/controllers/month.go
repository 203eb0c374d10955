package controllers

import (
	"net/http"
	"time"

	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/httperror"
	"github.com/bufferbudget/backend/internal/httputil"
	"github.com/bufferbudget/backend/internal/insights"
	"github.com/bufferbudget/backend/internal/money"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", co.OptionsMonthDetail)
	r.GET("/:month", co.GetMonth)

	r.OPTIONS("/:month/insights", co.OptionsMonthInsights)
	r.GET("/:month/insights", co.GetMonthInsights)

	r.OPTIONS("/:month/buffer", co.OptionsMonthBuffer)
	r.PATCH("/:month/buffer", co.UpdateMonthBuffer)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [options]
func (co Controller) OptionsMonthDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Aggregated budget month
// @Description	Returns the budget for a month with all derived numbers computed: item actuals, category sums, income and expense totals, categories in display order
// @Tags			Months
// @Produce		json
// @Success		200		{object}	budget.Budget
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		502		{object}	httperror.Error
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [get]
func (co Controller) GetMonth(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	snapshot, err := co.budgetFor(c.Request.Context(), month)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, budget.Aggregate(snapshot))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/insights [options]
func (co Controller) OptionsMonthInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Month insights
// @Description	Returns the derived analytics for a month: the daily spending series, pace-vs-plan ranking, buffer projection, savings rate and trends against the preceding month
// @Tags			Months
// @Produce		json
// @Success		200		{object}	insights.Result
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		502		{object}	httperror.Error
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/insights [get]
func (co Controller) GetMonthInsights(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	snapshot, err := co.budgetFor(c.Request.Context(), month)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	current := budget.Aggregate(snapshot)

	// A report with the prior month missing still renders what it can,
	// it just carries no trends
	var prior *budget.Budget
	priorSnapshot, err := co.budgetFor(c.Request.Context(), month.AddDate(0, -1))
	if err != nil {
		log.Info().Str("month", month.String()).Err(err).Msg("no prior month for trends")
	} else {
		aggregated := budget.Aggregate(priorSnapshot)
		prior = &aggregated
	}

	c.JSON(http.StatusOK, insights.Build(current, prior, time.Now().UTC()))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/buffer [options]
func (co Controller) OptionsMonthBuffer(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// BufferEditable is the request body for updating a month's buffer.
type BufferEditable struct {
	Buffer money.Money `json:"buffer"`
}

// @Summary		Update buffer
// @Description	Sets the manually-entered starting cushion of a month's budget
// @Tags			Months
// @Produce		json
// @Success		200		{object}	models.Budget
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		502		{object}	httperror.Error
// @Param			month	path		string			true	"The month in YYYY-MM format"
// @Param			buffer	body		BufferEditable	true	"Buffer"
// @Router			/v1/months/{month}/buffer [patch]
func (co Controller) UpdateMonthBuffer(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	var editable BufferEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	updated, err := co.Upstream.UpdateBudgetBuffer(c.Request.Context(), month, editable.Buffer)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidate(month)

	c.JSON(http.StatusOK, updated)
}
