package controllers

import (
	"net/http"

	"github.com/bufferbudget/backend/internal/httperror"
	"github.com/bufferbudget/backend/internal/httputil"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/bufferbudget/backend/internal/upstream"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsCategoryList)
		r.POST("", co.CreateCategory)
	}

	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

// CategoryCreateRequest is a category to create in a month's budget.
type CategoryCreateRequest struct {
	Month types.Month `json:"month" example:"2026-03"`
	upstream.CategoryEditable
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func (co Controller) OptionsCategoryList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Param			id	path	string	true	"ID of the category"
// @Router			/v1/categories/{id} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Create category
// @Description	Creates a category in a month's budget upstream and returns the stored entity
// @Tags			Categories
// @Produce		json
// @Success		201	{object}	models.Category
// @Failure		400	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			category	body	CategoryCreateRequest	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var request CategoryCreateRequest
	if err := httputil.BindData(c, &request); err != nil {
		return
	}

	created, err := co.Upstream.CreateCategory(c.Request.Context(), request.Month, request.CategoryEditable)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidate(request.Month)

	c.JSON(http.StatusCreated, created)
}

// @Summary		Delete category
// @Description	Deletes a category upstream. The transactions of its items move to uncategorized
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id	path	string	true	"ID of the category"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	if err := co.Upstream.DeleteCategory(c.Request.Context(), uri.ID.UUID); err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.Status(http.StatusNoContent)
}
