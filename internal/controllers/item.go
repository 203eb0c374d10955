package controllers

import (
	"net/http"

	"github.com/bufferbudget/backend/internal/httperror"
	"github.com/bufferbudget/backend/internal/httputil"
	"github.com/bufferbudget/backend/internal/upstream"
	"github.com/gin-gonic/gin"
)

// RegisterItemRoutes registers the routes for budget items with the
// RouterGroup that is passed.
func (co Controller) RegisterItemRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsItemList)
		r.POST("", co.CreateItem)
	}

	{
		r.OPTIONS("/:id", co.OptionsItemDetail)
		r.PATCH("/:id", co.UpdateItem)
		r.DELETE("/:id", co.DeleteItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Router			/v1/items [options]
func (co Controller) OptionsItemList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Items
// @Success		204
// @Param			id	path	string	true	"ID of the item"
// @Router			/v1/items/{id} [options]
func (co Controller) OptionsItemDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// @Summary		Create item
// @Description	Creates a budget item upstream and returns the stored entity
// @Tags			Items
// @Produce		json
// @Success		201	{object}	models.Item
// @Failure		400	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			item	body	upstream.ItemEditable	true	"Item"
// @Router			/v1/items [post]
func (co Controller) CreateItem(c *gin.Context) {
	var editable upstream.ItemEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	created, err := co.Upstream.CreateItem(c.Request.Context(), editable)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.JSON(http.StatusCreated, created)
}

// @Summary		Update item
// @Description	Updates a budget item upstream, e.g. its planned amount, and returns the stored entity
// @Tags			Items
// @Produce		json
// @Success		200	{object}	models.Item
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id		path	string					true	"ID of the item"
// @Param			item	body	upstream.ItemEditable	true	"Item"
// @Router			/v1/items/{id} [patch]
func (co Controller) UpdateItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	var editable upstream.ItemEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	updated, err := co.Upstream.UpdateItem(c.Request.Context(), uri.ID.UUID, editable)
	if err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.JSON(http.StatusOK, updated)
}

// @Summary		Delete item
// @Description	Deletes a budget item upstream. Its transactions move to uncategorized
// @Tags			Items
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		502	{object}	httperror.Error
// @Param			id	path	string	true	"ID of the item"
// @Router			/v1/items/{id} [delete]
func (co Controller) DeleteItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	if err := co.Upstream.DeleteItem(c.Request.Context(), uri.ID.UUID); err != nil {
		c.JSON(status(err), httperror.New(err))
		return
	}

	co.invalidateAll()

	c.Status(http.StatusNoContent)
}
