package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-backend/models"
	"pos-backend/services"
)

// ItemController handles HTTP requests for inventory management.
type ItemController struct {
	inventoryService services.InventoryService
}

// NewItemController creates a new ItemController.
func NewItemController(inventoryService services.InventoryService) *ItemController {
	return &ItemController{inventoryService: inventoryService}
}

// GetItems handles GET /items.
func (ic *ItemController) GetItems(ctx *gin.Context) {
	page, pageSize := parsePaginationParams(ctx)

	result, svcErr := ic.inventoryService.ListItems(ctx.Request.Context(), page, pageSize)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "success", result)
}

// GetItem handles GET /items/:id.
func (ic *ItemController) GetItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		respondError(ctx, http.StatusBadRequest, "Invalid item id")
		return
	}

	item, svcErr := ic.inventoryService.GetItem(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "success", item)
}

// PostItem handles POST /items. The item fields arrive as multipart form
// fields with an optional image file.
func (ic *ItemController) PostItem(ctx *gin.Context) {
	var req models.ItemRequest
	if err := ctx.ShouldBind(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid item data")
		return
	}

	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	item, svcErr := ic.inventoryService.CreateItem(ctx.Request.Context(), &req, image)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusCreated, "Item created successfully", item)
}

// PutItem handles PUT /items/:id.
func (ic *ItemController) PutItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		respondError(ctx, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req models.ItemRequest
	if err := ctx.ShouldBind(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid item data")
		return
	}
	if req.ID != 0 && req.ID != id {
		respondError(ctx, http.StatusBadRequest, "Item id mismatch")
		return
	}

	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	item, svcErr := ic.inventoryService.UpdateItem(ctx.Request.Context(), id, &req, image)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "Item updated successfully", item)
}

// DeleteItem handles DELETE /items/:id.
func (ic *ItemController) DeleteItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		respondError(ctx, http.StatusBadRequest, "Invalid item id")
		return
	}

	if svcErr := ic.inventoryService.DeleteItem(ctx.Request.Context(), id); svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "Item deleted successfully", nil)
}

// GetStockReport handles GET /items/stock.
func (ic *ItemController) GetStockReport(ctx *gin.Context) {
	page, pageSize := parsePaginationParams(ctx)

	result, svcErr := ic.inventoryService.StockReport(ctx.Request.Context(), page, pageSize)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "success", result)
}
