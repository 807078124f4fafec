package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andinaft/bakeryd/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.AddCartItem(c.Request.Context(), actor, req.VariantID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CartItemResponse{ID: item.ID, VariantID: item.VariantID, Quantity: item.Quantity})
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	actor := CurrentActor(c)

	items, err := h.facade.CartItems(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.CartItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, dto.CartItemResponse{ID: item.ID, VariantID: item.VariantID, Quantity: item.Quantity})
	}
	c.JSON(http.StatusOK, response)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	actor := CurrentActor(c)
	if err := h.facade.ClearCart(c.Request.Context(), actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
