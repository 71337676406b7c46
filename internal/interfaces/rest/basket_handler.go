package rest

import (
	"net/http"

	"github.com/christoffels/menu/internal/application/services"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/gin-gonic/gin"
)

type BasketHandler struct {
	svcMgr *services.ServiceManager
}

func NewBasketHandler(svcMgr *services.ServiceManager) *BasketHandler {
	return &BasketHandler{svcMgr: svcMgr}
}

// AddItemRequest is the body of POST /api/basket/items; quantity defaults to 1
type AddItemRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity *int   `json:"quantity"`
}

// UpdateQuantityRequest is the body of PATCH /api/basket/items/:id
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetBasket handles GET /api/basket
func (h *BasketHandler) GetBasket(c *gin.Context) {
	HandleGetEnvelope(c, constants.ResponseBasket, func() (interface{}, error) {
		return h.svcMgr.Basket.Get(c.Request.Context(), sessionID(c))
	})
}

// AddItem handles POST /api/basket/items
func (h *BasketHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if !BindJSON(c, &req) {
		return
	}
	quantity := constants.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	HandleMutationEnvelope(c, http.StatusOK, constants.ResponseBasket, "Item added to basket", func() (interface{}, error) {
		return h.svcMgr.Basket.Add(c.Request.Context(), sessionID(c), req.ItemID, quantity)
	})
}

// UpdateQuantity handles PATCH /api/basket/items/:id
func (h *BasketHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if !BindJSON(c, &req) {
		return
	}
	HandleMutationEnvelope(c, http.StatusOK, constants.ResponseBasket, "Basket updated", func() (interface{}, error) {
		return h.svcMgr.Basket.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("id"), *req.Quantity)
	})
}

// RemoveItem handles DELETE /api/basket/items/:id
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	HandleMutationEnvelope(c, http.StatusOK, constants.ResponseBasket, "Item removed from basket", func() (interface{}, error) {
		return h.svcMgr.Basket.Remove(c.Request.Context(), sessionID(c), c.Param("id"))
	})
}

// ClearBasket handles DELETE /api/basket
func (h *BasketHandler) ClearBasket(c *gin.Context) {
	HandleDeleteEnvelope(c, "Basket cleared", func() error {
		return h.svcMgr.Basket.Clear(c.Request.Context(), sessionID(c))
	})
}
