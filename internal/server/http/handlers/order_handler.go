package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/server/http/dto"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_date"})
		return
	}

	items := make([]model.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.PlaceOrderItem{VariantID: item.VariantID, Quantity: item.Quantity})
	}

	purchase, tx, err := h.facade.PlaceOrder(c.Request.Context(), actor, model.PlaceOrderRequest{
		EventDate:   eventDate,
		DeliveryLat: req.DeliveryLat,
		DeliveryLon: req.DeliveryLon,
		DeliveryFee: req.DeliveryFee,
		Items:       items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{
		Order:   toOrderResponse(purchase),
		Payment: toTransactionResponse(tx),
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	actor := CurrentActor(c)
	orders, err := h.facade.Orders(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor := CurrentActor(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Transactions handles GET /api/orders/:id/transactions.
func (h *OrderHandler) Transactions(c *gin.Context) {
	actor := CurrentActor(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	transactions, err := h.facade.OrderTransactions(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		response = append(response, toTransactionResponse(&transactions[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	actor := CurrentActor(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Confirm handles POST /api/orders/:id/confirm.
func (h *OrderHandler) Confirm(c *gin.Context) {
	actor := CurrentActor(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.ConfirmOrder(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// ChangeStatus handles POST /api/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actor := CurrentActor(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), actor, id, model.PurchaseStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Advance handles POST /api/orders/:id/advance.
func (h *OrderHandler) Advance(c *gin.Context) {
	actor := CurrentActor(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.UpgradeOrderStatus(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// NextStatuses handles GET /api/orders/:id/next-statuses.
func (h *OrderHandler) NextStatuses(c *gin.Context) {
	actor := CurrentActor(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	next := h.facade.NextStatuses(order.Status)
	names := make([]string, 0, len(next))
	for _, s := range next {
		names = append(names, string(s))
	}
	c.JSON(http.StatusOK, dto.NextStatusesResponse{Current: string(order.Status), Next: names})
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func toOrderResponse(p *model.Purchase) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, dto.OrderItemResponse{
			VariantID: item.VariantID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dto.OrderResponse{
		ID:            p.ID,
		InvoiceNumber: p.InvoiceNumber,
		EventDate:     p.EventDate.Format(dateLayout),
		DeliveryFee:   p.DeliveryFee,
		Total:         p.Total(),
		Status:        string(p.Status),
		Items:         items,
		CreatedAt:     p.CreatedAt,
	}
}

func toTransactionResponse(t *model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:         t.ID,
		OrderRef:   t.OrderRef,
		PaymentURL: t.PaymentURL,
		Amount:     t.Amount,
		Status:     string(t.Status),
		Kind:       string(t.Kind),
		CreatedAt:  t.CreatedAt,
		ExpiresAt:  t.ExpiresAt,
	}
}
