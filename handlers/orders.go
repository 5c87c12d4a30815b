package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/envelope"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/patch"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
)

// ordersScanLimit caps the order list; this is a fixed cap, not a
// pagination protocol.
const ordersScanLimit = 100

// orderMutable is the set of order fields a patch may touch.
var orderMutable = []string{"items", "total", "status"}

// CreateOrder creates an order. The id is always server-assigned, and every
// new order starts in status "pending" regardless of client input.
func (a *API) CreateOrder(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	body, err := record.Parse(req.Body)
	if err != nil {
		return envelope.Error(http.StatusBadRequest, err.Error()), nil
	}
	body[record.FieldID] = uuid.NewString()
	order := record.Normalize(body, time.Now())
	order["status"] = "pending"

	if err := a.store.Put(ctx, a.config.OrdersTable, order); err != nil {
		logger.FromContext(ctx).WithError(err).Error("create order")
		return envelope.Error(http.StatusInternalServerError, "Failed to create order"), nil
	}

	itemCount := 0
	if items, ok := order["items"].([]interface{}); ok {
		itemCount = len(items)
	}
	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"orderId":   order.ID(),
		"total":     order["total"],
		"itemCount": itemCount,
		"timestamp": order[record.FieldCreatedAt],
	}).Info("Order created successfully")

	return envelope.Created(map[string]interface{}{
		"message": "Order created successfully",
		"orderId": order.ID(),
	}), nil
}

// GetOrders returns the most recent orders, newest first, capped at a fixed
// count.
func (a *API) GetOrders(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	orders, err := a.store.Scan(ctx, a.config.OrdersTable, store.ScanOptions{
		Limit:       ordersScanLimit,
		NewestFirst: true,
	})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("get orders")
		return envelope.Error(http.StatusInternalServerError, "Failed to retrieve orders"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"orderCount": len(orders),
	}).Debug("Orders retrieved successfully")

	return envelope.OK(orders), nil
}

// UpdateOrder applies a partial update to an order, typically a status
// change. Updating an id that does not exist is rejected with 404.
func (a *API) UpdateOrder(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	orderID := req.PathParameters["id"]
	if orderID == "" {
		return envelope.Error(http.StatusBadRequest, "Missing order ID"), nil
	}
	body, err := record.Parse(req.Body)
	if err != nil {
		return envelope.Error(http.StatusBadRequest, err.Error()), nil
	}

	mutation := patch.Compile(orderID, filterPatch(body, orderMutable), time.Now())
	order, err := a.store.Update(ctx, a.config.OrdersTable, mutation)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return envelope.Error(http.StatusNotFound, "no such order"), nil
		}
		logger.FromContext(ctx).WithError(err).Error("update order")
		return envelope.Error(http.StatusInternalServerError, "Failed to update order"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"orderId":   orderID,
		"status":    order["status"],
		"timestamp": order[record.FieldUpdatedAt],
	}).Info("Order updated successfully")

	return envelope.OK(order), nil
}

// DeleteOrder deletes an order. Idempotent; deleting an absent id still
// reports success.
func (a *API) DeleteOrder(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	orderID := req.PathParameters["id"]
	if orderID == "" {
		return envelope.Error(http.StatusBadRequest, "Missing order ID"), nil
	}

	if err := a.store.Delete(ctx, a.config.OrdersTable, orderID); err != nil {
		logger.FromContext(ctx).WithError(err).Error("delete order")
		return envelope.Error(http.StatusInternalServerError, "Failed to delete order"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"orderId":   orderID,
		"timestamp": record.Timestamp(time.Now()),
	}).Info("Order deleted successfully")

	return envelope.OK(map[string]interface{}{
		"message": "Order deleted successfully",
		"id":      orderID,
	}), nil
}
