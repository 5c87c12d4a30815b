package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/envelope"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/patch"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
)

// inventoryMutable is the set of inventory fields a patch may touch.
// Patch keys outside this set are dropped before the mutation is compiled.
var inventoryMutable = []string{"name", "category", "quantity", "lowAlert"}

// CreateInventory creates an inventory item. The client must supply id,
// name and quantity; category and lowAlert get defaults when absent.
func (a *API) CreateInventory(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	body, err := record.Parse(req.Body)
	if err != nil {
		return envelope.Error(http.StatusBadRequest, err.Error()), nil
	}
	if missing := record.MissingFields(body, "id", "name", "quantity"); len(missing) > 0 {
		return envelope.Error(http.StatusBadRequest, record.RequiredError(missing)), nil
	}

	if _, ok := body["category"]; !ok {
		body["category"] = "General"
	}
	if _, ok := body["lowAlert"]; !ok {
		body["lowAlert"] = 10
	}
	item := record.Normalize(body, time.Now())

	if err := a.store.Put(ctx, a.config.InventoryTable, item); err != nil {
		logger.FromContext(ctx).WithError(err).Error("create inventory item")
		return envelope.Error(http.StatusInternalServerError, "Failed to create inventory item"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"itemId":    item.ID(),
		"timestamp": item[record.FieldCreatedAt],
	}).Info("Inventory item created successfully")

	return envelope.Created(item), nil
}

// GetInventory returns all inventory items.
func (a *API) GetInventory(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	items, err := a.store.Scan(ctx, a.config.InventoryTable, store.ScanOptions{})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("get inventory")
		return envelope.Error(http.StatusInternalServerError, "Failed to retrieve inventory"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"itemCount": len(items),
	}).Debug("Inventory retrieved successfully")

	return envelope.OK(items), nil
}

// UpdateInventory applies a partial update to an inventory item and returns
// the full post-update record. Updating an id that does not exist is
// rejected with 404.
func (a *API) UpdateInventory(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	itemID := req.PathParameters["id"]
	if itemID == "" {
		return envelope.Error(http.StatusBadRequest, "Missing item ID"), nil
	}
	body, err := record.Parse(req.Body)
	if err != nil {
		return envelope.Error(http.StatusBadRequest, err.Error()), nil
	}

	mutation := patch.Compile(itemID, filterPatch(body, inventoryMutable), time.Now())
	item, err := a.store.Update(ctx, a.config.InventoryTable, mutation)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return envelope.Error(http.StatusNotFound, "no such inventory item"), nil
		}
		logger.FromContext(ctx).WithError(err).Error("update inventory item")
		return envelope.Error(http.StatusInternalServerError, "Failed to update inventory"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"itemId":      itemID,
		"newQuantity": item["quantity"],
		"timestamp":   item[record.FieldUpdatedAt],
	}).Info("Inventory updated successfully")

	return envelope.OK(item), nil
}

// DeleteInventory deletes an inventory item. Idempotent; deleting an absent
// id still reports success.
func (a *API) DeleteInventory(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	itemID := req.PathParameters["id"]
	if itemID == "" {
		return envelope.Error(http.StatusBadRequest, "Missing item ID"), nil
	}

	if err := a.store.Delete(ctx, a.config.InventoryTable, itemID); err != nil {
		logger.FromContext(ctx).WithError(err).Error("delete inventory item")
		return envelope.Error(http.StatusInternalServerError, "Failed to delete inventory item"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"itemId":    itemID,
		"timestamp": record.Timestamp(time.Now()),
	}).Info("Inventory item deleted successfully")

	return envelope.OK(map[string]interface{}{
		"message": "Inventory item deleted successfully",
		"id":      itemID,
	}), nil
}
