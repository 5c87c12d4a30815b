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

// GetMenu returns all menu items.
func (a *API) GetMenu(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	items, err := a.store.Scan(ctx, a.config.MenuTable, store.ScanOptions{})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("get menu")
		return envelope.Error(http.StatusInternalServerError, "Failed to retrieve menu"), nil
	}
	return envelope.OK(items), nil
}

// CreateMenuItem creates a menu item. The menu is free-form: no fields are
// required, arbitrary fields are accepted, and a client-supplied id is kept
// (creating with an existing id overwrites that record).
func (a *API) CreateMenuItem(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	body, err := record.Parse(req.Body)
	if err != nil {
		return envelope.Error(http.StatusBadRequest, err.Error()), nil
	}
	item := record.Normalize(body, time.Now())

	if err := a.store.Put(ctx, a.config.MenuTable, item); err != nil {
		logger.FromContext(ctx).WithError(err).Error("create menu item")
		return envelope.ErrorWithDetails(http.StatusInternalServerError, "Failed to create item", err), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"itemId":    item.ID(),
		"name":      item["name"],
		"timestamp": item[record.FieldCreatedAt],
	}).Info("Menu item created successfully")

	return envelope.Created(map[string]interface{}{
		"message": "Item created successfully",
		"item":    item,
	}), nil
}

// UpdateMenuItem applies a partial update to a menu item. Any non-reserved
// field may be patched.
func (a *API) UpdateMenuItem(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
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

	mutation := patch.Compile(itemID, body, time.Now())
	item, err := a.store.Update(ctx, a.config.MenuTable, mutation)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return envelope.Error(http.StatusNotFound, "no such menu item"), nil
		}
		logger.FromContext(ctx).WithError(err).Error("update menu item")
		return envelope.ErrorWithDetails(http.StatusInternalServerError, "Failed to update item", err), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"itemId":    itemID,
		"timestamp": item[record.FieldUpdatedAt],
	}).Info("Menu item updated successfully")

	return envelope.OK(item), nil
}

// DeleteMenuItem deletes a menu item. Idempotent; deleting an absent id
// still reports success.
func (a *API) DeleteMenuItem(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	itemID := req.PathParameters["id"]
	if itemID == "" {
		return envelope.Error(http.StatusBadRequest, "Missing item ID"), nil
	}

	if err := a.store.Delete(ctx, a.config.MenuTable, itemID); err != nil {
		logger.FromContext(ctx).WithError(err).Error("delete menu item")
		return envelope.Error(http.StatusInternalServerError, "Failed to delete menu item"), nil
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"itemId":    itemID,
		"timestamp": record.Timestamp(time.Now()),
	}).Info("Menu item deleted successfully")

	return envelope.OK(map[string]interface{}{
		"message": "Menu item deleted successfully",
		"id":      itemID,
	}), nil
}
