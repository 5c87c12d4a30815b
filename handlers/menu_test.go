package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
)

func TestCreateMenuItemFreeForm(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	// the menu requires nothing and accepts arbitrary fields
	resp, err := api.CreateMenuItem(ctx, request(http.MethodPost,
		`{"name":"Glazed Donut","price":1.29,"tags":["sweet"],"seasonal":true}`, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeObject(t, resp.Body)
	assert.Equal(t, "Item created successfully", body["message"])
	item, ok := body["item"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, item["id"])
	assert.Equal(t, "Glazed Donut", item["name"])
	assert.Equal(t, true, item["seasonal"])
	assert.NotEmpty(t, item["createdAt"])
}

func TestCreateMenuItemEmptyBody(t *testing.T) {
	api, _ := newTestAPI()
	resp, err := api.CreateMenuItem(context.Background(), request(http.MethodPost, "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateMenuItemOverwritesExistingID(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	_, err := api.CreateMenuItem(ctx, request(http.MethodPost, `{"id":"donut-1","name":"Old"}`, nil))
	require.NoError(t, err)
	_, err = api.CreateMenuItem(ctx, request(http.MethodPost, `{"id":"donut-1","name":"New"}`, nil))
	require.NoError(t, err)

	resp, err := api.GetMenu(ctx, request(http.MethodGet, "", nil))
	require.NoError(t, err)
	items := decodeList(t, resp.Body)
	require.Len(t, items, 1)
	assert.Equal(t, "New", items[0]["name"])
}

func TestGetMenuEmpty(t *testing.T) {
	api, _ := newTestAPI()
	resp, err := api.GetMenu(context.Background(), request(http.MethodGet, "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, resp.Body)
}

func TestUpdateMenuItemAnyField(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	_, err := api.CreateMenuItem(ctx, request(http.MethodPost, `{"id":"donut-1","name":"Donut"}`, nil))
	require.NoError(t, err)

	resp, err := api.UpdateMenuItem(ctx, request(http.MethodPut,
		`{"price":1.49,"glutenFree":false}`, map[string]string{"id": "donut-1"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	item := decodeObject(t, resp.Body)
	assert.Equal(t, 1.49, item["price"])
	assert.Equal(t, false, item["glutenFree"])
	assert.Equal(t, "Donut", item["name"])
}

func TestDeleteMenuItem(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	_, err := api.CreateMenuItem(ctx, request(http.MethodPost, `{"id":"donut-1"}`, nil))
	require.NoError(t, err)

	resp, err := api.DeleteMenuItem(ctx, request(http.MethodDelete, "",
		map[string]string{"id": "donut-1"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = api.GetMenu(ctx, request(http.MethodGet, "", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, resp.Body)
}

func TestPreflightShortCircuit(t *testing.T) {
	ctx := context.Background()
	api, mem := newTestAPI()

	ops := []func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error){
		api.GetMenu, api.CreateMenuItem, api.UpdateMenuItem, api.DeleteMenuItem,
		api.GetInventory, api.CreateInventory, api.UpdateInventory, api.DeleteInventory,
		api.GetOrders, api.CreateOrder, api.UpdateOrder, api.DeleteOrder,
		api.GetUploadURL,
	}
	for _, op := range ops {
		resp, err := op(ctx, request(http.MethodOptions, `{"ignored":true}`, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Body)
		assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
		assert.Equal(t, "86400", resp.Headers["Access-Control-Max-Age"])
	}

	// preflight never touches the store
	items, err := mem.Scan(ctx, "menu", store.ScanOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
