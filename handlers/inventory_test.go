package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
)

func TestCreateInventoryValidation(t *testing.T) {
	ctx := context.Background()
	api, mem := newTestAPI()

	resp, err := api.CreateInventory(ctx, request(http.MethodPost, `{}`, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeObject(t, resp.Body)
	assert.Equal(t, "Missing required fields: id, name, quantity", body["error"])

	// no store write happened
	items, err := mem.Scan(ctx, "inventory", store.ScanOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateInventoryDefaults(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	resp, err := api.CreateInventory(ctx, request(http.MethodPost,
		`{"id":"beans-1","name":"Coffee Beans","quantity":5}`, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	item := decodeObject(t, resp.Body)
	assert.Equal(t, "beans-1", item["id"])
	assert.Equal(t, "General", item["category"])
	assert.Equal(t, float64(10), item["lowAlert"])
	assert.Equal(t, item["createdAt"], item["updatedAt"])
	assert.NotEmpty(t, item["createdAt"])
}

func TestInventoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	resp, err := api.CreateInventory(ctx, request(http.MethodPost,
		`{"id":"beans-1","name":"Coffee","quantity":5}`, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeObject(t, resp.Body)

	// timestamps have millisecond precision
	time.Sleep(2 * time.Millisecond)

	resp, err = api.UpdateInventory(ctx, request(http.MethodPut,
		`{"quantity":3}`, map[string]string{"id": "beans-1"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decodeObject(t, resp.Body)
	assert.Equal(t, float64(3), updated["quantity"])
	assert.Equal(t, "Coffee", updated["name"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])
	assert.Greater(t, updated["updatedAt"], created["updatedAt"])

	resp, err = api.GetInventory(ctx, request(http.MethodGet, "", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeList(t, resp.Body)
	require.Len(t, items, 1)
	assert.Equal(t, float64(3), items[0]["quantity"])
}

func TestUpdateInventoryDropsUnknownAndReservedFields(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	_, err := api.CreateInventory(ctx, request(http.MethodPost,
		`{"id":"beans-1","name":"Coffee","quantity":5}`, nil))
	require.NoError(t, err)

	resp, err := api.UpdateInventory(ctx, request(http.MethodPut,
		`{"quantity":1,"id":"evil","createdAt":"1970-01-01T00:00:00.000Z","injected":true}`,
		map[string]string{"id": "beans-1"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	item := decodeObject(t, resp.Body)
	assert.Equal(t, "beans-1", item["id"])
	assert.NotEqual(t, "1970-01-01T00:00:00.000Z", item["createdAt"])
	assert.NotContains(t, item, "injected")
	assert.Equal(t, float64(1), item["quantity"])
}

func TestUpdateInventoryMissingKey(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	resp, err := api.UpdateInventory(ctx, request(http.MethodPut, `{"quantity":3}`, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing item ID", decodeObject(t, resp.Body)["error"])
}

func TestUpdateInventoryMissingRecord(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	resp, err := api.UpdateInventory(ctx, request(http.MethodPut,
		`{"quantity":3}`, map[string]string{"id": "ghost"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteInventoryIdempotent(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	_, err := api.CreateInventory(ctx, request(http.MethodPost,
		`{"id":"beans-1","name":"Coffee","quantity":5}`, nil))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := api.DeleteInventory(ctx, request(http.MethodDelete, "",
			map[string]string{"id": "beans-1"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeObject(t, resp.Body)
		assert.Equal(t, "beans-1", body["id"])
	}
}

func TestDeleteInventoryMissingKey(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	resp, err := api.DeleteInventory(ctx, request(http.MethodDelete, "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
