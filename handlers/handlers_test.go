package handlers_test

import (
	"net/url"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/objectstore"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/handlers"
)

const testCDNDomain = "cdn.example.com"

func newTestAPI() (*handlers.API, *store.Memory) {
	mem := store.NewMemory()
	objects := objectstore.NewLocal(
		url.URL{Scheme: "http", Host: "localhost:3000", Path: "/upload"},
		[]byte("test-secret"),
	)
	api := handlers.New(mem, objects, handlers.Config{
		MenuTable:       "menu",
		InventoryTable:  "inventory",
		OrdersTable:     "orders",
		ImagesCDNDomain: testCDNDomain,
	})
	return api, mem
}

func request(method, body string, pathParameters map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod:     method,
		Body:           body,
		PathParameters: pathParameters,
	}
}

func decodeObject(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func decodeList(t *testing.T, body string) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &l))
	return l
}
