// The pos-server binary runs the POS backend as a plain HTTP server for
// local development. It serves the same handlers as the Lambda deployment,
// on top of the in-process memory store and the local URL signer.
package main

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/aws/aws-lambda-go/events"
	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/objectstore"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/handlers"
)

// Service holds the configuration for this service
type Service struct {
	Addr            string `env:"ADDR,default=:3000" description:"the listen address"`
	ImagesCDNDomain string `env:"IMAGES_CDN_DOMAIN,default=localhost:3000" description:"the domain serving uploaded images"`
}

type operation func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// adapt translates a mux request into the API Gateway request shape the
// handlers consume, and writes the proxy response back.
func adapt(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp, err := op(r.Context(), events.APIGatewayProxyRequest{
			HTTPMethod:     r.Method,
			Path:           r.URL.Path,
			PathParameters: mux.Vars(r),
			Body:           string(body),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for name, value := range resp.Headers {
			w.Header().Set(name, value)
		}
		w.WriteHeader(resp.StatusCode)
		w.Write([]byte(resp.Body))
	}
}

func main() {
	logger.InitLogger(logrus.DebugLevel)

	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		panic(err)
	}

	api := handlers.New(
		store.NewMemory(),
		objectstore.NewLocal(url.URL{Scheme: "http", Host: service.ImagesCDNDomain, Path: "/upload"}, nil),
		handlers.Config{
			MenuTable:       "menu",
			InventoryTable:  "inventory",
			OrdersTable:     "orders",
			ImagesCDNDomain: service.ImagesCDNDomain,
		},
	)

	router := mux.NewRouter()
	logger.AddRequestID(router)

	methods := func(r *mux.Route, op operation, ms ...string) {
		r.HandlerFunc(adapt(op)).Methods(append(ms, http.MethodOptions)...)
	}
	methods(router.Path("/menu"), api.GetMenu, http.MethodGet)
	methods(router.Path("/menu"), api.CreateMenuItem, http.MethodPost)
	methods(router.Path("/menu/{id}"), api.UpdateMenuItem, http.MethodPut)
	methods(router.Path("/menu/{id}"), api.DeleteMenuItem, http.MethodDelete)
	methods(router.Path("/inventory"), api.GetInventory, http.MethodGet)
	methods(router.Path("/inventory"), api.CreateInventory, http.MethodPost)
	methods(router.Path("/inventory/{id}"), api.UpdateInventory, http.MethodPut)
	methods(router.Path("/inventory/{id}"), api.DeleteInventory, http.MethodDelete)
	methods(router.Path("/orders"), api.GetOrders, http.MethodGet)
	methods(router.Path("/orders"), api.CreateOrder, http.MethodPost)
	methods(router.Path("/orders/{id}"), api.UpdateOrder, http.MethodPut)
	methods(router.Path("/orders/{id}"), api.DeleteOrder, http.MethodDelete)
	methods(router.Path("/images/upload-url"), api.GetUploadURL, http.MethodPost)

	logger.Default().Infoln("listen on", service.Addr)
	if err := http.ListenAndServe(service.Addr, ghandlers.LoggingHandler(os.Stdout, router)); err != nil {
		logger.Default().WithError(err).Fatal("server stopped")
	}
}
