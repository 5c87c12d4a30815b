// The pos-lambda binary serves the POS backend behind AWS API Gateway. One
// function handles all routes; the event's resource template and method
// select the handler.
package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/envelope"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/objectstore"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/handlers"
)

// Service holds the configuration for this service
type Service struct {
	MenuTable       string `env:"MENU_TABLE,required" description:"the DynamoDB table for menu items"`
	InventoryTable  string `env:"INVENTORY_TABLE,required" description:"the DynamoDB table for inventory items"`
	OrdersTable     string `env:"ORDERS_TABLE,required" description:"the DynamoDB table for orders"`
	ImagesBucket    string `env:"IMAGES_BUCKET,default=dunkin-pos-images-dev" description:"the S3 bucket for menu images"`
	ImagesCDNDomain string `env:"IMAGES_CDN_DOMAIN,default=d1234567890.cloudfront.net" description:"the CDN domain serving menu images"`
	AWSRegion       string `env:"AWS_REGION,default=us-east-1" description:"the AWS region"`
}

type dispatcher struct {
	api *handlers.API
}

type operation func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// route selects the handler for the event's resource template and method.
// The preflight verb never reaches a handler.
func (d dispatcher) route(req events.APIGatewayProxyRequest) operation {
	type routeKey struct{ resource, method string }
	routes := map[routeKey]operation{
		{"/menu", http.MethodGet}:               d.api.GetMenu,
		{"/menu", http.MethodPost}:              d.api.CreateMenuItem,
		{"/menu/{id}", http.MethodPut}:          d.api.UpdateMenuItem,
		{"/menu/{id}", http.MethodDelete}:       d.api.DeleteMenuItem,
		{"/inventory", http.MethodGet}:          d.api.GetInventory,
		{"/inventory", http.MethodPost}:         d.api.CreateInventory,
		{"/inventory/{id}", http.MethodPut}:     d.api.UpdateInventory,
		{"/inventory/{id}", http.MethodDelete}:  d.api.DeleteInventory,
		{"/orders", http.MethodGet}:             d.api.GetOrders,
		{"/orders", http.MethodPost}:            d.api.CreateOrder,
		{"/orders/{id}", http.MethodPut}:        d.api.UpdateOrder,
		{"/orders/{id}", http.MethodDelete}:     d.api.DeleteOrder,
		{"/images/upload-url", http.MethodPost}: d.api.GetUploadURL,
	}
	return routes[routeKey{req.Resource, req.HTTPMethod}]
}

func (d dispatcher) handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx, rlog := logger.ContextWithLogger(ctx)

	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}
	op := d.route(req)
	if op == nil {
		rlog.Warnf("no route for %s %s", req.HTTPMethod, req.Resource)
		return envelope.Error(http.StatusNotFound, "no such route"), nil
	}
	return op(ctx, req)
}

func main() {
	logger.InitLogger(logrus.InfoLevel)

	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		panic(err)
	}

	db, err := store.NewDynamoDB(store.DynamoDBConfiguration{AWSRegion: service.AWSRegion})
	if err != nil {
		panic(err)
	}
	objects, err := objectstore.NewS3(objectstore.S3Configuration{
		AWSBucketName: service.ImagesBucket,
		AWSRegion:     service.AWSRegion,
	})
	if err != nil {
		panic(err)
	}

	api := handlers.New(db, objects, handlers.Config{
		MenuTable:       service.MenuTable,
		InventoryTable:  service.InventoryTable,
		OrdersTable:     service.OrdersTable,
		ImagesCDNDomain: service.ImagesCDNDomain,
	})

	lambda.Start(dispatcher{api: api}.handle)
}
