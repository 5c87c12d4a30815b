// Package envelope wraps handler outcomes into API Gateway proxy responses
// with a uniform CORS and error contract. Every response carries the CORS
// allow-origin header; OPTIONS preflight requests are answered with the full
// CORS header set before any handler logic runs.
package envelope

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
)

const (
	allowOrigin          = "*"
	allowHeaders         = "Content-Type,Authorization"
	allowMethods         = "GET,POST,PUT,DELETE,OPTIONS"
	preflightMaxAge      = "86400"
	preflightAllowHeader = "Content-Type,Authorization,X-Amz-Date,X-Api-Key,X-Amz-Security-Token"
)

// IsPreflight reports whether req is a CORS preflight request.
func IsPreflight(req events.APIGatewayProxyRequest) bool {
	return req.HTTPMethod == http.MethodOptions
}

// Preflight returns the fixed preflight response: 200, empty body, full CORS
// header set. It must be returned without touching the store or any handler
// logic.
func Preflight() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  allowOrigin,
			"Access-Control-Allow-Headers": preflightAllowHeader,
			"Access-Control-Allow-Methods": allowMethods,
			"Access-Control-Max-Age":       preflightMaxAge,
		},
		Body: "",
	}
}

// OK wraps body into a 200 response.
func OK(body interface{}) events.APIGatewayProxyResponse {
	return respond(http.StatusOK, body)
}

// Created wraps body into a 201 response.
func Created(body interface{}) events.APIGatewayProxyResponse {
	return respond(http.StatusCreated, body)
}

// Error wraps message into an error response with the given status.
func Error(status int, message string) events.APIGatewayProxyResponse {
	return respond(status, map[string]interface{}{"error": message})
}

// ErrorWithDetails wraps message into an error response carrying the
// underlying diagnostic text.
func ErrorWithDetails(status int, message string, err error) events.APIGatewayProxyResponse {
	body := map[string]interface{}{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	return respond(status, body)
}

func respond(status int, body interface{}) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		logger.Default().WithError(err).Error("could not marshal response body")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    jsonHeaders(),
			Body:       `{"error":"could not marshal response"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders(),
		Body:       string(data),
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  allowOrigin,
		"Access-Control-Allow-Headers": allowHeaders,
		"Access-Control-Allow-Methods": allowMethods,
		"Content-Type":                 "application/json",
	}
}
