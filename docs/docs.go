// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/trades": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Trades"],
                "summary": "List trades",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListTradesResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Trades"],
                "summary": "Record a trade",
                "parameters": [
                    {"description": "Trade", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Trade"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/trades/{orderId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Trades"],
                "summary": "Find trade by order id",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "orderId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Trades"],
                "summary": "Replace a trade",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "orderId", "in": "path", "required": true},
                    {"description": "Trade", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Trade"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/trades/deposit/{address}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Trades"],
                "summary": "Find trade by deposit address",
                "parameters": [
                    {"type": "string", "description": "Deposit address", "name": "address", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/trades/status/{address}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Trades"],
                "summary": "Exchange status of a deposit address",
                "parameters": [
                    {"type": "string", "description": "Deposit address", "name": "address", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TradeStatusResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/quotes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Precise quote",
                "parameters": [
                    {"description": "Quote request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/quotes/approximate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Approximate quote",
                "parameters": [
                    {"description": "Quote request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rates/{pair}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "Market info for a pairing",
                "parameters": [
                    {"type": "string", "example": "btc_eth", "description": "Pair code", "name": "pair", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MarketInfo"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/pairings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "List supported pairings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GetSupportedPairingsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Quote": {
            "type": "object",
            "properties": {
                "orderId": {"type": "string"},
                "pair": {"type": "string"},
                "deposit": {"type": "string"},
                "depositAmount": {"type": "string"},
                "withdrawal": {"type": "string"},
                "withdrawalAmount": {"type": "string"},
                "returnAddress": {"type": "string"},
                "quotedRate": {"type": "string"},
                "minerFee": {"type": "string"},
                "minimum": {"type": "string"},
                "maxLimit": {"type": "string"},
                "expiration": {"type": "integer"}
            }
        },
        "domain.Trade": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["no_deposits", "received", "complete", "failed", "resolved"]},
                "hashIn": {"type": "string"},
                "hashOut": {"type": "string"},
                "quote": {"$ref": "#/definitions/domain.Quote"},
                "timestamp": {"type": "string"},
                "acquiredCoinType": {"type": "string"}
            }
        },
        "domain.MarketInfo": {
            "type": "object",
            "properties": {
                "pair": {"type": "string"},
                "rate": {"type": "string"},
                "limit": {"type": "string"},
                "minimum": {"type": "string"},
                "minerFee": {"type": "string"},
                "maxLimit": {"type": "string"}
            }
        },
        "domain.TradeStatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "address": {"type": "string"},
                "withdraw": {"type": "string"},
                "incomingCoin": {"type": "string"},
                "incomingType": {"type": "string"},
                "outgoingCoin": {"type": "string"},
                "outgoingType": {"type": "string"},
                "transaction": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.ListTradesResponse": {
            "type": "object",
            "properties": {
                "trades": {"type": "array", "items": {"$ref": "#/definitions/domain.Trade"}}
            }
        },
        "handler.QuoteRequest": {
            "type": "object",
            "properties": {
                "pair": {"type": "string", "example": "btc_eth"},
                "depositAmount": {"type": "string", "example": "0.25"},
                "withdrawalAmount": {"type": "string", "example": "0"},
                "withdrawalAddress": {"type": "string"},
                "returnAddress": {"type": "string"}
            }
        },
        "handler.GetSupportedPairingsResponse": {
            "type": "object",
            "properties": {
                "pairings": {"type": "array", "items": {"type": "string"}, "example": ["btc_eth", "eth_btc"]}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Trade Ledger API",
	Description:      "Wallet trade ledger and exchange quotes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
