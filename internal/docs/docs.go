// Package docs registers the OpenAPI document served at /swagger.
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
        "/session": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Open a session",
                "responses": {
                    "200": {"description": "Open session", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Close the session",
                "responses": {
                    "200": {"description": "Signed out", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/session/currency": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Set display currency",
                "parameters": [
                    {"description": "Currency code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateCurrencyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated session", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}},
                    "400": {"description": "Unknown currency", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "description": "all, debit or credit", "name": "type", "in": "query"},
                    {"type": "string", "description": "Comma-separated category names", "name": "category", "in": "query"},
                    {"type": "string", "description": "Today, Week, Month or All", "name": "range", "in": "query"},
                    {"type": "string", "description": "Start date (YYYY-MM-DD), inclusive", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD), inclusive", "name": "to", "in": "query"},
                    {"type": "string", "description": "Display currency", "name": "currency", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Filtered transactions", "schema": {"$ref": "#/definitions/handlers.TransactionListResponse"}},
                    "400": {"description": "Invalid filters", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "parameters": [
                    {"description": "Transaction details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Transaction created", "schema": {"$ref": "#/definitions/handlers.TransactionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Data service unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"description": "Transaction details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated transaction", "schema": {"$ref": "#/definitions/handlers.TransactionResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Transaction is still being saved", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Transaction deleted", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "Categories", "schema": {"$ref": "#/definitions/handlers.CategoryListResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [
                    {"description": "Category details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateCategoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Categories after the change", "schema": {"$ref": "#/definitions/handlers.CategoryListResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reports/breakdown": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Category breakdown",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "currency", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Breakdown", "schema": {"$ref": "#/definitions/handlers.BreakdownResponse"}}
                }
            }
        },
        "/reports/trend": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Monthly trend",
                "parameters": [
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "string", "name": "currency", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Trend", "schema": {"$ref": "#/definitions/handlers.TrendResponse"}}
                }
            }
        },
        "/reports/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Spending and income summary",
                "responses": {
                    "200": {"description": "Summary", "schema": {"$ref": "#/definitions/handlers.SummaryResponse"}}
                }
            }
        },
        "/currencies": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "List currencies",
                "responses": {
                    "200": {"description": "Currencies", "schema": {"$ref": "#/definitions/handlers.CurrencyListResponse"}}
                }
            }
        },
        "/currencies/convert": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "Convert an amount",
                "parameters": [
                    {"type": "string", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "name": "from", "in": "query", "required": true},
                    {"type": "string", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Converted amount", "schema": {"$ref": "#/definitions/handlers.ConvertResponse"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Drain notifications",
                "responses": {
                    "200": {"description": "Notifications", "schema": {"$ref": "#/definitions/handlers.NotificationListResponse"}}
                }
            }
        },
        "/webhooks/auth": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["webhooks"],
                "summary": "Auth session event",
                "parameters": [
                    {"description": "Event", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/session.AuthEvent"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handlers.SessionResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "display_currency": {"type": "string"},
                "opened_at": {"type": "string"},
                "loaded": {"type": "boolean"},
                "transaction_count": {"type": "integer"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "pending_notifications": {"type": "integer"}
            }
        },
        "handlers.UpdateCurrencyRequest": {
            "type": "object",
            "required": ["currency"],
            "properties": {"currency": {"type": "string", "example": "OMR"}}
        },
        "handlers.TransactionRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "amount": {"type": "string", "example": "12.50"},
                "currency": {"type": "string", "example": "USD"},
                "category": {"type": "string", "example": "Food"},
                "type": {"type": "string", "example": "debit"},
                "note": {"type": "string"},
                "date": {"type": "string", "example": "2024-06-01"}
            }
        },
        "handlers.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "amount": {"type": "string"},
                "currency": {"type": "string"},
                "category": {"type": "string"},
                "type": {"type": "string"},
                "note": {"type": "string"},
                "date": {"type": "string"},
                "pending": {"type": "boolean"},
                "display_amount": {"type": "string"},
                "display_formatted": {"type": "string"}
            }
        },
        "handlers.TotalResponse": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "currency": {"type": "string"},
                "amount": {"type": "string"},
                "formatted": {"type": "string"}
            }
        },
        "handlers.TransactionListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handlers.TransactionResponse"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "total": {"$ref": "#/definitions/handlers.TotalResponse"}
            }
        },
        "handlers.CreateCategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "example": "Travel"}}
        },
        "handlers.CategoryListResponse": {
            "type": "object",
            "properties": {"categories": {"type": "array", "items": {"type": "string"}}}
        },
        "handlers.AmountResponse": {
            "type": "object",
            "properties": {"value": {"type": "string"}, "formatted": {"type": "string"}}
        },
        "handlers.BreakdownResponse": {
            "type": "object",
            "properties": {
                "currency": {"type": "string"},
                "type": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "total": {"$ref": "#/definitions/handlers.AmountResponse"},
                "categories": {"type": "array", "items": {"type": "object", "properties": {"name": {"type": "string"}, "value": {"type": "string"}, "formatted": {"type": "string"}}}}
            }
        },
        "handlers.TrendResponse": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "currency": {"type": "string"},
                "points": {"type": "array", "items": {"type": "object", "properties": {"month": {"type": "string"}, "value": {"type": "string"}, "formatted": {"type": "string"}}}}
            }
        },
        "handlers.SummaryResponse": {
            "type": "object",
            "properties": {
                "currency": {"type": "string"},
                "spending": {"$ref": "#/definitions/handlers.AmountResponse"},
                "income": {"$ref": "#/definitions/handlers.AmountResponse"},
                "net": {"$ref": "#/definitions/handlers.AmountResponse"}
            }
        },
        "handlers.CurrencyListResponse": {
            "type": "object",
            "properties": {
                "currencies": {"type": "array", "items": {"type": "object", "properties": {"code": {"type": "string"}, "symbol": {"type": "string"}, "rate_to_usd": {"type": "string"}}}},
                "default_display": {"type": "string"},
                "default_entry": {"type": "string"}
            }
        },
        "handlers.ConvertResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "result": {"type": "string"},
                "formatted": {"type": "string"}
            }
        },
        "handlers.NotificationListResponse": {
            "type": "object",
            "properties": {
                "notifications": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "string"}, "level": {"type": "string"}, "message": {"type": "string"}, "created_at": {"type": "string"}}}}
            }
        },
        "session.AuthEvent": {
            "type": "object",
            "required": ["event", "user_id"],
            "properties": {"event": {"type": "string", "example": "SIGNED_IN"}, "user_id": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        },
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Expense Tracker API",
	Description:      "Expense tracking with multi-currency totals, category breakdowns and monthly trends.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
