// Package docs holds the Swagger document served under /swagger/. It
// mirrors the handler annotations in cmd/api.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/login": {
            "post": {
                "description": "Authenticates user and sets session cookie",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credentials", "name": "creds", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.loginRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/menu-items": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Create menu item",
                "parameters": [
                    {"description": "Menu item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/menu.MenuItem"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/menu.MenuItem"}}}
            }
        },
        "/menu-items/{name}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "summary": "Get menu item",
                "parameters": [{"type": "string", "description": "Menu item name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/menu.MenuItem"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "summary": "Delete menu item",
                "parameters": [{"type": "string", "description": "Menu item name", "name": "name", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            },
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "summary": "Update menu item",
                "parameters": [
                    {"type": "string", "description": "Menu item name", "name": "name", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/menu.MenuItem"}}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/customers": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Create customer",
                "parameters": [
                    {"description": "Customer", "name": "customer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.customerRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/customer.Customer"}}}
            }
        },
        "/customers/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "summary": "Get customer",
                "parameters": [{"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/customer.Customer"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "summary": "Delete customer",
                "parameters": [{"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            },
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "summary": "Update customer",
                "parameters": [
                    {"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "customer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.customerRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/orders": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Create order",
                "parameters": [
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.orderRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Order"}}}
            }
        },
        "/orders/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "summary": "Get order",
                "parameters": [{"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "summary": "Delete order",
                "parameters": [{"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            },
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "summary": "Update order",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.Update"}}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/feedback": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Create feedback",
                "parameters": [
                    {"description": "Feedback", "name": "feedback", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.feedbackRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/feedback.Feedback"}}}
            }
        },
        "/feedback/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "summary": "Get feedback",
                "parameters": [{"type": "string", "description": "Feedback ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/feedback.Feedback"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "summary": "Delete feedback",
                "parameters": [{"type": "string", "description": "Feedback ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "customer.Customer": {
            "type": "object",
            "properties": {
                "customer_id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone_number": {"type": "string"}
            }
        },
        "feedback.Feedback": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"},
                "customer_id": {"type": "string"},
                "feedback_date": {"type": "string"},
                "feedback_id": {"type": "string"},
                "rating": {"type": "number"}
            }
        },
        "main.customerRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone_number": {"type": "string"}
            }
        },
        "main.feedbackRequest": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"},
                "customer_id": {"type": "string"},
                "rating": {"type": "number"}
            }
        },
        "main.loginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "main.orderRequest": {
            "type": "object",
            "properties": {
                "customer_id": {"type": "string"},
                "order_items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}}
            }
        },
        "menu.MenuItem": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "ingredients": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "order.Item": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "ingredients": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "customer_id": {"type": "string"},
                "order_date": {"type": "string"},
                "order_id": {"type": "string"},
                "order_items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}},
                "order_status": {"type": "string"}
            }
        },
        "order.Update": {
            "type": "object",
            "properties": {
                "order_items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}},
                "order_status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Cookie", "in": "header", "description": "session_id=<id> as set by /login"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8443",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Restaurant API",
	Description:      "API for managing menu items, customers, orders and feedback",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
