// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/customers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Register a customer",
                "parameters": [
                    {"description": "Customer details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/customer.CreateCustomerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Customer created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Duplicate customer id", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/customers/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Get a customer",
                "parameters": [
                    {"type": "string", "description": "Customer id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Customer fetched", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Customer not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/customers/{id}/accounts": {
            "post": {
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Open an account",
                "parameters": [
                    {"type": "string", "description": "Customer id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Account opened", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Customer not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List accounts",
                "responses": {
                    "200": {"description": "Accounts fetched", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/accounts/{number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account",
                "parameters": [
                    {"type": "integer", "description": "Account number", "name": "number", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Account fetched", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid account number", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts/{number}/deposit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Deposit funds into an account",
                "parameters": [
                    {"type": "integer", "description": "Account number", "name": "number", "in": "path", "required": true},
                    {"description": "Deposit amount", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.AmountRequest"}}
                ],
                "responses": {
                    "200": {"description": "Deposit successful", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Rejected by an account rule", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts/{number}/withdraw": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Withdraw funds from an account",
                "parameters": [
                    {"type": "integer", "description": "Account number", "name": "number", "in": "path", "required": true},
                    {"description": "Withdrawal amount", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.AmountRequest"}}
                ],
                "responses": {
                    "200": {"description": "Withdrawal successful", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Rejected by an account rule", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/accounts/{number}/statement": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get the account statement",
                "parameters": [
                    {"type": "integer", "description": "Account number", "name": "number", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Statement fetched", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "account.AmountRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {"amount": {"type": "number", "example": 150.00}}
        },
        "customer.CreateCustomerRequest": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
                "id": {"type": "string", "example": "12345678900"},
                "name": {"type": "string", "example": "Ana Souza"},
                "birth_date": {"type": "string", "example": "15-03-1990"},
                "address": {"type": "string", "example": "Rua A, 1"}
            }
        },
        "common.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ledger API",
	Description:      "In-memory checking-account ledger: customers, accounts, deposits, withdrawals and statements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
