// Package docs holds the swagger description served on /swagger/*any.
// Regenerate with `swag init -g cmd/incomfort/main.go` after changing handler annotations.
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
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "description": "Exchanges the operator credentials for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/heaters": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Last known state of every heater, live or cached",
                "produces": ["application/json"],
                "tags": ["heaters"],
                "summary": "List heaters",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/incomfort.HeaterState"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/heaters/{heater}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["heaters"],
                "summary": "Get heater state",
                "parameters": [
                    {"type": "integer", "description": "Heater index", "name": "heater", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/incomfort.HeaterState"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/heaters/{heater}/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["heaters"],
                "summary": "Poll heater now",
                "parameters": [
                    {"type": "integer", "description": "Heater index", "name": "heater", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/incomfort.HeaterState"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/heaters/{heater}/setpoint": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Values outside 5..30 °C are clamped. The response is the state echoed by the gateway.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["heaters"],
                "summary": "Set room setpoint",
                "parameters": [
                    {"type": "integer", "description": "Heater index", "name": "heater", "in": "path", "required": true},
                    {"description": "Setpoint payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.setpointRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/incomfort.HeaterState"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/heaters/{heater}/munin": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/plain"],
                "tags": ["heaters"],
                "summary": "Munin report",
                "parameters": [
                    {"type": "integer", "description": "Heater index", "name": "heater", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Pushes {\"type\":\"state\",\"data\":...} every interval (default 5s, at most 10m)",
                "tags": ["heaters"],
                "summary": "Heater state stream",
                "parameters": [
                    {"type": "integer", "description": "Heater index (default 0)", "name": "heater", "in": "query"},
                    {"type": "string", "description": "Push interval, e.g. 5s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Push interval in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handlers.setpointRequest": {
            "type": "object",
            "required": ["setpoint_c"],
            "properties": {
                "setpoint_c": {"description": "Requested room setpoint; clamped by the gateway codec to 5..30", "type": "number", "example": 20.5}
            }
        },
        "incomfort.HeaterState": {
            "type": "object",
            "properties": {
                "heater": {"type": "integer"},
                "pressure_bar": {"type": "number"},
                "heater_temp_c": {"type": "number"},
                "tap_temp_c": {"type": "number"},
                "room_temp_c": {"type": "number"},
                "setpoint_c": {"type": "number"},
                "setpoint_override_c": {"type": "number"},
                "display_code": {"type": "string", "example": "central heating"},
                "burning": {"type": "boolean"},
                "lockout": {"type": "boolean"},
                "pumping": {"type": "boolean"},
                "tapping": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "InComfort gateway API",
	Description:      "Reads and controls heaters behind an InComfort LAN2RF gateway.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
