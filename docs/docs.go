// Package docs registra la descripción OpenAPI de la API del panel para swag.
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
        "/pets": {
            "get": {
                "produces": ["application/json", "text/plain"],
                "summary": "List pets (type,name,color with ?format=text)",
                "parameters": [{"type": "string", "name": "format", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/panel.PetSummary"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Spawn a pet",
                "parameters": [{"name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/panel.spawnPetRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/panel.PetView"}},
                    "400": {"description": "Invalid pet type or color"}
                }
            }
        },
        "/pets/roll-call": {
            "get": {
                "produces": ["application/json"],
                "summary": "Every pet says hello",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets/reset": {
            "post": {"summary": "Remove every pet and zero the counter", "responses": {"204": {"description": "No Content"}}}
        },
        "/pets/{species}/{color}/{name}": {
            "delete": {
                "produces": ["application/json"],
                "summary": "Remove a pet",
                "parameters": [
                    {"type": "string", "name": "species", "in": "path", "required": true},
                    {"type": "string", "name": "color", "in": "path", "required": true},
                    {"type": "string", "name": "name", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/session/pause": {
            "post": {"summary": "Pause ticks and set the counter to 1", "responses": {"204": {"description": "No Content"}}}
        },
        "/session/resume": {
            "post": {"summary": "Resume ticks", "responses": {"204": {"description": "No Content"}}}
        },
        "/session/ready": {
            "post": {"summary": "Mark the render surface ready", "responses": {"204": {"description": "No Content"}}}
        },
        "/tick": {
            "post": {"summary": "Run one tick", "responses": {"200": {"description": "OK"}}}
        },
        "/ball/throw": {
            "post": {"summary": "Throw the ball", "responses": {"200": {"description": "OK"}, "409": {"description": "Mouse throw disabled"}}}
        },
        "/ball/throw-with-mouse": {
            "put": {"summary": "Enable or disable throwing with the mouse", "responses": {"204": {"description": "No Content"}}}
        },
        "/collisions/{handleID}/pointer-over": {
            "post": {
                "summary": "Pointer over a collision zone",
                "parameters": [{"type": "string", "name": "handleID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/render": {
            "get": {"produces": ["application/json"], "summary": "Render view", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "panel.PetSummary": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "panel.PetView": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "color": {"type": "string"},
                "left": {"type": "string"},
                "bottom": {"type": "string"},
                "friend": {"type": "string"},
                "bubble": {"type": "string"},
                "emoji": {"type": "string"},
                "collision_id": {"type": "string"}
            }
        },
        "panel.spawnPetRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "color": {"type": "string"},
                "name": {"type": "string"},
                "size": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Playground API",
	Description:      "Host side of the pet panel: spawn, list, roll-call, delete, reset, pause and tick.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
