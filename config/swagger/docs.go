// Package swagger holds the OpenAPI document served under /swagger. It is
// maintained by hand and follows the swag annotations on the handlers.
package swagger

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
        "/matches": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns pending and accepted matches, pending first, then by score",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List the caller's matches",
                "parameters": [
                    {"type": "string", "description": "Bearer JWT token", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"matches": {"type": "array", "items": {"$ref": "#/definitions/matching.MatchView"}}}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Scores players sharing at least one game with the caller, returns the best ones and records a pending match for each",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Find compatible players",
                "parameters": [
                    {"type": "string", "description": "Bearer JWT token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "integer", "description": "Maximum number of suggestions (default 10, capped at 20)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/matching.FindResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/error"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "properties": {"error": {"type": "string"}, "matches": {"type": "array", "items": {"$ref": "#/definitions/matching.SuggestedMatch"}}}}}
                }
            }
        },
        "/matches/{match_id}/accept": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Moves a pending match the caller takes part in to accepted",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Accept a match",
                "parameters": [
                    {"type": "string", "description": "Bearer JWT token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "integer", "description": "Match ID", "name": "match_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/decision"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/matches/{match_id}/reject": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Moves a pending match the caller takes part in to rejected",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Reject a match",
                "parameters": [
                    {"type": "string", "description": "Bearer JWT token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "integer", "description": "Match ID", "name": "match_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/decision"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/ping": {
            "get": {
                "description": "Returns a basic message",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Endpoint just pings the server",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"message": {"type": "string"}}}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "decision": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "matching.Breakdown": {
            "type": "object",
            "properties": {
                "common_games": {"type": "object", "properties": {"count": {"type": "integer"}, "score": {"type": "number"}}},
                "game_skill_match": {"type": "number"},
                "skill_match": {"type": "number"},
                "region_match": {"type": "number"},
                "timezone_match": {"type": "number"},
                "looking_for_match": {"type": "number"}
            }
        },
        "matching.SuggestedMatch": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "username": {"type": "string"},
                "avatar_url": {"type": "string"},
                "bio": {"type": "string"},
                "skill_level": {"type": "string"},
                "looking_for": {"type": "string"},
                "timezone": {"type": "string"},
                "region": {"type": "string"},
                "games": {"type": "string"},
                "match_score": {"type": "integer"},
                "match_id": {"type": "integer"},
                "status": {"type": "string", "enum": ["pending", "accepted", "rejected"]},
                "common_games_count": {"type": "integer"},
                "score_breakdown": {"$ref": "#/definitions/matching.Breakdown"}
            }
        },
        "matching.FindResult": {
            "type": "object",
            "properties": {
                "matches": {"type": "array", "items": {"$ref": "#/definitions/matching.SuggestedMatch"}},
                "message": {"type": "string"}
            }
        },
        "matching.MatchView": {
            "type": "object",
            "properties": {
                "match_id": {"type": "integer"},
                "match_score": {"type": "integer"},
                "status": {"type": "string", "enum": ["pending", "accepted"]},
                "score_breakdown": {"$ref": "#/definitions/matching.Breakdown"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"},
                "avatar_url": {"type": "string"},
                "bio": {"type": "string"},
                "skill_level": {"type": "string"},
                "looking_for": {"type": "string"},
                "timezone": {"type": "string"},
                "region": {"type": "string"},
                "games": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
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
	Title:            "Squadup API",
	Description:      "Player matching API for the Squadup e-sports platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
