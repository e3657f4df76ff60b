// Package docs holds the OpenAPI description served under /swagger/*.
// Regenerate with: swag init -g cmd/revit-api/main.go -o docs
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
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/v1/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Get the caller's profile",
                "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Update the caller's profile",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/jobs": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Browse open jobs",
                "parameters": [{"type": "string", "description": "Only jobs in this category", "name": "category", "in": "query"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Post a new job",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/v1/jobs/mine": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "List the caller's posted jobs, newest first",
                "responses": {"200": {"description": "OK"}}}
        },
        "/v1/jobs/matching": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "List open jobs matching the caller's profession",
                "responses": {"200": {"description": "OK"}}}
        },
        "/v1/jobs/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Get a job",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/v1/jobs/{id}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Move a job along its lifecycle",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/jobs/{id}/assign": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Assign a professional to an open job",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/jobs/{id}/eligibility": {
            "get": {"tags": ["applications"], "summary": "Check whether the caller may apply to a job",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/v1/jobs/{id}/applications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "List a job's applications, newest first",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Apply to a job",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/jobs/{id}/activity": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Job activity feed, newest first",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/v1/applications/mine": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "List the caller's applications, newest first",
                "responses": {"200": {"description": "OK"}}}
        },
        "/v1/applications/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Get one application",
                "parameters": [{"type": "string", "description": "Application id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/v1/applications/{id}/decision": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["applications"], "summary": "Accept or reject an application",
                "description": "Accepting assigns the professional to the job and rejects every other pending application.",
                "parameters": [{"type": "string", "description": "Application id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
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
	Title:            "Revit Marketplace API",
	Description:      "Job posting, application and review API for the Revit marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
