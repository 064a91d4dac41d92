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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/signup": {"post": {"tags": ["auth"], "summary": "Create an account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Revoke the current token", "responses": {"204": {"description": "No Content"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Current user", "responses": {"200": {"description": "OK"}}}},
        "/habits": {
            "get": {"tags": ["habits"], "security": [{"BearerAuth": []}], "summary": "List habits in creation order", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["habits"], "security": [{"BearerAuth": []}], "summary": "Create a habit", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/habits/{id}": {"delete": {"tags": ["habits"], "security": [{"BearerAuth": []}], "summary": "Delete a habit and its logs", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}},
        "/logs": {"get": {"tags": ["logs"], "security": [{"BearerAuth": []}], "summary": "All habit logs of the user", "responses": {"200": {"description": "OK"}}}},
        "/logs/toggle": {"post": {"tags": ["logs"], "security": [{"BearerAuth": []}], "summary": "Flip the completion of a habit on a date", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/progress": {"get": {"tags": ["progress"], "security": [{"BearerAuth": []}], "summary": "XP, level, streaks and unlock count", "responses": {"200": {"description": "OK"}}}},
        "/achievements": {"get": {"tags": ["progress"], "security": [{"BearerAuth": []}], "summary": "Achievement catalog with unlock state", "responses": {"200": {"description": "OK"}}}},
        "/stats/chart": {"get": {"tags": ["stats"], "security": [{"BearerAuth": []}], "summary": "Completion counts, 7 daily or 12 monthly buckets", "parameters": [{"name": "granularity", "in": "query", "type": "string"}, {"name": "date", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/stats/calendar": {"get": {"tags": ["stats"], "security": [{"BearerAuth": []}], "summary": "Month grid with completed, missed and future flags", "parameters": [{"name": "date", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/stats/history": {"get": {"tags": ["stats"], "security": [{"BearerAuth": []}], "summary": "14-day completion strip per habit", "parameters": [{"name": "date", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/stats/habits": {"get": {"tags": ["stats"], "security": [{"BearerAuth": []}], "summary": "Completion rate per habit", "responses": {"200": {"description": "OK"}}}},
        "/insights/daily": {"get": {"tags": ["insights"], "security": [{"BearerAuth": []}], "summary": "Tip, quote and focus for today, cached per day", "responses": {"200": {"description": "OK"}}}},
        "/insights/motivation": {"get": {"tags": ["insights"], "security": [{"BearerAuth": []}], "summary": "A short motivational quote", "responses": {"200": {"description": "OK"}}}},
        "/insights/analysis": {"post": {"tags": ["insights"], "security": [{"BearerAuth": []}], "summary": "Pattern analysis over the full log history", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/insights/weekly-report": {"post": {"tags": ["insights"], "security": [{"BearerAuth": []}], "summary": "Report over the last seven days", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/insights/coach": {"post": {"tags": ["insights"], "security": [{"BearerAuth": []}], "summary": "Daily coach check-in, once per day", "responses": {"200": {"description": "OK"}}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "HabitQuest API",
	Description:      "Habit tracking with streaks, XP levels, achievements and generated insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
