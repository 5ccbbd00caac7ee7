package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>standup-services — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the standup endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "standup-services", "version": "v0.1.0" },
  "paths": {
    "/api/standups": {
      "post": {
        "summary": "Submit a daily standup update",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"member_id":{"type":"string"},"date":{"type":"string"},"yesterday":{"type":"string"},"today":{"type":"string"},"blockers":{"type":"string"}},"required":["member_id","yesterday","today"]}}}},
        "responses": { "201": { "description": "stored record" }, "400": { "description": "validation failed" }, "503": { "description": "store unavailable" } }
      }
    },
    "/api/reports/{date}": {
      "get": {
        "summary": "Aggregated standup report for a date (YYYY-MM-DD)",
        "parameters": [ { "name": "date", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "report" }, "400": { "description": "invalid date" }, "503": { "description": "store unavailable" } }
      }
    },
    "/api/notify": {
      "post": {
        "summary": "Send standup reminders to a list of recipients",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"recipients":{"type":"array","items":{"type":"string"}},"template":{"type":"string"},"date":{"type":"string"}},"required":["recipients"]}}}},
        "responses": { "200": { "description": "per-recipient results" }, "400": { "description": "missing recipients" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
