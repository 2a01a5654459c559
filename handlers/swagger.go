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
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>sagacious — Swagger</title>
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

// Minimal OpenAPI document describing the notes API and ops endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "sagacious", "version": "v0.1.0" },
  "paths": {
    "/api/notes": {
      "post": {
        "summary": "Create a note",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"content":{"type":"string"}}}}}},
        "responses": { "201": { "description": "note created" } }
      }
    },
    "/api/notes/{id}": {
      "get": { "summary": "Fetch a note by id", "responses": { "200": { "description": "note" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Update a note", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"content":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated note" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a note", "responses": { "204": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/notes/{id}/attachment": {
      "put": { "summary": "Upload an attachment", "responses": { "201": { "description": "stored" }, "503": { "description": "blob storage not configured" } } },
      "get": { "summary": "Download the attachment", "responses": { "200": { "description": "attachment stream" }, "404": { "description": "no attachment" } } }
    },
    "/api/notes/{id}/attachment/url": {
      "get": { "summary": "Presigned attachment download URL", "responses": { "200": { "description": "url" }, "404": { "description": "not found" }, "503": { "description": "blob storage not configured" } } }
    },
    "/api/me": { "get": { "summary": "Verified token claims", "responses": { "200": { "description": "claims" }, "401": { "description": "invalid or missing token" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
