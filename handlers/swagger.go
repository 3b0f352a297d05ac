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
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>pathwise — Swagger</title>
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

// Minimal OpenAPI document describing the public surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "pathwise", "version": "v0.1.0" },
  "paths": {
    "/auth/signup": {
      "post": {
        "summary": "Create an account and open a session",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"full_name":{"type":"string"},"email_address":{"type":"string"},"password":{"type":"string"},"confirm_password":{"type":"string"},"gender":{"type":"string"},"country":{"type":"string"},"year":{"type":"string"}}}}}},
        "responses": { "201": { "description": "account created, tokens returned" }, "409": { "description": "account already exists" } }
      }
    },
    "/auth/login": {
      "post": { "summary": "Password login", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email_address":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Destroy the current session", "responses": { "200": { "description": "logged out" }, "401": { "description": "no active session" } } }
    },
    "/api/v1/profile": {
      "get": { "summary": "Fetch the detail record", "responses": { "200": { "description": "profile" }, "404": { "description": "no detail record" } } },
      "put": { "summary": "Overwrite the detail record and mirror the summary row", "responses": { "200": { "description": "synced" }, "409": { "description": "name collides with another account" } } }
    },
    "/api/v1/recommendations": {
      "get": { "summary": "Rank the career catalog against the profile", "responses": { "200": { "description": "scored catalog" } } }
    },
    "/api/v1/recommendations/selected": {
      "post": { "summary": "Record selected recommendations", "responses": { "200": { "description": "selection stored" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
