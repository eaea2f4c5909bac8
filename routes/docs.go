package routes

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// RegisterDocsRoutes serves the OpenAPI description of the API.
//
//	GET /api-docs  -> 200 application/yaml
func RegisterDocsRoutes(r *gin.Engine) {
	r.GET("/api-docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", openAPIDocument)
	})
}
