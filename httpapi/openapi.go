package httpapi

import (
	"embed"
	"net/http"

	"github.com/caldros/cronweave/static"
)

//go:embed openapi.json
var openapiFS embed.FS

// openapiHandler serves this server's own route table as a static OpenAPI
// document, the same way static.SwaggerHandlerOrPanic serves a generated
// protobuf swagger document elsewhere in this codebase's lineage.
func openapiHandler() http.Handler {
	return static.SwaggerHandlerOrPanic("openapi.json", openapiFS)
}
