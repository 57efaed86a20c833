package swagger

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler serves the swagger UI over the OpenAPI document exposed at the
// server root.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}

// ValidateDocument parses and validates the OpenAPI document so a broken
// spec is caught at startup instead of surfacing as a blank swagger UI.
func ValidateDocument(path string) error {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load openapi document %s: %w", path, err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("openapi document %s is invalid: %w", path, err)
	}

	return nil
}
