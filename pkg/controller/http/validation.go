package http

import (
	"context"
	_ "embed"
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed openapi.yaml
var openapiSpec []byte

// requestValidator checks JSON request bodies against the embedded OpenAPI
// document. Requests to routes the document does not describe pass through.
type requestValidator struct {
	router routers.Router
}

func newRequestValidator() (*requestValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse OpenAPI document")
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, goerr.Wrap(err, "invalid OpenAPI document")
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build OpenAPI router")
	}

	return &requestValidator{router: router}, nil
}

func (v *requestValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := v.router.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeJSON(w, r, http.StatusBadRequest, &errorResponse{
				Success: false,
				Error:   "Invalid request: " + validationMessage(err),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Err != nil {
		var schemaErr *openapi3.SchemaError
		if errors.As(reqErr.Err, &schemaErr) {
			return schemaErr.Reason
		}
		return reqErr.Err.Error()
	}
	return err.Error()
}
