package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	echoSwagger "github.com/swaggo/echo-swagger"
)

// swag keeps a process-wide registry and panics on a second Register.
var registerDocOnce sync.Once

// RegisterSwagger serves the Swagger UI for doc under /swagger/.
func RegisterSwagger(e *echo.Echo, doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(raw),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
