package api

import (
	"github.com/labstack/echo/v4"

	"winsbygroup.com/brvalida/internal/document"
)

// RegisterRoutes wires the validation and customer endpoints.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.Index)

	// Validation relay
	for _, kind := range document.Kinds {
		e.GET("/valida-"+string(kind)+"/:"+string(kind), h.ValidateDocument(kind))
	}
	e.GET("/valida-cep/:cep", h.ValidateCEP)

	// Customer registry
	g := e.Group("/clientes")
	g.GET("", h.ListCustomers)
	g.GET("/:cpf", h.GetCustomer)
	g.POST("", h.CreateCustomer)
	g.PUT("/:cpf", h.UpdateCustomer)
	g.DELETE("/:cpf", h.DeleteCustomer)
}
