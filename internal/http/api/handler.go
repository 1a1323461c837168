package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"winsbygroup.com/brvalida/internal/customer"
	"winsbygroup.com/brvalida/internal/document"
	"winsbygroup.com/brvalida/internal/middleware"
	"winsbygroup.com/brvalida/internal/validation"
	"winsbygroup.com/brvalida/internal/version"
)

const (
	msgCustomerNotFound = "Cliente não encontrado"
	msgIncomplete       = "Dados incompletos"
	msgBadBody          = "Corpo da requisição inválido"
	msgCEPValid         = "CEP valido!"
	msgCEPInvalid       = "CEP inválido!"
	msgCEPNotFound      = "Erro ao buscar CEP"
	msgCEPUnavailable   = "Serviço de CEP indisponível"
)

// documentMessages holds the valid and invalid answers per document kind.
var documentMessages = map[document.Kind][2]string{
	document.CPF:  {"CPF válido!", "CPF inválido!"},
	document.CNPJ: {"CNPJ válido!", "CNPJ inválido!"},
	document.CNH:  {"CNH válida!", "CNH inválida!"},
}

type Handler struct {
	ValidationService *validation.Service
	CustomerService   *customer.Service
}

func NewHandler(v *validation.Service, c *customer.Service) *Handler {
	return &Handler{
		ValidationService: v,
		CustomerService:   c,
	}
}

// GET /
func (h *Handler) Index(c echo.Context) error {
	return c.String(http.StatusOK, version.Greeting)
}

// ValidateDocument returns the handler for GET /valida-<kind>/:<kind>.
func (h *Handler) ValidateDocument(kind document.Kind) echo.HandlerFunc {
	msgs := documentMessages[kind]
	return func(c echo.Context) error {
		if h.ValidationService.Document(kind, c.Param(string(kind))) == validation.Valid {
			return c.String(http.StatusOK, msgs[0])
		}
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msgs[1],
		})
	}
}

// GET /valida-cep/:cep
func (h *Handler) ValidateCEP(c echo.Context) error {
	outcome, _, err := h.ValidationService.PostalCode(c.Request().Context(), c.Param("cep"))

	switch outcome {
	case validation.Valid:
		return c.String(http.StatusOK, msgCEPValid)
	case validation.Invalid:
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msgCEPInvalid,
		})
	case validation.NotFound:
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msgCEPNotFound,
		})
	default:
		middleware.GetLogger(c).Warn().Err(err).Str("cep", c.Param("cep")).Msg("cep lookup unavailable")
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": msgCEPUnavailable,
		})
	}
}

// GET /clientes
func (h *Handler) ListCustomers(c echo.Context) error {
	list, err := h.CustomerService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GET /clientes/:cpf
func (h *Handler) GetCustomer(c echo.Context) error {
	cust, err := h.CustomerService.Get(c.Request().Context(), c.Param("cpf"))
	if errors.Is(err, customer.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": msgCustomerNotFound,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cust)
}

// POST /clientes
func (h *Handler) CreateCustomer(c echo.Context) error {
	var req customer.Customer
	if err := decodeBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msgBadBody,
		})
	}

	created, err := h.CustomerService.Create(c.Request().Context(), &req)
	if errors.Is(err, customer.ErrIncomplete) {
		middleware.GetLogger(c).Debug().Err(err).Msg("customer rejected")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msgIncomplete,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// PUT /clientes/:cpf
func (h *Handler) UpdateCustomer(c echo.Context) error {
	var patch customer.Patch
	if err := decodeBody(c, &patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msgBadBody,
		})
	}

	updated, err := h.CustomerService.Update(c.Request().Context(), c.Param("cpf"), patch)
	if errors.Is(err, customer.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": msgCustomerNotFound,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DELETE /clientes/:cpf
func (h *Handler) DeleteCustomer(c echo.Context) error {
	n, err := h.CustomerService.Delete(c.Request().Context(), c.Param("cpf"))
	if err != nil {
		return err
	}
	middleware.GetLogger(c).Debug().Int64("removed", n).Str("cpf", c.Param("cpf")).Msg("customers deleted")
	return c.NoContent(http.StatusNoContent)
}

// decodeBody reads a JSON body into v whatever the Content-Type. An empty
// body leaves v untouched.
func decodeBody(c echo.Context, v any) error {
	err := json.NewDecoder(c.Request().Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
