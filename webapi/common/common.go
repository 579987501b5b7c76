// Package common holds the response envelopes and helpers shared by the HTTP handlers.
package common

import (
	"errors"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/customer"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MIMEProblemJSON is the content type of every error response.
const MIMEProblemJSON = "application/problem+json"

var validate = validator.New()

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a Response envelope with the given status.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem for err.
// Optional args: a string overrides the detail, an int overrides the status
// otherwise derived with ErrorToStatusCode.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			status = v
		}
	}
	pd.Status = status
	return c.Status(status).JSON(pd, MIMEProblemJSON)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrCustomerNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateID):
		return fiber.StatusConflict
	case errors.Is(err, customer.ErrInvalidCustomer),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrTooManyDecimals),
		errors.Is(err, money.ErrAmountOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, account.ErrAmountExceedsLimit),
		errors.Is(err, account.ErrDailyWithdrawalCountReached),
		errors.Is(err, account.ErrDailyLimitReached):
		return fiber.StatusUnprocessableEntity
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, validationProblem(c, verrs)
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

func validationProblem(c *fiber.Ctx, verrs validator.ValidationErrors) error {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(ProblemDetails{
		Type:     "about:blank",
		Title:    "Validation failed",
		Status:   fiber.StatusBadRequest,
		Detail:   verrs.Error(),
		Instance: c.OriginalURL(),
		Errors:   fields,
	}, MIMEProblemJSON)
}
