package customer

import (
	"log/slog"

	"github.com/amirasaad/ledger/pkg/ledger"
	webaccount "github.com/amirasaad/ledger/webapi/account"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for customer-related operations.
//
// Routes:
//   - POST   /customers               : Register a customer.
//   - GET    /customers/:id           : Retrieve a customer with its account numbers.
//   - POST   /customers/:id/accounts  : Open an account for the customer.
func Routes(app *fiber.App, l *ledger.Ledger, logger *slog.Logger) {
	app.Post("/customers", CreateCustomer(l, logger))
	app.Get("/customers/:id", GetCustomer(l))
	app.Post("/customers/:id/accounts", OpenAccount(l, logger))
}

// CreateCustomer registers a new customer. An unrecognised birth date is kept
// as typed and reported back in birth_date_raw.
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "Customer details"
// @Success 201 {object} common.Response{data=CustomerDTO} "Customer created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 409 {object} common.ProblemDetails "Duplicate customer id"
// @Router /customers [post]
func CreateCustomer(l *ledger.Ledger, logger *slog.Logger) fiber.Handler {
	log := logger.With("handler", "CreateCustomer")
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCustomerRequest](c)
		if input == nil {
			return err // error response already written
		}
		cust, err := l.CreateCustomer(c.UserContext(), input.ID, input.Name, input.BirthDate, input.Address)
		if err != nil {
			log.Warn("Failed to create customer", "error", err)
			return common.ProblemDetailsJSON(c, "Failed to create customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Customer created", ToCustomerDTO(cust))
	}
}

// GetCustomer returns one customer.
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer id"
// @Success 200 {object} common.Response{data=CustomerDTO} "Customer fetched"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /customers/{id} [get]
func GetCustomer(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cust, ok := l.FindCustomer(c.Params("id"))
		if !ok {
			return common.ProblemDetailsJSON(c, "Customer not found", ledger.ErrCustomerNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer fetched", ToCustomerDTO(cust))
	}
}

// OpenAccount opens the next numbered account for the customer.
// @Summary Open an account
// @Tags customers
// @Produce json
// @Param id path string true "Customer id"
// @Success 201 {object} common.Response{data=webaccount.AccountDTO} "Account opened"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /customers/{id}/accounts [post]
func OpenAccount(l *ledger.Ledger, logger *slog.Logger) fiber.Handler {
	log := logger.With("handler", "OpenAccount")
	return func(c *fiber.Ctx) error {
		a, err := l.CreateAccount(c.UserContext(), c.Params("id"))
		if err != nil {
			log.Warn("Failed to open account", "customer_id", c.Params("id"), "error", err)
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", webaccount.ToAccountDTO(a))
	}
}
