package account

import (
	"log/slog"

	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for account-related operations.
//
// Routes:
//   - GET    /accounts                    : List every account.
//   - GET    /accounts/:number            : Retrieve one account.
//   - POST   /accounts/:number/deposit    : Deposit funds into the account.
//   - POST   /accounts/:number/withdraw   : Withdraw funds from the account.
//   - GET    /accounts/:number/statement  : Render the account statement.
func Routes(app *fiber.App, l *ledger.Ledger, logger *slog.Logger) {
	app.Get("/accounts", ListAccounts(l))
	app.Get("/accounts/:number", GetAccount(l))
	app.Post("/accounts/:number/deposit", Deposit(l, logger))
	app.Post("/accounts/:number/withdraw", Withdraw(l, logger))
	app.Get("/accounts/:number/statement", GetStatement(l))
}

// ListAccounts returns every account in the order it was opened.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response{data=[]AccountDTO} "Accounts fetched"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Router /accounts [get]
func ListAccounts(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts := l.Accounts()
		out := make([]AccountDTO, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, ToAccountDTO(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", out)
	}
}

// GetAccount returns one account.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param number path int true "Account number"
// @Success 200 {object} common.Response{data=AccountDTO} "Account fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account number"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{number} [get]
func GetAccount(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, err := c.ParamsInt("number")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account number", err, fiber.StatusBadRequest)
		}
		a, ok := l.FindAccount(number)
		if !ok {
			return common.ProblemDetailsJSON(c, "Account not found", ledger.ErrAccountNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDTO(a))
	}
}

// Deposit returns a Fiber handler that credits the account.
// Business rule violations answer 422 with the rule's message as detail.
// @Summary Deposit funds into an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param number path int true "Account number"
// @Param request body AmountRequest true "Deposit amount"
// @Success 200 {object} common.Response{data=RecordDTO} "Deposit successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Rejected by an account rule"
// @Router /accounts/{number}/deposit [post]
func Deposit(l *ledger.Ledger, logger *slog.Logger) fiber.Handler {
	return movement(logger.With("handler", "Deposit"), "Deposit successful", "Failed to deposit", l.Deposit)
}

// Withdraw returns a Fiber handler that debits the account.
// @Summary Withdraw funds from an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param number path int true "Account number"
// @Param request body AmountRequest true "Withdrawal amount"
// @Success 200 {object} common.Response{data=RecordDTO} "Withdrawal successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Rejected by an account rule"
// @Router /accounts/{number}/withdraw [post]
func Withdraw(l *ledger.Ledger, logger *slog.Logger) fiber.Handler {
	return movement(logger.With("handler", "Withdraw"), "Withdrawal successful", "Failed to withdraw", l.Withdraw)
}

// GetStatement renders the account statement.
// @Summary Get the account statement
// @Tags accounts
// @Produce json
// @Param number path int true "Account number"
// @Success 200 {object} common.Response{data=StatementDTO} "Statement fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account number"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{number}/statement [get]
func GetStatement(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, err := c.ParamsInt("number")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account number", err, fiber.StatusBadRequest)
		}
		a, ok := l.FindAccount(number)
		if !ok {
			return common.ProblemDetailsJSON(c, "Account not found", ledger.ErrAccountNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statement fetched", ToStatementDTO(a))
	}
}
