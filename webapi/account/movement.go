package account

import (
	"context"
	"log/slog"

	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

type applyFunc func(ctx context.Context, number int, amount money.Money) (domainaccount.Record, error)

func movement(log *slog.Logger, okMsg, failTitle string, apply applyFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, err := c.ParamsInt("number")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account number", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err // error response already written
		}
		rec, err := apply(c.UserContext(), number, *input.Amount)
		if err != nil {
			log.Warn(failTitle, "account_number", number, "error", err)
			return common.ProblemDetailsJSON(c, failTitle, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, okMsg, ToRecordDTO(rec))
	}
}
