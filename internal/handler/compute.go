package handler

import (
	"fmt"

	"github.com/deppfellow/querybox/internal/lib/utils"
	"github.com/deppfellow/querybox/internal/model"
	"github.com/deppfellow/querybox/internal/server"
	"github.com/deppfellow/querybox/internal/service"
	"github.com/deppfellow/querybox/internal/validation"
	"github.com/labstack/echo/v4"
)

// ComputeHandler serves /sum, /cipher and /lotto.
type ComputeHandler struct {
	Handler
	lotto *service.LottoService
}

func NewComputeHandler(s *server.Server, services *service.Services) *ComputeHandler {
	return &ComputeHandler{
		Handler: NewHandler(s),
		lotto:   services.Lotto,
	}
}

func (h *ComputeHandler) BindSum(c echo.Context) (model.SumRequest, error) {
	query := c.QueryParams()
	return validation.ValidateSum(validation.Lookup(query, "a"), validation.Lookup(query, "b"))
}

// Sum answers "The sum of {a} and {b} is {a+b}".
func (h *ComputeHandler) Sum(c echo.Context, req model.SumRequest) (string, error) {
	return fmt.Sprintf("The sum of %s and %s is %s",
		utils.FormatNumber(req.A),
		utils.FormatNumber(req.B),
		utils.FormatNumber(service.Sum(req.A, req.B)),
	), nil
}

func (h *ComputeHandler) BindCipher(c echo.Context) (model.CipherRequest, error) {
	query := c.QueryParams()
	return validation.ValidateCipher(validation.Lookup(query, "text"), validation.Lookup(query, "shift"))
}

func (h *ComputeHandler) Cipher(c echo.Context, req model.CipherRequest) (string, error) {
	return service.CaesarShift(req.Text, req.Shift), nil
}

func (h *ComputeHandler) BindLotto(c echo.Context) (model.LottoGuess, error) {
	return validation.ValidateLotto(validation.Lookup(c.QueryParams(), "numbers"))
}

func (h *ComputeHandler) Lotto(c echo.Context, guess model.LottoGuess) (string, error) {
	return string(h.lotto.Play(c.Request().Context(), guess)), nil
}
