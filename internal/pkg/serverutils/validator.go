package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and converts
// failures into a 400 with readable field messages.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		var msgs []string
		for _, fe := range fieldErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on rule '%s'", fe.Field(), fe.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
	}

	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
