package dto

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Допустимые значения перечислений в запросах
var enums = map[string][]string{
	"college_status":  {"prospect", "negotiation", "closed_won", "lost"},
	"meeting_outcome": {"interested", "follow_up", "not_interested"},
	"deal_stage":      {"lead", "qualified", "proposal", "negotiation", "closed_won", "closed_lost"},
	"pricing_tier":    {"basic", "standard", "premium", "enterprise"},
	"price_operation": {"discount", "markup", "set"},
}

func enumValidator(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// RegisterValidators добавляет теги перечислений в валидатор gin
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return registerEnums(v)
}

func registerEnums(v *validator.Validate) error {
	for tag, allowed := range enums {
		if err := v.RegisterValidation(tag, enumValidator(allowed)); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// ValidationMessage превращает ошибку биндинга в короткое сообщение для клиента
func ValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid request body: " + err.Error()
	}

	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must match %s", field, e.Param()))
		default:
			if allowed, ok := enums[e.Tag()]; ok {
				msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
				continue
			}
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
