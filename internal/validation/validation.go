package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

var validate = validator.New()

// Length limits per identifier kind.
const (
	MaxSymbolLength   = 32
	MaxFundCodeLength = 64
	MaxIPOIDLength    = 128
	MaxCacheKeyLength = 160
)

// ParseStockSymbol trims and validates a ticker symbol.
// Case is left to the caller.
func ParseStockSymbol(raw string) (string, error) {
	return parseIdentifier("symbol", raw, MaxSymbolLength)
}

// ParseFundCode trims and validates a mutual fund scheme code.
func ParseFundCode(raw string) (string, error) {
	return parseIdentifier("code", raw, MaxFundCodeLength)
}

// ParseIPOID trims and validates a free-text IPO name or id.
func ParseIPOID(raw string) (string, error) {
	return parseIdentifier("id", raw, MaxIPOIDLength)
}

// ParseCacheKey trims and validates a memory cache key.
func ParseCacheKey(raw string) (string, error) {
	return parseIdentifier("key", raw, MaxCacheKeyLength)
}

// ParseIPOCategory validates an IPO list category.
func ParseIPOCategory(raw string) (model.IPOCategory, error) {
	category, ok := model.ParseIPOCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !ok {
		return "", fmt.Errorf("%w: %q (expected current, upcoming or past)", apperrors.ErrInvalidIPOCategory, raw)
	}
	return category, nil
}

// parseIdentifier expects an already decoded value. Percent signs are
// taken literally.
func parseIdentifier(field, raw string, maxLen int) (string, error) {
	value := strings.TrimSpace(raw)

	if strings.ContainsAny(value, "\r\n\t\x00") {
		return "", fieldError(field, "must not contain control characters")
	}

	if err := validate.Var(value, fmt.Sprintf("required,max=%d", maxLen)); err != nil {
		return "", fieldError(field, describe(err))
	}
	return value, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	switch fe := verrs[0]; fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
