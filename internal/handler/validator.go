package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/petalworks/gardencore/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("rankingcategory", validateRankingCategory)
	_ = v.RegisterValidation("purchasekind", validatePurchaseKind)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError flattens validation errors into a field map without
// leaking internal struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "rankingcategory":
			errs[field] = "Invalid leaderboard category"
		case "purchasekind":
			errs[field] = "Invalid purchase kind"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateRankingCategory(fl validator.FieldLevel) bool {
	switch domain.RankingCategory(fl.Field().String()) {
	case domain.CategorySeeds, domain.CategoryStreak:
		return true
	}
	return false
}

func validatePurchaseKind(fl validator.FieldLevel) bool {
	switch domain.PurchaseKind(fl.Field().String()) {
	case domain.PurchaseGemPack, domain.PurchaseEnergyPack,
		domain.PurchaseSeedPack, domain.PurchaseBoosterPack:
		return true
	}
	return false
}
