package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"real-estate-backend/internal/result"
)

// Stable error codes. The boundary layer and clients key off these, so they
// never change once published.
const (
	CodeInvalidID            = "InvalidId"
	CodeValidationFailed     = "ValidationFailed"
	CodePropertyNotFound     = "PropertyNotFound"
	CodeCustomerNotFound     = "CustomerNotFound"
	CodeCategoryNotFound     = "CategoryNotFound"
	CodeSellerNotFound       = "SellerNotFound"
	CodeBuyerNotFound        = "BuyerNotFound"
	CodeLesseeNotFound       = "LesseeNotFound"
	CodeSaleNotFound         = "SaleNotFound"
	CodeRentalNotFound       = "RentalNotFound"
	CodeSellerIsBuyer        = "SellerIsBuyer"
	CodeSellerNotOwner       = "SellerNotOwner"
	CodePropertyNotAvailable = "PropertyNotAvailable"
	CodePropertyNumberTaken  = "PropertyNumberTaken"
	CodeNationalIDTaken      = "NationalIdTaken"
	CodeInvalidTransition    = "InvalidStatusTransition"
	CodeCallerRequired       = "CallerRequired"
	CodeSaleFailed           = "SaleFailed"
	CodeRentalFailed         = "RentalFailed"
	CodeOperationFailed      = "OperationFailed"
)

var errUpdateTouchedNothing = errors.New("update touched no rows")

var validate = validator.New()

// validateStruct runs validator/v10 tag rules over a command and converts
// every violation into a field-level validation error. All failed rules come
// back together, in field order.
func validateStruct(cmd interface{}) []*result.Error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*result.Error{result.ValidationError(CodeValidationFailed, "", err.Error())}
	}

	out := make([]*result.Error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, result.ValidationError(
			CodeValidationFailed,
			strings.ToLower(fe.Field()),
			ruleMessage(fe),
		))
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s is too short (min %s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long (max %s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// parseIDs verifies that every identifier is a well-formed UUID. Errors come
// back in field-name order for a deterministic response.
func parseIDs(ids map[string]string) []*result.Error {
	fields := make([]string, 0, len(ids))
	for f := range ids {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var errs []*result.Error
	for _, f := range fields {
		if _, err := uuid.Parse(ids[f]); err != nil {
			errs = append(errs, result.ValidationError(CodeInvalidID, f, fmt.Sprintf("%s is not a valid identifier", f)))
		}
	}
	return errs
}
