package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"portcall/pkg/logger"
	"portcall/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	berthNameRegex    = regexp.MustCompile(`^[A-Za-z0-9 _-]{1,64}$`)
	vesselNumberRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into the AppError details shape.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type BerthValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBerthValidator(log *logger.Logger) *BerthValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON field names so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("berth_name", validateBerthName); err != nil {
		log.Fatal("Failed to register 'berth_name' validator", "error", err)
	}
	if err := v.RegisterValidation("vessel_number", validateVesselNumber); err != nil {
		log.Fatal("Failed to register 'vessel_number' validator", "error", err)
	}

	return &BerthValidator{
		validate: v,
		logger:   log,
	}
}

func validateBerthName(fl validator.FieldLevel) bool {
	return berthNameRegex.MatchString(fl.Field().String())
}

func validateVesselNumber(fl validator.FieldLevel) bool {
	return vesselNumberRegex.MatchString(fl.Field().String())
}

func (v *BerthValidator) ValidateBerth(berth *model.Berth) error {
	return v.validateStruct(berth)
}

func (v *BerthValidator) ValidateVisitRequest(req *model.VesselVisitRequest) error {
	return v.validateStruct(req)
}

func (v *BerthValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), strings.ToLower(err.Param()))
		case "berth_name":
			message = fmt.Sprintf("%s may contain only letters, digits, spaces, '_' and '-' (max 64)", err.Field())
		case "vessel_number":
			message = fmt.Sprintf("%s may contain only letters, digits, '_' and '-' (max 64)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
