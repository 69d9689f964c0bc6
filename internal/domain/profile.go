package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Gender labels offered by the form selector
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Smoker status labels
const (
	SmokerYes = "Yes"
	SmokerNo  = "No"
)

// Region labels
const (
	RegionSoutheast = "Southeast"
	RegionSouthwest = "Southwest"
	RegionNortheast = "Northeast"
	RegionNorthwest = "Northwest"
)

// DefaultClientName is used when the form leaves the name blank
const DefaultClientName = "Client"

// Numeric input domains
const (
	MinAge      = 5
	MaxAge      = 80
	MinBMI      = 5.0
	MaxBMI      = 100.0
	MinChildren = 0
	MaxChildren = 5
)

// ClientProfile is one form submission. It lives for a single request.
type ClientProfile struct {
	ClientName string  `json:"client_name" form:"client_name"`
	Age        int     `json:"age" form:"age" validate:"gte=5,lte=80"`
	Gender     string  `json:"gender" form:"gender"`
	BMI        float64 `json:"bmi" form:"bmi" validate:"gte=5,lte=100"`
	Children   int     `json:"children" form:"children" validate:"gte=0,lte=5"`
	Smoker     string  `json:"smoker" form:"smoker"`
	Region     string  `json:"region" form:"region"`
}

// NewDefaultProfile returns the values the form starts with
func NewDefaultProfile() ClientProfile {
	return ClientProfile{
		ClientName: DefaultClientName,
		Age:        25,
		Gender:     GenderMale,
		BMI:        25,
		Children:   0,
		Smoker:     SmokerYes,
		Region:     RegionSoutheast,
	}
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the numeric fields against their domains.
// Categorical labels are checked by the feature encoder.
func (p ClientProfile) Validate() error {
	err := profileValidator.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return NewValidationError(fe.Field(), rangeMessage(fe), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func rangeMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
