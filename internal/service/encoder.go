package service

import (
	"strings"

	"github.com/premiumcalc/backend/internal/domain"
)

// labelCodes maps a form label to the numeric code the model was trained with
type labelCodes map[string]float64

var (
	genderCodes = labelCodes{
		domain.GenderFemale: 0,
		domain.GenderMale:   1,
	}

	smokerCodes = labelCodes{
		domain.SmokerNo:  0,
		domain.SmokerYes: 1,
	}

	regionCodes = labelCodes{
		domain.RegionSoutheast: 0,
		domain.RegionSouthwest: 1,
		domain.RegionNortheast: 2,
		domain.RegionNorthwest: 3,
	}
)

// lookup matches case-insensitively and returns the canonical label with its code
func (m labelCodes) lookup(field, label string) (string, float64, error) {
	trimmed := strings.TrimSpace(label)
	for canonical, code := range m {
		if strings.EqualFold(canonical, trimmed) {
			return canonical, code, nil
		}
	}
	return "", 0, domain.NewValidationError(field, "unrecognized label", label)
}

// Canonicalize returns the profile with categorical labels in their canonical spelling
func Canonicalize(p domain.ClientProfile) (domain.ClientProfile, error) {
	var err error
	if p.Gender, _, err = genderCodes.lookup("gender", p.Gender); err != nil {
		return domain.ClientProfile{}, err
	}
	if p.Smoker, _, err = smokerCodes.lookup("smoker", p.Smoker); err != nil {
		return domain.ClientProfile{}, err
	}
	if p.Region, _, err = regionCodes.lookup("region", p.Region); err != nil {
		return domain.ClientProfile{}, err
	}
	return p, nil
}

// Encode maps a profile to the model's feature vector:
// [age, genderCode, bmi, children, smokerCode, regionCode].
func Encode(p domain.ClientProfile) (domain.FeatureVector, error) {
	var v domain.FeatureVector

	_, gender, err := genderCodes.lookup("gender", p.Gender)
	if err != nil {
		return v, err
	}
	_, smoker, err := smokerCodes.lookup("smoker", p.Smoker)
	if err != nil {
		return v, err
	}
	_, region, err := regionCodes.lookup("region", p.Region)
	if err != nil {
		return v, err
	}

	v[domain.FeatureAge] = float64(p.Age)
	v[domain.FeatureGender] = gender
	v[domain.FeatureBMI] = p.BMI
	v[domain.FeatureChildren] = float64(p.Children)
	v[domain.FeatureSmoker] = smoker
	v[domain.FeatureRegion] = region
	return v, nil
}
