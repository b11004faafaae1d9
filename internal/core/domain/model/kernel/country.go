package kernel

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Country is an ISO 3166-1 alpha-2 code the store ships to.
type Country struct {
	code string
}

// CountryInfo is a supported destination as exposed to clients.
type CountryInfo struct {
	Code string
	Name string
}

var supportedCountries = []CountryInfo{
	{"AT", "Austria"}, {"BE", "Belgium"}, {"BG", "Bulgaria"}, {"CY", "Cyprus"},
	{"CZ", "Czechia"}, {"DE", "Germany"}, {"DK", "Denmark"}, {"EE", "Estonia"},
	{"ES", "Spain"}, {"FI", "Finland"}, {"FR", "France"}, {"GR", "Greece"},
	{"HR", "Croatia"}, {"HU", "Hungary"}, {"IE", "Ireland"}, {"IT", "Italy"},
	{"LT", "Lithuania"}, {"LU", "Luxembourg"}, {"LV", "Latvia"}, {"MT", "Malta"},
	{"NL", "Netherlands"}, {"PL", "Poland"}, {"PT", "Portugal"}, {"RO", "Romania"},
	{"SE", "Sweden"}, {"SI", "Slovenia"}, {"SK", "Slovakia"},
}

// SupportedCountries returns the EU member states ordered by code.
func SupportedCountries() []CountryInfo {
	out := make([]CountryInfo, len(supportedCountries))
	copy(out, supportedCountries)
	return out
}

func NewCountry(code string) (Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Country{}, errs.NewValueIsRequiredError("country")
	}
	if _, ok := CountryName(code); !ok {
		return Country{}, errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%s is not a supported country", code))
	}
	return Country{code: code}, nil
}

// CountryName resolves a supported code to its English name.
func CountryName(code string) (string, bool) {
	for _, c := range supportedCountries {
		if c.Code == code {
			return c.Name, true
		}
	}
	return "", false
}

func (c Country) Code() string {
	return c.code
}

func (c Country) Name() string {
	name, _ := CountryName(c.code)
	return name
}
