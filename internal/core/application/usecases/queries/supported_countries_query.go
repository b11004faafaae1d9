package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrGetSupportedCountriesQueryIsNotConstructed = errors.New(
	"GetSupportedCountriesQuery must be created via NewGetSupportedCountriesQuery constructor",
)

type GetSupportedCountriesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetSupportedCountriesQuery() GetSupportedCountriesQuery {
	return GetSupportedCountriesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetSupportedCountriesQuery) Validate() error {
	return q.guard.Validate(ErrGetSupportedCountriesQueryIsNotConstructed)
}

type SupportedCountry struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// GetSupportedCountriesQueryHandler serves the static shipping destination list.
type GetSupportedCountriesQueryHandler struct {
	urls services.URLBuilder
}

func NewGetSupportedCountriesQueryHandler(urls services.URLBuilder) GetSupportedCountriesQueryHandler {
	return GetSupportedCountriesQueryHandler{urls: urls}
}

func (h GetSupportedCountriesQueryHandler) Handle(query GetSupportedCountriesQuery) ([]SupportedCountry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	countries := kernel.SupportedCountries()
	out := make([]SupportedCountry, 0, len(countries))
	for _, c := range countries {
		out = append(out, SupportedCountry{Code: c.Code, Name: c.Name, Flag: h.urls.Flag(c.Code)})
	}
	return out, nil
}
