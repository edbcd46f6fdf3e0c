package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories"
	"tours/internal/utils"
)

const (
	popularCityLimit  = 8
	suggestionLimit   = 10
	featuredCabLimit  = 4
	similarPriceLimit = 3

	homeCityLimit  = 6
	homeCabLimit   = 4
	homeRouteLimit = 4
)

// SearchService backs the public catalog pages.
type SearchService struct {
	DB        *sql.DB
	RequestID string
}

func (s SearchService) db() *sql.DB { return sharedDB(s.DB) }

// Search resolves the route by city names and lists bookable prices.
func (s SearchService) Search(ctx context.Context, c models.SearchCriteria) (models.SearchResult, error) {
	c.FromCity = utils.NormalizeSpace(c.FromCity)
	c.ToCity = utils.NormalizeSpace(c.ToCity)
	if c.FromCity == "" || c.ToCity == "" {
		return models.SearchResult{}, domain.ValidationError{Field: "city", Msg: "Please select both cities"}
	}
	if c.TravelDate != "" {
		d, err := utils.ParseDate(c.TravelDate)
		if err != nil {
			return models.SearchResult{}, domain.ValidationError{Field: "travelDate", Msg: "expected YYYY-MM-DD"}
		}
		if d.Before(utils.Today()) {
			return models.SearchResult{}, domain.ValidationError{Field: "travelDate", Msg: "Travel date cannot be in the past"}
		}
	}

	route, err := repositories.RouteRepo{DB: s.db()}.FindByCityNames(ctx, c.FromCity, c.ToCity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SearchResult{}, domain.NotFoundError{Resource: "route", Msg: "No route found between selected cities", Err: err}
	}
	if err != nil {
		return models.SearchResult{}, internal(err)
	}

	prices, err := repositories.PriceRepo{DB: s.db()}.Search(ctx, route.ID, c.JourneyType)
	if err != nil {
		return models.SearchResult{}, internal(err)
	}
	utils.LogEvent(s.RequestID, "search", "search",
		fmt.Sprintf("from=%s to=%s journey=%s results=%d", c.FromCity, c.ToCity, c.JourneyType, len(prices)))
	return models.SearchResult{Criteria: c, Route: route, Results: prices}, nil
}

func (s SearchService) PopularCities(ctx context.Context) ([]models.City, error) {
	out, err := repositories.CityRepo{DB: s.db()}.Popular(ctx, popularCityLimit)
	return out, internal(err)
}

func (s SearchService) SuggestCities(ctx context.Context, term string) ([]models.CityRef, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.CityRef{}, nil
	}
	out, err := repositories.CityRepo{DB: s.db()}.Suggest(ctx, term, suggestionLimit)
	return out, internal(err)
}

func (s SearchService) AvailableCities(ctx context.Context) ([]models.CityRef, error) {
	out, err := repositories.CityRepo{DB: s.db()}.Available(ctx)
	return out, internal(err)
}

func (s SearchService) FeaturedCabs(ctx context.Context) ([]models.Cab, error) {
	out, err := repositories.CabRepo{DB: s.db()}.Featured(ctx, featuredCabLimit, false)
	return out, internal(err)
}

func (s SearchService) CabInfo(ctx context.Context, id int64) (models.Cab, error) {
	if err := validID("id", id); err != nil {
		return models.Cab{}, err
	}
	c, err := repositories.CabRepo{DB: s.db()}.Get(ctx, id)
	return c, lookupErr("cab", err)
}

// CabDetails loads a price with up to three alternatives on the same route.
func (s SearchService) CabDetails(ctx context.Context, priceID int64) (models.CabDetails, error) {
	if err := validID("id", priceID); err != nil {
		return models.CabDetails{}, err
	}
	prices := repositories.PriceRepo{DB: s.db()}
	p, err := prices.Get(ctx, priceID)
	if err != nil {
		return models.CabDetails{}, lookupErr("price", err)
	}
	similar, err := prices.Similar(ctx, p.RouteID, p.ID, similarPriceLimit)
	if err != nil {
		return models.CabDetails{}, internal(err)
	}
	return models.CabDetails{Price: p, Similar: similar}, nil
}

func (s SearchService) HomePage(ctx context.Context) (models.HomePage, error) {
	var h models.HomePage
	var err error
	if h.PopularCities, err = (repositories.CityRepo{DB: s.db()}).Popular(ctx, homeCityLimit); err != nil {
		return h, internal(err)
	}
	cabs := repositories.CabRepo{DB: s.db()}
	if h.FeaturedCabs, err = cabs.Featured(ctx, homeCabLimit, true); err != nil {
		return h, internal(err)
	}
	if h.PopularRoutes, err = (repositories.RouteRepo{DB: s.db()}).Popular(ctx, homeRouteLimit); err != nil {
		return h, internal(err)
	}
	if h.TotalCabs, err = cabs.Count(ctx, 0); err != nil {
		return h, internal(err)
	}
	counts, err := repositories.BookingRepo{DB: s.db()}.Counts(ctx, utils.Today())
	if err != nil {
		return h, internal(err)
	}
	h.TotalBookings = counts.Total
	return h, nil
}

func (s SearchService) AboutStats(ctx context.Context) (models.AboutStats, error) {
	var a models.AboutStats
	var err error
	if a.TotalCabs, err = (repositories.CabRepo{DB: s.db()}).Count(ctx, 0); err != nil {
		return a, internal(err)
	}
	if a.TotalCities, err = (repositories.CityRepo{DB: s.db()}).Count(ctx); err != nil {
		return a, internal(err)
	}
	bookings := repositories.BookingRepo{DB: s.db()}
	counts, err := bookings.Counts(ctx, utils.Today())
	if err != nil {
		return a, internal(err)
	}
	a.TotalBookings = counts.Total
	if a.SatisfiedCustomers, err = bookings.CompletedCustomers(ctx); err != nil {
		return a, internal(err)
	}
	return a, nil
}
