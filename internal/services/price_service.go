package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories"
	"tours/internal/utils"
)

type PriceService struct {
	DB        *sql.DB
	RequestID string
}

func (s PriceService) prices() repositories.PriceRepo {
	return repositories.PriceRepo{DB: sharedDB(s.DB)}
}

func (s PriceService) List(ctx context.Context) ([]models.CabRoutePrice, error) {
	out, err := s.prices().List(ctx)
	return out, internal(err)
}

func (s PriceService) Get(ctx context.Context, id int64) (models.CabRoutePrice, error) {
	if err := validID("id", id); err != nil {
		return models.CabRoutePrice{}, err
	}
	p, err := s.prices().Get(ctx, id)
	return p, lookupErr("price", err)
}

// FormOptions lists what the price editor may reference.
func (s PriceService) FormOptions(ctx context.Context) (models.PriceFormOptions, error) {
	cabs, err := repositories.CabRepo{DB: sharedDB(s.DB)}.List(ctx, 0)
	if err != nil {
		return models.PriceFormOptions{}, internal(err)
	}
	routes, err := repositories.RouteRepo{DB: sharedDB(s.DB)}.List(ctx)
	if err != nil {
		return models.PriceFormOptions{}, internal(err)
	}
	return models.PriceFormOptions{
		Cabs:         cabs,
		Routes:       routes,
		JourneyTypes: domain.JourneyTypeOptions(),
	}, nil
}

func (s PriceService) prepare(ctx context.Context, in models.PriceInput, excludeID int64) (models.CabRoutePrice, error) {
	p := models.CabRoutePrice{
		CabID:              in.CabID,
		RouteID:            in.RouteID,
		JourneyType:        in.JourneyType,
		Price:              in.Price,
		IncludedServices:   in.IncludedServices,
		ExcludedServices:   in.ExcludedServices,
		ExtraCharges:       strings.TrimSpace(in.ExtraCharges),
		Notes:              strings.TrimSpace(in.Notes),
		TermsAndConditions: strings.TrimSpace(in.TermsAndConditions),
		IsAvailable:        true,
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if !p.JourneyType.Valid() {
		return p, domain.ValidationError{Field: "journeyType", Msg: "is required"}
	}
	if !p.Price.IsPositive() {
		return p, domain.ValidationError{Field: "price", Msg: "must be positive"}
	}

	cab, err := repositories.CabRepo{DB: sharedDB(s.DB)}.Get(ctx, p.CabID)
	if err != nil {
		return p, lookupErr("cab", err)
	}
	route, err := repositories.RouteRepo{DB: sharedDB(s.DB)}.Get(ctx, p.RouteID)
	if err != nil {
		return p, lookupErr("route", err)
	}
	p.Cab, p.Route = &cab, &route

	exists, err := s.prices().Exists(ctx, p.CabID, p.RouteID, p.JourneyType, excludeID)
	if err != nil {
		return p, internal(err)
	}
	if exists {
		return p, domain.ConflictError{Resource: "price", Msg: "Price for this cab, route and journey type already exists"}
	}
	return p, nil
}

func (s PriceService) Create(ctx context.Context, actor domain.RequestContext, in models.PriceInput) (models.CabRoutePrice, error) {
	p, err := s.prepare(ctx, in, 0)
	if err != nil {
		return models.CabRoutePrice{}, err
	}
	p.IsActive = true
	p.CreatedBy = actorName(actor)
	p.CreatedAt = utils.Now()
	id, err := s.prices().Create(ctx, p)
	if err != nil {
		return models.CabRoutePrice{}, writeErr("price", "price already exists", err)
	}
	p.ID = id
	utils.LogEvent(s.RequestID, "catalog", "create_price",
		fmt.Sprintf("price_id=%d cab_id=%d route_id=%d journey=%s", id, p.CabID, p.RouteID, p.JourneyType))
	return p, nil
}

func (s PriceService) Update(ctx context.Context, id int64, in models.PriceInput) (models.CabRoutePrice, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.CabRoutePrice{}, err
	}
	if in.IsAvailable == nil {
		in.IsAvailable = &existing.IsAvailable
	}
	p, err := s.prepare(ctx, in, id)
	if err != nil {
		return models.CabRoutePrice{}, err
	}
	p.ID = id
	p.IsActive = true
	p.CreatedBy = existing.CreatedBy
	p.CreatedAt = existing.CreatedAt
	if err := s.prices().Update(ctx, p); err != nil {
		return models.CabRoutePrice{}, writeErr("price", "price already exists", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "update_price", fmt.Sprintf("price_id=%d", id))
	return p, nil
}

func (s PriceService) Delete(ctx context.Context, id int64) error {
	if err := validID("id", id); err != nil {
		return err
	}
	if err := s.prices().SoftDelete(ctx, id); err != nil {
		return lookupErr("price", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_price", fmt.Sprintf("price_id=%d", id))
	return nil
}

func (s PriceService) ToggleAvailability(ctx context.Context, id int64) (models.CabRoutePrice, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.CabRoutePrice{}, err
	}
	p.IsAvailable = !p.IsAvailable
	if err := s.prices().SetAvailable(ctx, id, p.IsAvailable); err != nil {
		return models.CabRoutePrice{}, internal(err)
	}
	utils.LogEvent(s.RequestID, "catalog", "toggle_price", fmt.Sprintf("price_id=%d available=%t", id, p.IsAvailable))
	return p, nil
}
