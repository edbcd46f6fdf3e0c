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

type RouteService struct {
	DB        *sql.DB
	RequestID string
}

func (s RouteService) routes() repositories.RouteRepo {
	return repositories.RouteRepo{DB: sharedDB(s.DB)}
}

func (s RouteService) cities() repositories.CityRepo {
	return repositories.CityRepo{DB: sharedDB(s.DB)}
}

func (s RouteService) List(ctx context.Context) ([]models.Route, error) {
	out, err := s.routes().List(ctx)
	return out, internal(err)
}

func (s RouteService) Get(ctx context.Context, id int64) (models.Route, error) {
	if err := validID("id", id); err != nil {
		return models.Route{}, err
	}
	r, err := s.routes().Get(ctx, id)
	return r, lookupErr("route", err)
}

// prepare validates the endpoints and resolves the city names.
func (s RouteService) prepare(ctx context.Context, in models.RouteInput, excludeID int64) (models.Route, error) {
	r := models.Route{
		FromCityID:    in.FromCityID,
		ToCityID:      in.ToCityID,
		Distance:      in.Distance,
		EstimatedTime: in.EstimatedTime,
		Description:   strings.TrimSpace(in.Description),
		PopularStops:  in.PopularStops,
	}
	if r.FromCityID == r.ToCityID {
		return r, domain.ValidationError{Field: "toCityId", Msg: "From and To cities cannot be the same"}
	}
	if !r.Distance.IsPositive() {
		return r, domain.ValidationError{Field: "distanceKm", Msg: "must be positive"}
	}
	if r.EstimatedTime.IsNegative() {
		return r, domain.ValidationError{Field: "estimatedHours", Msg: "must not be negative"}
	}

	from, err := s.cities().Get(ctx, r.FromCityID)
	if err != nil {
		return r, lookupErr("from city", err)
	}
	to, err := s.cities().Get(ctx, r.ToCityID)
	if err != nil {
		return r, lookupErr("to city", err)
	}
	r.FromCityName, r.ToCityName = from.Name, to.Name

	exists, err := s.routes().PairExists(ctx, r.FromCityID, r.ToCityID, excludeID)
	if err != nil {
		return r, internal(err)
	}
	if exists {
		return r, domain.ConflictError{Resource: "route", Msg: "A route between these cities already exists"}
	}
	return r, nil
}

func (s RouteService) Create(ctx context.Context, actor domain.RequestContext, in models.RouteInput) (models.Route, error) {
	r, err := s.prepare(ctx, in, 0)
	if err != nil {
		return models.Route{}, err
	}
	r.CreatedBy = actorName(actor)
	r.CreatedAt = utils.Now()
	r.IsActive = true
	id, err := s.routes().Create(ctx, r)
	if err != nil {
		return models.Route{}, writeErr("route", "route already exists", err)
	}
	r.ID = id
	utils.LogEvent(s.RequestID, "catalog", "create_route", fmt.Sprintf("route_id=%d %s->%s", id, r.FromCityName, r.ToCityName))
	return r, nil
}

func (s RouteService) Update(ctx context.Context, id int64, in models.RouteInput) (models.Route, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Route{}, err
	}
	r, err := s.prepare(ctx, in, id)
	if err != nil {
		return models.Route{}, err
	}
	r.ID = id
	r.CreatedBy = existing.CreatedBy
	r.CreatedAt = existing.CreatedAt
	r.IsActive = true
	if err := s.routes().Update(ctx, r); err != nil {
		return models.Route{}, writeErr("route", "route already exists", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "update_route", fmt.Sprintf("route_id=%d", id))
	return r, nil
}

func (s RouteService) Delete(ctx context.Context, id int64) error {
	if err := validID("id", id); err != nil {
		return err
	}
	if err := s.routes().SoftDelete(ctx, id); err != nil {
		return lookupErr("route", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_route", fmt.Sprintf("route_id=%d", id))
	return nil
}
