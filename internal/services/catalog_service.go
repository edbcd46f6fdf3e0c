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

// CatalogService manages cabs and cities.
type CatalogService struct {
	DB        *sql.DB
	RequestID string
}

func (s CatalogService) cabs() repositories.CabRepo {
	return repositories.CabRepo{DB: sharedDB(s.DB)}
}

func (s CatalogService) cities() repositories.CityRepo {
	return repositories.CityRepo{DB: sharedDB(s.DB)}
}

// ListCabs accepts a status name or number; an unknown filter is ignored.
func (s CatalogService) ListCabs(ctx context.Context, statusFilter string) ([]models.Cab, error) {
	var status domain.CabStatus
	if strings.TrimSpace(statusFilter) != "" {
		if parsed, err := domain.ParseCabStatus(statusFilter); err == nil {
			status = parsed
		}
	}
	out, err := s.cabs().List(ctx, status)
	return out, internal(err)
}

func (s CatalogService) GetCab(ctx context.Context, id int64) (models.Cab, error) {
	if err := validID("id", id); err != nil {
		return models.Cab{}, err
	}
	c, err := s.cabs().Get(ctx, id)
	return c, lookupErr("cab", err)
}

func normalizeCab(in models.CabInput) (models.Cab, error) {
	c := models.Cab{
		Name:               strings.TrimSpace(in.Name),
		Type:               in.Type,
		Model:              strings.TrimSpace(in.Model),
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(in.RegistrationNumber)),
		Year:               in.Year,
		HasAC:              in.HasAC,
		SeatingCapacity:    in.SeatingCapacity,
		BasePricePerKM:     in.BasePricePerKM,
		Features:           in.Features,
		ImageURL:           strings.TrimSpace(in.ImageURL),
		Status:             in.Status,
		DriverID:           strings.TrimSpace(in.DriverID),
		DriverName:         strings.TrimSpace(in.DriverName),
		DriverPhone:        strings.TrimSpace(in.DriverPhone),
	}
	switch {
	case c.Name == "":
		return c, domain.ValidationError{Field: "name", Msg: "is required"}
	case !c.Type.Valid():
		return c, domain.ValidationError{Field: "type", Msg: "is required"}
	case c.RegistrationNumber == "":
		return c, domain.ValidationError{Field: "registrationNumber", Msg: "is required"}
	case c.SeatingCapacity <= 0:
		return c, domain.ValidationError{Field: "seatingCapacity", Msg: "must be positive"}
	case c.BasePricePerKM.IsNegative():
		return c, domain.ValidationError{Field: "basePricePerKm", Msg: "must not be negative"}
	}
	if c.Status == 0 {
		c.Status = domain.CabAvailable
	}
	if !c.Status.Valid() {
		return c, domain.ValidationError{Field: "status", Msg: "unknown cab status"}
	}
	return c, nil
}

func (s CatalogService) ensureRegistrationFree(ctx context.Context, reg string, excludeID int64) error {
	taken, err := s.cabs().RegistrationTaken(ctx, reg, excludeID)
	if err != nil {
		return internal(err)
	}
	if taken {
		return domain.ConflictError{Resource: "cab", Msg: "A cab with this registration number already exists"}
	}
	return nil
}

func (s CatalogService) CreateCab(ctx context.Context, actor domain.RequestContext, in models.CabInput) (models.Cab, error) {
	c, err := normalizeCab(in)
	if err != nil {
		return models.Cab{}, err
	}
	if err := s.ensureRegistrationFree(ctx, c.RegistrationNumber, 0); err != nil {
		return models.Cab{}, err
	}
	c.CreatedBy = actorName(actor)
	c.CreatedAt = utils.Now()
	c.IsActive = true

	id, err := s.cabs().Create(ctx, c)
	if err != nil {
		return models.Cab{}, writeErr("cab", "registration number already exists", err)
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "catalog", "create_cab", fmt.Sprintf("cab_id=%d reg=%s", id, c.RegistrationNumber))
	return c, nil
}

func (s CatalogService) UpdateCab(ctx context.Context, id int64, in models.CabInput) (models.Cab, error) {
	existing, err := s.GetCab(ctx, id)
	if err != nil {
		return models.Cab{}, err
	}
	c, err := normalizeCab(in)
	if err != nil {
		return models.Cab{}, err
	}
	if in.Status == 0 {
		c.Status = existing.Status
	}
	if err := s.ensureRegistrationFree(ctx, c.RegistrationNumber, id); err != nil {
		return models.Cab{}, err
	}
	c.ID = id
	c.CreatedBy = existing.CreatedBy
	c.CreatedAt = existing.CreatedAt
	c.IsActive = true
	if err := s.cabs().Update(ctx, c); err != nil {
		return models.Cab{}, writeErr("cab", "registration number already exists", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "update_cab", fmt.Sprintf("cab_id=%d", id))
	return c, nil
}

func (s CatalogService) DeleteCab(ctx context.Context, id int64) error {
	if err := validID("id", id); err != nil {
		return err
	}
	if err := s.cabs().SoftDelete(ctx, id); err != nil {
		return lookupErr("cab", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_cab", fmt.Sprintf("cab_id=%d", id))
	return nil
}

// ToggleCabStatus flips Available to Unavailable; any other status goes
// back to Available.
func (s CatalogService) ToggleCabStatus(ctx context.Context, id int64) (models.Cab, error) {
	c, err := s.GetCab(ctx, id)
	if err != nil {
		return models.Cab{}, err
	}
	next := domain.CabAvailable
	if c.Status == domain.CabAvailable {
		next = domain.CabUnavailable
	}
	if err := s.cabs().SetStatus(ctx, id, next); err != nil {
		return models.Cab{}, internal(err)
	}
	utils.LogEvent(s.RequestID, "catalog", "toggle_cab", fmt.Sprintf("cab_id=%d %s->%s", id, c.Status, next))
	c.Status = next
	return c, nil
}

func (s CatalogService) ListCities(ctx context.Context) ([]models.City, error) {
	out, err := s.cities().List(ctx)
	return out, internal(err)
}

func (s CatalogService) GetCity(ctx context.Context, id int64) (models.City, error) {
	if err := validID("id", id); err != nil {
		return models.City{}, err
	}
	c, err := s.cities().Get(ctx, id)
	return c, lookupErr("city", err)
}

func normalizeCity(in models.CityInput) (models.City, error) {
	c := models.City{
		Name:          utils.NormalizeSpace(in.Name),
		State:         utils.NormalizeSpace(in.State),
		Country:       utils.NormalizeSpace(in.Country),
		Description:   strings.TrimSpace(in.Description),
		ImageURL:      strings.TrimSpace(in.ImageURL),
		PopularPlaces: in.PopularPlaces,
		IsPopular:     in.IsPopular,
	}
	if c.Name == "" {
		return c, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if c.State == "" {
		return c, domain.ValidationError{Field: "state", Msg: "is required"}
	}
	if c.Country == "" {
		c.Country = "India"
	}
	return c, nil
}

func (s CatalogService) ensureCityFree(ctx context.Context, c models.City, excludeID int64) error {
	exists, err := s.cities().Exists(ctx, c.Name, c.State, excludeID)
	if err != nil {
		return internal(err)
	}
	if exists {
		return domain.ConflictError{Resource: "city", Msg: "A city with this name already exists in this state"}
	}
	return nil
}

func (s CatalogService) CreateCity(ctx context.Context, actor domain.RequestContext, in models.CityInput) (models.City, error) {
	c, err := normalizeCity(in)
	if err != nil {
		return models.City{}, err
	}
	if err := s.ensureCityFree(ctx, c, 0); err != nil {
		return models.City{}, err
	}
	c.CreatedBy = actorName(actor)
	c.CreatedAt = utils.Now()
	c.IsActive = true
	id, err := s.cities().Create(ctx, c)
	if err != nil {
		return models.City{}, writeErr("city", "city already exists", err)
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "catalog", "create_city", fmt.Sprintf("city_id=%d name=%s", id, c.Name))
	return c, nil
}

func (s CatalogService) UpdateCity(ctx context.Context, id int64, in models.CityInput) (models.City, error) {
	existing, err := s.GetCity(ctx, id)
	if err != nil {
		return models.City{}, err
	}
	c, err := normalizeCity(in)
	if err != nil {
		return models.City{}, err
	}
	if err := s.ensureCityFree(ctx, c, id); err != nil {
		return models.City{}, err
	}
	c.ID = id
	c.CreatedBy = existing.CreatedBy
	c.CreatedAt = existing.CreatedAt
	c.IsActive = true
	if err := s.cities().Update(ctx, c); err != nil {
		return models.City{}, writeErr("city", "city already exists", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "update_city", fmt.Sprintf("city_id=%d", id))
	return c, nil
}

func (s CatalogService) DeleteCity(ctx context.Context, id int64) error {
	if err := validID("id", id); err != nil {
		return err
	}
	if err := s.cities().SoftDelete(ctx, id); err != nil {
		return lookupErr("city", err)
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_city", fmt.Sprintf("city_id=%d", id))
	return nil
}
