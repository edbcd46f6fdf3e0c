package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	intconfig "tours/internal/config"
	"tours/internal/domain"
	"tours/internal/repositories/repotest"
)

func TestCabRepoListFiltersStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	intconfig.DB = db
	defer func() { intconfig.DB = nil }()

	mock.ExpectQuery(`FROM cabs c WHERE c.is_active = 1 AND c.status = \? ORDER BY c.name, c.status`).
		WithArgs(domain.CabMaintenance).
		WillReturnRows(repotest.CabRows(repotest.Cab{ID: 1, Status: domain.CabMaintenance, Features: `["AC","GPS"]`}))

	cabs, err := CabRepo{}.List(context.Background(), domain.CabMaintenance)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cabs) != 1 || cabs[0].Status != domain.CabMaintenance || len(cabs[0].Features) != 2 {
		t.Fatalf("unexpected cabs %+v", cabs)
	}

	mock.ExpectQuery(`FROM cabs c WHERE c.is_active = 1 ORDER BY`).
		WillReturnRows(repotest.CabRows())
	if _, err := (CabRepo{}).List(context.Background(), 0); err != nil {
		t.Fatalf("unfiltered list: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCabRepoRegistrationTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cabs WHERE UPPER\(registration_number\) = \?`).
		WithArgs("MH12AB1234", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	taken, err := CabRepo{DB: db}.RegistrationTaken(context.Background(), " mh12ab1234 ", 4)
	if err != nil || taken {
		t.Fatalf("expected free registration, got %v %v", taken, err)
	}
}

func TestSoftDeleteMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE cities SET is_active = 0`).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := (CityRepo{DB: db}).SoftDelete(context.Background(), 8); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRouteRepoFindByCityNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`LOWER\(fc.name\) = \? AND LOWER\(tc.name\) = \?`).
		WithArgs("pune", "mumbai").
		WillReturnRows(repotest.RouteRows(repotest.Route{ID: 3, FromID: 1, From: "Pune", ToID: 2, To: "Mumbai"}))

	rt, err := RouteRepo{DB: db}.FindByCityNames(context.Background(), " Pune", "MUMBAI ")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rt.ID != 3 || rt.FromCityName != "Pune" || rt.Distance.String() != "150" {
		t.Fatalf("unexpected route %+v", rt)
	}
}

func TestPriceRepoSearchBindsJourney(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cab := repotest.Cab{ID: 2, Name: "TOYOTA INNOVA", Seats: 7}
	route := repotest.Route{ID: 3, FromID: 1, From: "Pune", ToID: 2, To: "Mumbai"}
	mock.ExpectQuery(`WHERE p.route_id = \? AND p.is_active = 1 AND p.is_available = 1 AND c.is_active = 1 AND c.status = \? AND p.journey_type = \?`).
		WithArgs(int64(3), domain.CabAvailable, domain.JourneyOutstation).
		WillReturnRows(repotest.PriceRows(repotest.Price{ID: 10, Journey: domain.JourneyOutstation, Available: true, Cab: cab, Route: route}))

	prices, err := PriceRepo{DB: db}.Search(context.Background(), 3, domain.JourneyOutstation)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("expected one price, got %d", len(prices))
	}
	p := prices[0]
	if p.Cab == nil || p.Cab.SeatingCapacity != 7 || p.Route.ToCityName != "Mumbai" {
		t.Fatalf("joins not mapped: %+v", p)
	}
	if len(p.IncludedServices) != 2 || p.IncludedServices[0] != "Fuel" {
		t.Fatalf("services not mapped: %v", p.IncludedServices)
	}
}

func TestCabRepoFeaturedACOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`EXISTS \(SELECT 1 FROM cab_route_prices p .*\) AND c.has_ac = 1 ORDER BY c.seating_capacity DESC`).
		WithArgs(domain.CabAvailable, 4).
		WillReturnRows(repotest.CabRows(repotest.Cab{ID: 3, Name: "TOYOTA INNOVA", Seats: 7, HasAC: true}))

	cabs, err := CabRepo{DB: db}.Featured(context.Background(), 4, true)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(cabs) != 1 || cabs[0].SeatingCapacity != 7 || !cabs[0].HasAC {
		t.Fatalf("unexpected cabs %+v", cabs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCityRepoSuggestEscapesTerm(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM cities WHERE is_active = 1 AND name LIKE \? ORDER BY name LIMIT \?`).
		WithArgs(`%pu\_n%`, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Pune"))

	refs, err := CityRepo{DB: db}.Suggest(context.Background(), " pu_n ", 10)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "Pune" {
		t.Fatalf("unexpected refs %+v", refs)
	}

	mock.ExpectQuery(`FROM cities WHERE is_active = 1 AND is_popular = 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	refs, err = CityRepo{DB: db}.Available(context.Background())
	if err != nil || refs == nil || len(refs) != 0 {
		t.Fatalf("available must be an empty list, got %v %v", refs, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
