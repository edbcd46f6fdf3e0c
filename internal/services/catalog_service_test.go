package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories/repotest"
)

var mysqlDuplicate = mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

func cabInput() models.CabInput {
	return models.CabInput{
		Name: "SWIFT DZIRE", Type: domain.CabTypeSedan, Model: "Dzire",
		RegistrationNumber: " mh12ab1234 ", Year: 2022, SeatingCapacity: 4,
	}
}

func TestCreateCabRejectsTakenRegistration(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cabs`).WithArgs("MH12AB1234", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err := CatalogService{DB: db}.CreateCab(context.Background(), admin, cabInput())
	require.True(t, domain.IsConflict(err), "got %v", err)
	assert.Contains(t, err.Error(), "A cab with this registration number already exists")
}

func TestCreateCabDefaultsToAvailable(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cabs`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO cabs`).WillReturnResult(sqlmock.NewResult(9, 1))

	c, err := CatalogService{DB: db}.CreateCab(context.Background(), admin, cabInput())
	require.NoError(t, err)
	assert.Equal(t, int64(9), c.ID)
	assert.Equal(t, domain.CabAvailable, c.Status)
	assert.Equal(t, "MH12AB1234", c.RegistrationNumber)
	assert.Equal(t, "admin", c.CreatedBy)
}

func TestCreateCabValidates(t *testing.T) {
	in := cabInput()
	in.SeatingCapacity = 0
	_, err := CatalogService{}.CreateCab(context.Background(), admin, in)
	assert.True(t, domain.IsValidation(err))
}

func TestGetCabNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM cabs`).WithArgs(int64(99)).WillReturnRows(repotest.CabRows())

	_, err := CatalogService{DB: db}.GetCab(context.Background(), 99)
	assert.True(t, domain.IsNotFound(err), "got %v", err)
}

func TestToggleCabStatus(t *testing.T) {
	cases := []struct {
		from, want domain.CabStatus
	}{
		{domain.CabAvailable, domain.CabUnavailable},
		{domain.CabUnavailable, domain.CabAvailable},
		{domain.CabBooked, domain.CabAvailable},
		{domain.CabMaintenance, domain.CabAvailable},
	}
	for _, tc := range cases {
		t.Run(tc.from.String(), func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectQuery(`FROM cabs c WHERE c.id = \?`).WithArgs(int64(2)).
				WillReturnRows(repotest.CabRows(repotest.Cab{ID: 2, Status: tc.from}))
			mock.ExpectExec(`UPDATE cabs SET status = \?`).WithArgs(tc.want, int64(2)).
				WillReturnResult(sqlmock.NewResult(0, 1))

			c, err := CatalogService{DB: db}.ToggleCabStatus(context.Background(), 2)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Status)
		})
	}
}

func TestCreateCityRejectsDuplicateInState(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cities WHERE LOWER\(name\) = \? AND LOWER\(state\) = \?`).
		WithArgs("pune", "maharashtra", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err := CatalogService{DB: db}.CreateCity(context.Background(), admin, models.CityInput{Name: "  Pune ", State: "Maharashtra"})
	require.True(t, domain.IsConflict(err), "got %v", err)
	assert.Contains(t, err.Error(), "A city with this name already exists in this state")
}

func TestUpdateCityExcludesItself(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM cities ci WHERE ci.id = \?`).WithArgs(int64(1)).
		WillReturnRows(repotest.CityRows(repotest.City{ID: 1, Name: "Pune", State: "Maharashtra"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cities`).WithArgs("pune", "maharashtra", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`UPDATE cities SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	c, err := CatalogService{DB: db}.UpdateCity(context.Background(), 1, models.CityInput{Name: "Pune", State: "Maharashtra", IsPopular: true})
	require.NoError(t, err)
	assert.Equal(t, "India", c.Country)
	assert.True(t, c.IsPopular)
}

func routeInput() models.RouteInput {
	return models.RouteInput{
		FromCityID: 1, ToCityID: 2,
		Distance: decimal.RequireFromString("150"), EstimatedTime: decimal.RequireFromString("3.5"),
	}
}

func TestCreateRouteRejectsDuplicatePair(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM cities ci WHERE ci.id = \?`).WithArgs(int64(1)).
		WillReturnRows(repotest.CityRows(repotest.City{ID: 1, Name: "Pune", State: "Maharashtra"}))
	mock.ExpectQuery(`FROM cities ci WHERE ci.id = \?`).WithArgs(int64(2)).
		WillReturnRows(repotest.CityRows(repotest.City{ID: 2, Name: "Mumbai", State: "Maharashtra"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM routes`).WithArgs(int64(1), int64(2), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err := RouteService{DB: db}.Create(context.Background(), admin, routeInput())
	require.True(t, domain.IsConflict(err), "got %v", err)
	assert.Contains(t, err.Error(), "A route between these cities already exists")
}

func TestCreateRouteRejectsInactiveCity(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM cities ci WHERE ci.id = \? AND ci.is_active = 1`).WithArgs(int64(1)).
		WillReturnRows(repotest.CityRows(repotest.City{ID: 1, Name: "Pune", State: "Maharashtra"}))
	// soft-deleted cities are filtered out by the active-only lookup
	mock.ExpectQuery(`FROM cities ci WHERE ci.id = \? AND ci.is_active = 1`).WithArgs(int64(2)).
		WillReturnRows(repotest.CityRows())

	_, err := RouteService{DB: db}.Create(context.Background(), admin, routeInput())
	require.True(t, domain.IsNotFound(err), "got %v", err)
	assert.Equal(t, "to city not found", err.Error())
}

func TestCreateRouteRejectsSameCity(t *testing.T) {
	_, err := RouteService{}.Create(context.Background(), admin, models.RouteInput{FromCityID: 3, ToCityID: 3})
	require.True(t, domain.IsValidation(err), "got %v", err)
	assert.Contains(t, err.Error(), "From and To cities cannot be the same")
}

func TestSearchUnknownRoute(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM routes r`).WithArgs("pune", "goa").WillReturnRows(repotest.RouteRows())

	_, err := SearchService{DB: db}.Search(context.Background(), models.SearchCriteria{FromCity: "Pune", ToCity: " Goa"})
	require.True(t, domain.IsNotFound(err), "got %v", err)
	assert.Equal(t, "No route found between selected cities", err.Error())
}

func TestSearchReturnsBookablePrices(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM routes r`).WithArgs("pune", "mumbai").
		WillReturnRows(repotest.RouteRows(repotest.Route{ID: 5, FromID: 1, From: "Pune", ToID: 2, To: "Mumbai"}))
	mock.ExpectQuery(priceQuery).WithArgs(int64(5), domain.CabAvailable, domain.JourneyOneWay).
		WillReturnRows(repotest.PriceRows(dzirePrice()))

	res, err := SearchService{DB: db}.Search(context.Background(), models.SearchCriteria{
		FromCity: "Pune", ToCity: "Mumbai", TravelDate: "2026-01-12", JourneyType: domain.JourneyOneWay,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Route.ID)
	require.Len(t, res.Results, 1)
	assert.Equal(t, int64(11), res.Results[0].ID)
}

func TestSearchRejectsPastDate(t *testing.T) {
	freezeClock(t)
	_, err := SearchService{}.Search(context.Background(), models.SearchCriteria{
		FromCity: "Pune", ToCity: "Mumbai", TravelDate: "2026-01-01",
	})
	assert.True(t, domain.IsValidation(err))
}
