package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories/repotest"
)

func priceInput() models.PriceInput {
	return models.PriceInput{
		CabID: 2, RouteID: 5, JourneyType: domain.JourneyOneWay,
		Price: decimal.RequireFromString("2500"), ExtraCharges: "  Toll extra ",
	}
}

func expectPriceRefs(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM cabs c`).WithArgs(int64(2)).WillReturnRows(repotest.CabRows(repotest.Cab{ID: 2}))
	mock.ExpectQuery(`FROM routes r`).WithArgs(int64(5)).
		WillReturnRows(repotest.RouteRows(repotest.Route{ID: 5, FromID: 1, From: "Pune", ToID: 2, To: "Mumbai"}))
}

func TestCreatePriceRejectsDuplicate(t *testing.T) {
	db, mock := newMock(t)
	expectPriceRefs(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cab_route_prices`).
		WithArgs(int64(2), int64(5), domain.JourneyOneWay, int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err := PriceService{DB: db}.Create(context.Background(), admin, priceInput())
	require.True(t, domain.IsConflict(err), "got %v", err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreatePriceHonoursAvailability(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	expectPriceRefs(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cab_route_prices`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO cab_route_prices`).WillReturnResult(sqlmock.NewResult(31, 1))

	in := priceInput()
	off := false
	in.IsAvailable = &off
	p, err := PriceService{DB: db}.Create(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, int64(31), p.ID)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, "Toll extra", p.ExtraCharges)
	require.NotNil(t, p.Route)
	assert.Equal(t, "Mumbai", p.Route.ToCityName)
}

func TestCreatePriceRequiresPositiveAmount(t *testing.T) {
	in := priceInput()
	in.Price = decimal.Zero
	_, err := PriceService{}.Create(context.Background(), admin, in)
	assert.True(t, domain.IsValidation(err))
}

func TestTogglePriceAvailability(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(priceQuery).WithArgs(int64(11)).WillReturnRows(repotest.PriceRows(dzirePrice()))
	mock.ExpectExec(`UPDATE cab_route_prices SET is_available`).WithArgs(false, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, err := PriceService{DB: db}.ToggleAvailability(context.Background(), 11)
	require.NoError(t, err)
	assert.False(t, p.IsAvailable)
}
