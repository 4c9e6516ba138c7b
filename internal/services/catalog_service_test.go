package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelloride/internal/domain"
	"yelloride/internal/domain/models"
	"yelloride/internal/repositories"
)

func TestCatalogList_PageClamping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM taxi_items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(250))
	// requested size 1000 clamps to the configured max
	mock.ExpectQuery("FROM taxi_items").
		WithArgs(100, 0).
		WillReturnRows(quoteRouteRows())

	svc := CatalogService{
		RouteRepo:       repositories.RouteRepository{DB: db},
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
	page, err := svc.List(models.RouteFilter{}, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, 250, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestCatalogMatch_RequiresBothEndpoints(t *testing.T) {
	svc := CatalogService{}
	_, err := svc.Match("", "Myeongdong", "eng", "")
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Match("Incheon Airport", " ", "eng", "")
	assert.True(t, domain.IsValidation(err))
}

func TestCatalogImport_Validates(t *testing.T) {
	svc := CatalogService{RouteRepo: repositories.RouteRepository{DB: nil}}

	_, err := svc.Import(context.Background(), nil)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Import(context.Background(), []models.RouteEntry{{DepartureKor: "A", ArrivalKor: "B"}})
	assert.True(t, domain.IsValidation(err), "missing region should be rejected")

	_, err = svc.Import(context.Background(), []models.RouteEntry{{Region: "seoul", ArrivalKor: "B"}})
	assert.True(t, domain.IsValidation(err), "missing departure should be rejected")
}

func TestCatalogImport_InsertsAndCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO taxi_items")
	mock.ExpectExec("INSERT INTO taxi_items").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := CatalogService{RouteRepo: repositories.RouteRepository{DB: db}}
	n, err := svc.Import(context.Background(), []models.RouteEntry{
		{Region: "seoul", DepartureKor: "인천공항", ArrivalKor: "명동"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM taxi_items").
		WillReturnResult(sqlmock.NewResult(0, 9))

	svc := CatalogService{RouteRepo: repositories.RouteRepository{DB: db}}
	n, err := svc.Clear(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 9, n)
}

func TestCatalogRegions_NilCachePassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM taxi_items ORDER BY priority").
		WillReturnRows(quoteRouteRows().
			AddRow(1, "seoul", "인천공항", "Incheon Airport", "Y", "명동", "Myeongdong", "", 20, 80, 1))

	svc := CatalogService{RouteRepo: repositories.RouteRepository{DB: db}}
	regions, err := svc.Regions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "seoul", regions[0].Region)
}
