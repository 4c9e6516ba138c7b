package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelloride/internal/domain"
	"yelloride/internal/domain/models"
)

func routeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "region",
		"departure_kor", "departure_eng", "departure_is_airport",
		"arrival_kor", "arrival_eng", "arrival_is_airport",
		"reservation_fee", "local_payment_fee", "priority",
	})
}

func TestRouteList_Paginated(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM taxi_items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery("SELECT (.+) FROM taxi_items WHERE 1=1 AND region=\\? ORDER BY priority").
		WithArgs("seoul", 20, 0).
		WillReturnRows(routeRows().
			AddRow(1, "seoul", "인천공항", "Incheon Airport", "Y", "명동", "Myeongdong", "", 20, 80, 1).
			AddRow(2, "seoul", "명동", "Myeongdong", "", "인천공항", "Incheon Airport", "Y", 20, 80, 2))

	repo := RouteRepository{DB: db}
	items, total, err := repo.List(models.RouteFilter{Region: "seoul"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Incheon Airport", items[0].DepartureEng)
	assert.True(t, items[0].HasAirport())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteMatch_LanguageColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("departure_eng=\\? AND arrival_eng=\\?").
		WithArgs("Incheon Airport", "Myeongdong").
		WillReturnRows(routeRows().
			AddRow(1, "seoul", "인천공항", "Incheon Airport", "Y", "명동", "Myeongdong", "", 20, 80, 1))

	repo := RouteRepository{DB: db}
	route, err := repo.MatchRoute(" Incheon Airport ", "Myeongdong", "eng", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, route.ID)
	assert.Equal(t, 20.0, route.ReservationFee)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteMatch_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("departure_kor=\\? AND arrival_kor=\\?").
		WithArgs("어디", "저기").
		WillReturnRows(routeRows())

	repo := RouteRepository{DB: db}
	_, err = repo.MatchRoute("어디", "저기", "kor", "")
	assert.True(t, domain.IsNotFound(err))
}

func TestRouteMatch_RegionNarrowed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("departure_kor=\\? AND arrival_kor=\\? AND region=\\?").
		WithArgs("인천공항", "명동", "seoul").
		WillReturnRows(routeRows().
			AddRow(3, "seoul", "인천공항", "Incheon Airport", "Y", "명동", "Myeongdong", "", 20, 80, 1))

	repo := RouteRepository{DB: db}
	route, err := repo.MatchRoute("인천공항", "명동", "kor", "seoul")
	require.NoError(t, err)
	assert.EqualValues(t, 3, route.ID)
}

func TestRouteList_SortByFee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery("ORDER BY reservation_fee\\+local_payment_fee ASC").
		WithArgs(20, 0).
		WillReturnRows(routeRows().
			AddRow(1, "seoul", "인천공항", "Incheon Airport", "Y", "명동", "Myeongdong", "", 20, 75, 2))

	repo := RouteRepository{DB: db}
	items, _, err := repo.List(models.RouteFilter{Sort: "fee"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestRouteRegions_GroupsAirportsFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM taxi_items ORDER BY priority").
		WillReturnRows(routeRows().
			AddRow(1, "seoul", "인천공항", "Incheon Airport", "Y", "명동", "Myeongdong", "", 20, 80, 1).
			AddRow(2, "seoul", "김포공항", "Gimpo Airport", "Y", "명동", "Myeongdong", "", 15, 60, 2).
			AddRow(3, "jeju", "제주공항", "Jeju Airport", "Y", "서귀포", "Seogwipo", "", 10, 50, 1))

	repo := RouteRepository{DB: db}
	regions, err := repo.Regions()
	require.NoError(t, err)
	require.Len(t, regions, 2)

	seoul := regions[0]
	assert.Equal(t, "seoul", seoul.Region)
	assert.Len(t, seoul.Airports, 2)
	// the duplicated Myeongdong arrival collapses to one place
	assert.Len(t, seoul.Places, 1)

	assert.Equal(t, "jeju", regions[1].Region)
}

func TestRouteStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT region, COUNT\\(\\*\\) FROM taxi_items GROUP BY region").
		WillReturnRows(sqlmock.NewRows([]string{"region", "count"}).
			AddRow("seoul", 12).
			AddRow("jeju", 5))

	repo := RouteRepository{DB: db}
	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 17, stats.TotalRoutes)
	require.Len(t, stats.Regions, 2)
	assert.Equal(t, "seoul", stats.Regions[0].Region)
}

func TestRouteBulkInsert_Transactional(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO taxi_items")
	mock.ExpectExec("INSERT INTO taxi_items").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO taxi_items").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := RouteRepository{DB: db}
	n, err := repo.BulkInsert([]models.RouteEntry{
		{Region: "seoul", DepartureKor: "인천공항", ArrivalKor: "명동", ReservationFee: 20, LocalPaymentFee: 80},
		{Region: "seoul", DepartureKor: "김포공항", ArrivalKor: "명동", ReservationFee: 15, LocalPaymentFee: 60},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteBulkInsert_Empty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := RouteRepository{DB: db}
	n, err := repo.BulkInsert(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRouteDeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM taxi_items").
		WillReturnResult(sqlmock.NewResult(0, 17))

	repo := RouteRepository{DB: db}
	n, err := repo.DeleteAll()
	require.NoError(t, err)
	assert.EqualValues(t, 17, n)
}
