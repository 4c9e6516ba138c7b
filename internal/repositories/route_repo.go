package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "yelloride/internal/config"
	"yelloride/internal/domain"
	"yelloride/internal/domain/models"
)

// RouteRepository reads and writes the taxi route catalog.
type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const routeColumns = `id, region,
	COALESCE(departure_kor,''), COALESCE(departure_eng,''), COALESCE(departure_is_airport,''),
	COALESCE(arrival_kor,''), COALESCE(arrival_eng,''), COALESCE(arrival_is_airport,''),
	COALESCE(reservation_fee,0), COALESCE(local_payment_fee,0), COALESCE(priority,0)`

func scanRoute(row interface{ Scan(...any) error }) (models.RouteEntry, error) {
	var e models.RouteEntry
	err := row.Scan(
		&e.ID, &e.Region,
		&e.DepartureKor, &e.DepartureEng, &e.DepartureIsAirport,
		&e.ArrivalKor, &e.ArrivalEng, &e.ArrivalIsAirport,
		&e.ReservationFee, &e.LocalPaymentFee, &e.Priority,
	)
	return e, err
}

// List returns one page of the catalog plus the unpaginated total.
func (r RouteRepository) List(filter models.RouteFilter, page, pageSize int) ([]models.RouteEntry, int, error) {
	db := r.db()
	if db == nil {
		return nil, 0, domain.InternalError{Msg: "database not available"}
	}
	if page < 1 {
		page = 1
	}

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(filter.Region); s != "" {
		where = append(where, "region=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(filter.Departure); s != "" {
		where = append(where, "(departure_kor=? OR departure_eng=?)")
		args = append(args, s, s)
	}
	if s := strings.TrimSpace(filter.Arrival); s != "" {
		where = append(where, "(arrival_kor=? OR arrival_eng=?)")
		args = append(args, s, s)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM taxi_items WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "priority ASC, id ASC"
	switch strings.TrimSpace(filter.Sort) {
	case "region":
		order = "region ASC, " + order
	case "fee":
		order = "reservation_fee+local_payment_fee ASC, id ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM taxi_items WHERE %s ORDER BY %s LIMIT ? OFFSET ?`, routeColumns, cond, order)
	rows, err := db.Query(query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.RouteEntry{}
	for rows.Next() {
		e, err := scanRoute(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

// ListAll returns the whole catalog in priority order.
func (r RouteRepository) ListAll() ([]models.RouteEntry, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not available"}
	}
	rows, err := db.Query(`SELECT ` + routeColumns + ` FROM taxi_items ORDER BY priority ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.RouteEntry{}
	for rows.Next() {
		e, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// MatchRoute resolves a (departure, arrival) pair against the catalog in the
// given language, optionally narrowed to a region. Ties resolve by priority
// then id, so the first-priority entry always wins.
func (r RouteRepository) MatchRoute(departure, arrival, lang, region string) (*models.RouteEntry, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not available"}
	}

	depCol, arrCol := "departure_kor", "arrival_kor"
	if strings.EqualFold(strings.TrimSpace(lang), "eng") {
		depCol, arrCol = "departure_eng", "arrival_eng"
	}

	where := []string{depCol + "=?", arrCol + "=?"}
	args := []any{strings.TrimSpace(departure), strings.TrimSpace(arrival)}
	if s := strings.TrimSpace(region); s != "" {
		where = append(where, "region=?")
		args = append(args, s)
	}

	query := fmt.Sprintf(`SELECT %s FROM taxi_items WHERE %s ORDER BY priority ASC, id ASC LIMIT 1`,
		routeColumns, strings.Join(where, " AND "))
	e, err := scanRoute(db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Departures lists the distinct departure places, optionally within a region.
func (r RouteRepository) Departures(region string) ([]models.Place, error) {
	return r.places("departure", region, "")
}

// Arrivals lists the distinct arrival places reachable from a departure.
func (r RouteRepository) Arrivals(region, departure string) ([]models.Place, error) {
	return r.places("arrival", region, departure)
}

func (r RouteRepository) places(side, region, departure string) ([]models.Place, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not available"}
	}

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(region); s != "" {
		where = append(where, "region=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(departure); s != "" {
		where = append(where, "(departure_kor=? OR departure_eng=?)")
		args = append(args, s, s)
	}

	query := fmt.Sprintf(`SELECT DISTINCT COALESCE(%[1]s_kor,''), COALESCE(%[1]s_eng,''), COALESCE(%[1]s_is_airport,'')
		FROM taxi_items WHERE %[2]s ORDER BY %[1]s_kor ASC`, side, strings.Join(where, " AND "))
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.NameKor, &p.NameEng, &p.IsAirport); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// Regions groups every distinct place by region, airports listed first.
func (r RouteRepository) Regions() ([]models.RegionSummary, error) {
	items, err := r.ListAll()
	if err != nil {
		return nil, err
	}

	order := []string{}
	byRegion := map[string]*models.RegionSummary{}
	seen := map[string]bool{}

	add := func(region string, p models.Place) {
		sum, ok := byRegion[region]
		if !ok {
			sum = &models.RegionSummary{Region: region, Airports: []models.Place{}, Places: []models.Place{}}
			byRegion[region] = sum
			order = append(order, region)
		}
		key := region + "\x00" + p.NameKor + "\x00" + p.NameEng
		if seen[key] {
			return
		}
		seen[key] = true
		if p.IsAirport == "Y" {
			sum.Airports = append(sum.Airports, p)
		} else {
			sum.Places = append(sum.Places, p)
		}
	}

	for _, it := range items {
		add(it.Region, models.Place{NameKor: it.DepartureKor, NameEng: it.DepartureEng, IsAirport: it.DepartureIsAirport})
		add(it.Region, models.Place{NameKor: it.ArrivalKor, NameEng: it.ArrivalEng, IsAirport: it.ArrivalIsAirport})
	}

	out := make([]models.RegionSummary, 0, len(order))
	for _, region := range order {
		out = append(out, *byRegion[region])
	}
	return out, nil
}

// Stats returns the total route count and a per-region breakdown.
func (r RouteRepository) Stats() (models.CatalogStats, error) {
	db := r.db()
	if db == nil {
		return models.CatalogStats{}, domain.InternalError{Msg: "database not available"}
	}

	stats := models.CatalogStats{Regions: []models.RegionCount{}}
	rows, err := db.Query(`SELECT region, COUNT(*) FROM taxi_items GROUP BY region ORDER BY COUNT(*) DESC, region ASC`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var rc models.RegionCount
		if err := rows.Scan(&rc.Region, &rc.Count); err != nil {
			return stats, err
		}
		stats.Regions = append(stats.Regions, rc)
		stats.TotalRoutes += rc.Count
	}
	return stats, rows.Err()
}

// BulkInsert appends catalog entries and reports how many were written.
func (r RouteRepository) BulkInsert(items []models.RouteEntry) (int, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "database not available"}
	}
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO taxi_items
		(region, departure_kor, departure_eng, departure_is_airport,
		 arrival_kor, arrival_eng, arrival_is_airport,
		 reservation_fee, local_payment_fee, priority)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, it := range items {
		if _, err := stmt.Exec(
			it.Region, it.DepartureKor, it.DepartureEng, it.DepartureIsAirport,
			it.ArrivalKor, it.ArrivalEng, it.ArrivalIsAirport,
			it.ReservationFee, it.LocalPaymentFee, it.Priority,
		); err != nil {
			return 0, err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAll clears the catalog and reports how many rows went away.
func (r RouteRepository) DeleteAll() (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "database not available"}
	}
	res, err := db.Exec(`DELETE FROM taxi_items`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
