package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/harvest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ harvest.ProductRecordService = (*ProductRecordService)(nil)

// ProductRecordService implements harvest.ProductRecordService using SQLite.
//
// Each scraped page has one row in product_pages and one row per accepted
// product in products.
type ProductRecordService struct {
	db *DB
}

// NewProductRecordService creates a new ProductRecordService.
func NewProductRecordService(db *DB) *ProductRecordService {
	return &ProductRecordService{db: db}
}

// UpsertProductRecord replaces the products stored for the record's URL.
// The earliest scrape date for the URL is kept.
func (s *ProductRecordService) UpsertProductRecord(ctx context.Context, rec *harvest.ProductRecord) (harvest.UpsertStatus, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	now := s.db.now()
	if rec.ScrapeDate.IsZero() {
		rec.ScrapeDate = now
	}
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = rec.ScrapeDate
	}
	rec.ScrapeDate = rec.ScrapeDate.UTC().Round(0)
	rec.LastUpdated = rec.LastUpdated.UTC().Round(0)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	status := harvest.StatusUpdated
	var scrapeDate string
	err = tx.QueryRowContext(ctx, "SELECT scrape_date FROM product_pages WHERE url = ?", rec.URL).Scan(&scrapeDate)
	switch {
	case err == sql.ErrNoRows:
		status = harvest.StatusInserted
	case err != nil:
		return "", err
	default:
		if stored := parseTime(scrapeDate); !stored.IsZero() && stored.Before(rec.ScrapeDate) {
			rec.ScrapeDate = stored
		}
	}
	if rec.LastUpdated.Before(rec.ScrapeDate) {
		rec.LastUpdated = rec.ScrapeDate
	}

	scraped, updated := formatTime(rec.ScrapeDate), formatTime(rec.LastUpdated)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO product_pages (url, scrape_date, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET scrape_date = excluded.scrape_date, last_updated = excluded.last_updated
	`, rec.URL, scraped, updated); err != nil {
		return "", err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE url = ?", rec.URL); err != nil {
		return "", err
	}

	for i, p := range rec.Products {
		p.Specifications = nonNilMap(p.Specifications)
		specs, err := encodeJSON(p.Specifications)
		if err != nil {
			return "", harvest.Errorf(harvest.EINVALID, "cannot encode specifications for %q: %v", p.Title, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, url, position, title, price, currency, rating, reviews_count,
				availability, image_url, seller, specifications, scrape_date, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), rec.URL, i, p.Title, *p.Price, p.Currency, p.Rating, p.ReviewsCount,
			p.Availability, p.ImageURL, p.Seller, specs, scraped, updated); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return status, nil
}

// FindProductRecordByURL retrieves the products stored for url.
func (s *ProductRecordService) FindProductRecordByURL(ctx context.Context, url string) (*harvest.ProductRecord, error) {
	var rec harvest.ProductRecord
	var scrapeDate, lastUpdated string

	err := s.db.QueryRowContext(ctx, `
		SELECT url, scrape_date, last_updated FROM product_pages WHERE url = ?
	`, url).Scan(&rec.URL, &scrapeDate, &lastUpdated)
	if err == sql.ErrNoRows {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "product record not found: %s", url)
	}
	if err != nil {
		return nil, err
	}
	rec.ScrapeDate = parseTime(scrapeDate)
	rec.LastUpdated = parseTime(lastUpdated)

	if rec.Products, err = s.findProducts(ctx, url); err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindProductRecords retrieves every product record, most recently updated first.
func (s *ProductRecordService) FindProductRecords(ctx context.Context) ([]*harvest.ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, scrape_date, last_updated FROM product_pages ORDER BY last_updated DESC, url ASC
	`)
	if err != nil {
		return nil, err
	}

	recs := []*harvest.ProductRecord{}
	for rows.Next() {
		var rec harvest.ProductRecord
		var scrapeDate, lastUpdated string
		if err := rows.Scan(&rec.URL, &scrapeDate, &lastUpdated); err != nil {
			rows.Close()
			return nil, err
		}
		rec.ScrapeDate = parseTime(scrapeDate)
		rec.LastUpdated = parseTime(lastUpdated)
		recs = append(recs, &rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The pool holds a single connection, so the page rows must be released
	// before products are queried.
	rows.Close()

	for _, rec := range recs {
		if rec.Products, err = s.findProducts(ctx, rec.URL); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *ProductRecordService) findProducts(ctx context.Context, url string) ([]*harvest.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, price, currency, rating, reviews_count, availability, image_url, seller, specifications
		FROM products
		WHERE url = ?
		ORDER BY position ASC
	`, url)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*harvest.Product{}
	for rows.Next() {
		var p harvest.Product
		var price float64
		var rating sql.NullFloat64
		var specs sql.NullString
		if err := rows.Scan(&p.Title, &price, &p.Currency, &rating, &p.ReviewsCount,
			&p.Availability, &p.ImageURL, &p.Seller, &specs); err != nil {
			return nil, err
		}
		p.Price = &price
		if rating.Valid {
			r := rating.Float64
			p.Rating = &r
		}
		p.Specifications = decodeMap[string](specs)
		products = append(products, &p)
	}
	return products, rows.Err()
}
