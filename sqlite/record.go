package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.RecordService = (*RecordService)(nil)

// RecordService implements harvest.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

const recordColumns = `url, title, excerpt, emails, phone_numbers, social_links, meta_info, headers,
	main_content, contact_info, images, links, content_hash, scrape_date, last_updated`

// UpsertRecord inserts the record or replaces every field of the existing
// record with the same URL. The stored scrape date of an existing record is
// kept; the record is updated in place with the persisted timestamps.
func (s *RecordService) UpsertRecord(ctx context.Context, rec *harvest.GeneralRecord) (harvest.UpsertStatus, error) {
	now := s.db.now()
	if rec.ScrapeDate.IsZero() {
		rec.ScrapeDate = now
	}
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = rec.ScrapeDate
	}
	rec.ScrapeDate = rec.ScrapeDate.UTC().Round(0)
	rec.LastUpdated = rec.LastUpdated.UTC().Round(0)
	if err := rec.Validate(); err != nil {
		return "", err
	}
	normalizeRecord(rec)
	rec.ContentHash = hashContent(strings.Join(rec.MainContent, "\n"))

	cols, err := encodeRecord(rec)
	if err != nil {
		return "", harvest.Errorf(harvest.EINVALID, "cannot encode record %s: %v", rec.URL, err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var scrapeDate string
	err = tx.QueryRowContext(ctx, "SELECT scrape_date FROM records WHERE url = ?", rec.URL).Scan(&scrapeDate)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (`+recordColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.URL, rec.Title, rec.Excerpt, cols.emails, cols.phones, cols.social, cols.meta, cols.headers,
			cols.content, cols.contact, cols.images, cols.links, rec.ContentHash,
			formatTime(rec.ScrapeDate), formatTime(rec.LastUpdated))
		if err != nil {
			return "", err
		}
		if err := tx.Commit(); err != nil {
			return "", err
		}
		return harvest.StatusInserted, nil
	case err != nil:
		return "", err
	}

	if stored := parseTime(scrapeDate); !stored.IsZero() {
		rec.ScrapeDate = stored
	}
	if rec.LastUpdated.Before(rec.ScrapeDate) {
		rec.LastUpdated = rec.ScrapeDate
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE records
		SET title = ?, excerpt = ?, emails = ?, phone_numbers = ?, social_links = ?, meta_info = ?,
			headers = ?, main_content = ?, contact_info = ?, images = ?, links = ?,
			content_hash = ?, last_updated = ?
		WHERE url = ?
	`, rec.Title, rec.Excerpt, cols.emails, cols.phones, cols.social, cols.meta,
		cols.headers, cols.content, cols.contact, cols.images, cols.links,
		rec.ContentHash, formatTime(rec.LastUpdated), rec.URL)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return harvest.StatusUpdated, nil
}

// FindRecordByURL retrieves the record stored for url.
func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*harvest.GeneralRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE url = ?", url)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "record not found: %s", url)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves every record, most recently updated first.
func (s *RecordService) FindRecords(ctx context.Context) ([]*harvest.GeneralRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+recordColumns+" FROM records ORDER BY last_updated DESC, url ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*harvest.GeneralRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*harvest.GeneralRecord, error) {
	var rec harvest.GeneralRecord
	var emails, phones, social, meta, headers, content, contact, images, links sql.NullString
	var scrapeDate, lastUpdated string

	if err := row.Scan(&rec.URL, &rec.Title, &rec.Excerpt, &emails, &phones, &social, &meta, &headers,
		&content, &contact, &images, &links, &rec.ContentHash, &scrapeDate, &lastUpdated); err != nil {
		return nil, err
	}

	rec.Emails = decodeSlice[string](emails)
	rec.PhoneNumbers = decodeSlice[string](phones)
	rec.SocialLinks = decodeMap[[]string](social)
	rec.MetaInfo = decodeMap[string](meta)
	rec.Headers = decodeHeaders(headers)
	rec.MainContent = decodeSlice[string](content)
	rec.ContactInfo = decodeContactInfo(contact)
	rec.Images = decodeSlice[harvest.Image](images)
	rec.Links = decodeSlice[harvest.Link](links)
	rec.ScrapeDate = parseTime(scrapeDate)
	rec.LastUpdated = parseTime(lastUpdated)
	return &rec, nil
}

type recordColumnValues struct {
	emails, phones, social, meta, headers, content, contact, images, links string
}

func encodeRecord(rec *harvest.GeneralRecord) (recordColumnValues, error) {
	var cols recordColumnValues
	fields := []struct {
		dst *string
		v   any
	}{
		{&cols.emails, rec.Emails},
		{&cols.phones, rec.PhoneNumbers},
		{&cols.social, rec.SocialLinks},
		{&cols.meta, rec.MetaInfo},
		{&cols.headers, rec.Headers},
		{&cols.content, rec.MainContent},
		{&cols.contact, rec.ContactInfo},
		{&cols.images, rec.Images},
		{&cols.links, rec.Links},
	}
	for _, f := range fields {
		s, err := encodeJSON(f.v)
		if err != nil {
			return cols, err
		}
		*f.dst = s
	}
	return cols, nil
}

// normalizeRecord replaces nil collections with empty ones so stored values
// decode back to the same shape.
func normalizeRecord(rec *harvest.GeneralRecord) {
	rec.Emails = nonNil(rec.Emails)
	rec.PhoneNumbers = nonNil(rec.PhoneNumbers)
	rec.SocialLinks = nonNilMap(rec.SocialLinks)
	rec.MetaInfo = nonNilMap(rec.MetaInfo)
	rec.Headers = nonNilMap(rec.Headers)
	for _, level := range harvest.HeaderLevels {
		rec.Headers[level] = nonNil(rec.Headers[level])
	}
	rec.MainContent = nonNil(rec.MainContent)
	rec.ContactInfo = normalizeContactInfo(rec.ContactInfo)
	rec.Images = nonNil(rec.Images)
	rec.Links = nonNil(rec.Links)
}
