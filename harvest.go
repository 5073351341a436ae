// Package harvest fetches web pages, extracts structured fields from their
// HTML (contact details, social links, media, or e-commerce product
// attributes), and persists the result keyed by URL together with an
// append-only log of scrape attempts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package harvest
