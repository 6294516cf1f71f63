//go:build integration

package data

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// testSchema mirrors the MySQL migrations in SQLite dialect for fast,
// isolated repository tests.
const testSchema = `
CREATE TABLE categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	icon TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	background_image TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE businesses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	whatsapp TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	instagram TEXT NOT NULL DEFAULT '',
	facebook TEXT NOT NULL DEFAULT '',
	journal_link TEXT NOT NULL DEFAULT '',
	category_id INTEGER NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	featured INTEGER NOT NULL DEFAULT 0,
	certified INTEGER NOT NULL DEFAULT 0,
	active INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE business_registrations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	business_name TEXT NOT NULL,
	category_id INTEGER NOT NULL,
	phone TEXT NOT NULL,
	whatsapp TEXT NOT NULL,
	address TEXT NOT NULL,
	description TEXT NOT NULL,
	instagram TEXT NOT NULL DEFAULT '',
	facebook TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE site_settings (
	id INTEGER PRIMARY KEY,
	site_name TEXT NOT NULL DEFAULT '',
	tagline TEXT NOT NULL DEFAULT '',
	headline TEXT NOT NULL DEFAULT '',
	about TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	whatsapp TEXT NOT NULL DEFAULT '',
	instagram TEXT NOT NULL DEFAULT '',
	facebook TEXT NOT NULL DEFAULT '',
	footer_text TEXT NOT NULL DEFAULT '',
	advertise_copy TEXT NOT NULL DEFAULT '',
	faq1_question TEXT NOT NULL DEFAULT '',
	faq1_answer TEXT NOT NULL DEFAULT '',
	faq2_question TEXT NOT NULL DEFAULT '',
	faq2_answer TEXT NOT NULL DEFAULT '',
	faq3_question TEXT NOT NULL DEFAULT '',
	faq3_answer TEXT NOT NULL DEFAULT '',
	faq4_question TEXT NOT NULL DEFAULT '',
	faq4_answer TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	action TEXT NOT NULL,
	table_name TEXT NOT NULL,
	record_id INTEGER NOT NULL,
	actor TEXT NOT NULL DEFAULT '',
	before_json TEXT NOT NULL DEFAULT '',
	after_json TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
`

// newTestDB creates a new in-memory SQLite database with the directory
// schema. It returns the connection and a teardown function to be deferred.
func newTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	// Use a non-shared in-memory database for complete test isolation.
	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	// A single connection keeps every statement on the same in-memory DB.
	db.SetMaxOpenConns(1)
	db.MustExec(testSchema)

	teardown := func() {
		db.Close()
	}
	return db, teardown
}
