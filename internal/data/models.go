package data

import "time"

// Category is a taxonomy node businesses attach to. The slug is unique and
// used for public URL routing.
type Category struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Slug            string    `db:"slug" json:"slug"`
	Icon            string    `db:"icon" json:"icon"`
	Color           string    `db:"color" json:"color"`
	BackgroundImage string    `db:"background_image" json:"backgroundImage,omitempty"`
	Active          bool      `db:"active" json:"active"`
	SortOrder       int       `db:"sort_order" json:"order"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Business is a published directory entry. Inactive businesses are hidden
// from public listings but kept in the admin view.
type Business struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Whatsapp    string    `db:"whatsapp" json:"whatsapp,omitempty"`
	Address     string    `db:"address" json:"address,omitempty"`
	Email       string    `db:"email" json:"email,omitempty"`
	Website     string    `db:"website" json:"website,omitempty"`
	Instagram   string    `db:"instagram" json:"instagram,omitempty"`
	Facebook    string    `db:"facebook" json:"facebook,omitempty"`
	JournalLink string    `db:"journal_link" json:"journalLink,omitempty"`
	CategoryID  int64     `db:"category_id" json:"categoryId"`
	ImageURL    string    `db:"image_url" json:"imageUrl,omitempty"`
	Featured    bool      `db:"featured" json:"featured"`
	Certified   bool      `db:"certified" json:"certified"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// BusinessRegistration is a self-service submission from a prospective
// advertiser, pending administrative review. Promotion converts it into a
// Business and deletes the registration row.
type BusinessRegistration struct {
	ID           int64     `db:"id" json:"id"`
	BusinessName string    `db:"business_name" json:"businessName"`
	CategoryID   int64     `db:"category_id" json:"categoryId"`
	Phone        string    `db:"phone" json:"phone"`
	Whatsapp     string    `db:"whatsapp" json:"whatsapp"`
	Address      string    `db:"address" json:"address"`
	Description  string    `db:"description" json:"description"`
	Instagram    string    `db:"instagram" json:"instagram,omitempty"`
	Facebook     string    `db:"facebook" json:"facebook,omitempty"`
	ContactEmail string    `db:"contact_email" json:"contactEmail,omitempty"`
	ImageURL     string    `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// SiteSettings is the singleton record holding site-wide copy text and
// contact/social configuration. Exactly one row (id=1) is ever read or
// written.
type SiteSettings struct {
	ID            int64     `db:"id" json:"id"`
	SiteName      string    `db:"site_name" json:"siteName"`
	Tagline       string    `db:"tagline" json:"tagline"`
	Headline      string    `db:"headline" json:"headline"`
	About         string    `db:"about" json:"about"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email"`
	Address       string    `db:"address" json:"address"`
	Whatsapp      string    `db:"whatsapp" json:"whatsapp"`
	Instagram     string    `db:"instagram" json:"instagram"`
	Facebook      string    `db:"facebook" json:"facebook"`
	FooterText    string    `db:"footer_text" json:"footerText"`
	AdvertiseCopy string    `db:"advertise_copy" json:"advertiseCopy"`
	Faq1Question  string    `db:"faq1_question" json:"faq1Question"`
	Faq1Answer    string    `db:"faq1_answer" json:"faq1Answer"`
	Faq2Question  string    `db:"faq2_question" json:"faq2Question"`
	Faq2Answer    string    `db:"faq2_answer" json:"faq2Answer"`
	Faq3Question  string    `db:"faq3_question" json:"faq3Question"`
	Faq3Answer    string    `db:"faq3_answer" json:"faq3Answer"`
	Faq4Question  string    `db:"faq4_question" json:"faq4Question"`
	Faq4Answer    string    `db:"faq4_answer" json:"faq4Answer"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// AuditEntry records one admin-invoked mutation for the audit trail.
type AuditEntry struct {
	ID         int64     `db:"id" json:"id"`
	Action     string    `db:"action" json:"action"`
	TableName  string    `db:"table_name" json:"tableName"`
	RecordID   int64     `db:"record_id" json:"recordId"`
	Actor      string    `db:"actor" json:"actor"`
	BeforeJSON string    `db:"before_json" json:"before,omitempty"`
	AfterJSON  string    `db:"after_json" json:"after,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
