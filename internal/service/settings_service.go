package service

import (
	"bytes"
	"context"
	"time"

	"go-directory-app/internal/data"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// SettingsRepository defines the persistence interface for the site settings
// singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*data.SiteSettings, error)
	Insert(ctx context.Context, settings *data.SiteSettings) error
	Update(ctx context.Context, settings *data.SiteSettings) error
}

// UpdateSettingsInput carries the partial fields of a settings save. Nil
// fields keep their stored values.
type UpdateSettingsInput struct {
	SiteName      *string `json:"siteName"`
	Tagline       *string `json:"tagline"`
	Headline      *string `json:"headline"`
	About         *string `json:"about"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	Whatsapp      *string `json:"whatsapp"`
	Instagram     *string `json:"instagram"`
	Facebook      *string `json:"facebook"`
	FooterText    *string `json:"footerText"`
	AdvertiseCopy *string `json:"advertiseCopy"`
	Faq1Question  *string `json:"faq1Question"`
	Faq1Answer    *string `json:"faq1Answer"`
	Faq2Question  *string `json:"faq2Question"`
	Faq2Answer    *string `json:"faq2Answer"`
	Faq3Question  *string `json:"faq3Question"`
	Faq3Answer    *string `json:"faq3Answer"`
	Faq4Question  *string `json:"faq4Question"`
	Faq4Answer    *string `json:"faq4Answer"`
}

// RenderedSettings is the public settings payload: the stored record plus
// the long-copy markdown fields rendered to sanitized HTML.
type RenderedSettings struct {
	data.SiteSettings
	FooterTextHTML    string `json:"footerTextHtml"`
	AdvertiseCopyHTML string `json:"advertiseCopyHtml"`
}

// SettingsService provides the site settings singleton with lazy default
// initialization and last-write-wins updates.
type SettingsService struct {
	repo     SettingsRepository
	audit    *AuditLogger
	markdown goldmark.Markdown
	// renderPolicy keeps basic formatting in rendered copy but strips
	// anything executable.
	renderPolicy *bluemonday.Policy
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo SettingsRepository, audit *AuditLogger) *SettingsService {
	return &SettingsService{
		repo:         repo,
		audit:        audit,
		markdown:     goldmark.New(),
		renderPolicy: bluemonday.UGCPolicy(),
	}
}

// Get returns the settings singleton, creating the default row on first
// read so callers always receive a fully populated record.
func (s *SettingsService) Get(ctx context.Context) (*data.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings()
		if err := s.repo.Insert(ctx, settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// GetRendered returns the settings singleton with the long-copy fields
// rendered from markdown to sanitized HTML (the public payload).
func (s *SettingsService) GetRendered(ctx context.Context) (*RenderedSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &RenderedSettings{
		SiteSettings:      *settings,
		FooterTextHTML:    s.render(settings.FooterText),
		AdvertiseCopyHTML: s.render(settings.AdvertiseCopy),
	}, nil
}

// Update merges the supplied fields onto the singleton and stamps the update
// time. Concurrent saves are last write wins.
func (s *SettingsService) Update(ctx context.Context, input UpdateSettingsInput, actor string) (*data.SiteSettings, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	before := *settings

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&settings.SiteName, input.SiteName)
	apply(&settings.Tagline, input.Tagline)
	apply(&settings.Headline, input.Headline)
	apply(&settings.About, input.About)
	apply(&settings.Phone, input.Phone)
	apply(&settings.Email, input.Email)
	apply(&settings.Address, input.Address)
	apply(&settings.Whatsapp, input.Whatsapp)
	apply(&settings.Instagram, input.Instagram)
	apply(&settings.Facebook, input.Facebook)
	apply(&settings.FooterText, input.FooterText)
	apply(&settings.AdvertiseCopy, input.AdvertiseCopy)
	apply(&settings.Faq1Question, input.Faq1Question)
	apply(&settings.Faq1Answer, input.Faq1Answer)
	apply(&settings.Faq2Question, input.Faq2Question)
	apply(&settings.Faq2Answer, input.Faq2Answer)
	apply(&settings.Faq3Question, input.Faq3Question)
	apply(&settings.Faq3Answer, input.Faq3Answer)
	apply(&settings.Faq4Question, input.Faq4Question)
	apply(&settings.Faq4Answer, input.Faq4Answer)
	settings.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "update", "site_settings", settings.ID, actor, before, settings)
	return settings, nil
}

// render converts markdown copy to sanitized HTML. A rendering failure falls
// back to the empty string rather than surfacing raw input.
func (s *SettingsService) render(source string) string {
	if source == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return s.renderPolicy.Sanitize(buf.String())
}

// defaultSettings is the record served before an administrator has ever
// saved the settings form.
func defaultSettings() *data.SiteSettings {
	return &data.SiteSettings{
		SiteName:      "Local Business Directory",
		Tagline:       "Find trusted businesses near you",
		Headline:      "Discover the best local businesses",
		About:         "A curated directory of local businesses, organized by category.",
		Phone:         "",
		Email:         "",
		Address:       "",
		Whatsapp:      "",
		Instagram:     "",
		Facebook:      "",
		FooterText:    "All rights reserved.",
		AdvertiseCopy: "Want your business listed? Fill in the registration form and our team will review your submission.",
		Faq1Question:  "How do I list my business?",
		Faq1Answer:    "Submit the registration form and our team will review it.",
		Faq2Question:  "Is listing free?",
		Faq2Answer:    "Contact us for current plans and conditions.",
		Faq3Question:  "How long does review take?",
		Faq3Answer:    "Most submissions are reviewed within a few business days.",
		Faq4Question:  "Can I update my listing later?",
		Faq4Answer:    "Yes, reach out through our contact channels with your changes.",
		UpdatedAt:     time.Now(),
	}
}
