package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var _ out.TranslatorPort = (*Translator)(nil)

// Translator переводит причины конфликтов по локали запроса.
// Неизвестная локаль откатывается на локаль по умолчанию, потом на английский.
type Translator struct {
	bundle        *i18n.Bundle
	defaultLocale string
	logger        out.LoggerPort
}

func NewTranslator(defaultLocale string, logger out.LoggerPort) (*Translator, error) {
	if defaultLocale == "" {
		defaultLocale = language.English.String()
	}
	if _, err := language.Parse(defaultLocale); err != nil {
		return nil, fmt.Errorf("i18n: parse default locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
		}
	}

	logger = logger.WithModule("Translator")
	logger.Info("i18n.locales.loaded", out.LogFields{
		"count":         len(entries),
		"defaultLocale": defaultLocale,
		"languages":     fmt.Sprint(bundle.LanguageTags()),
	})

	return &Translator{
		bundle:        bundle,
		defaultLocale: defaultLocale,
		logger:        logger,
	}, nil
}

func (t *Translator) DefaultLocale() string {
	return t.defaultLocale
}

func (t *Translator) ConflictReason(locale string, conflict domain.Conflict) string {
	messageID := "conflict.unknown"
	switch conflict.Kind {
	case domain.ConflictKindUnderstaffed:
		messageID = "conflict.understaffed"
	case domain.ConflictKindRoomShortage:
		messageID = "conflict.room_shortage"
	}

	return t.localize(locale, messageID, map[string]any{
		"Date":   conflict.Date.String(),
		"Time":   conflict.Time.String(),
		"Demand": conflict.Demand,
		"Supply": conflict.Supply,
	})
}

// locale может быть и заголовком Accept-Language целиком
func (t *Translator) localize(locale, messageID string, templateData map[string]any) string {
	localizer := i18n.NewLocalizer(t.bundle, locale, t.defaultLocale)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	})
	if err != nil {
		t.logger.Warn("i18n.localize.failed", out.LogFields{
			"locale":    locale,
			"messageId": messageID,
			"error":     err.Error(),
		})
		return messageID
	}
	return msg
}
