package out

import "github.com/suchimauz/staff-roster-scheduler/internal/core/domain"

type TranslatorPort interface {
	// Текст причины конфликта на нужном языке, пустая локаль значит локаль по умолчанию
	ConflictReason(locale string, conflict domain.Conflict) string
}
