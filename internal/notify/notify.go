// Package notify turns action outcomes into user-facing notifications.
package notify

import (
	"errors"

	"github.com/ziadkadry99/mockweb/internal/generator"
)

// Level is the visual severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notification is a short message shown to the user after an action.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Success is shown after a completed generation.
func Success() Notification {
	return Notification{Level: LevelSuccess, Title: "¡Éxito!", Message: "Sitio web generado correctamente"}
}

// EmptyInput is shown when the description is blank.
func EmptyInput() Notification {
	return Notification{Level: LevelWarning, Title: "Error", Message: "Por favor, ingresa una descripción para generar el sitio web."}
}

// GenerationFailed is shown when the pipeline fails.
func GenerationFailed() Notification {
	return Notification{Level: LevelDanger, Title: "Error", Message: "Hubo un problema al generar el sitio web. Inténtalo de nuevo."}
}

// ComingSoon answers the customize action.
func ComingSoon() Notification {
	return Notification{Level: LevelInfo, Title: "Próximamente", Message: "La función de personalización estará disponible pronto"}
}

// ShareFallback is shown when the page link was copied instead of shared.
func ShareFallback() Notification {
	return Notification{Level: LevelInfo, Title: "Compartir", Message: "Enlace copiado al portapapeles"}
}

// ShareFailed is shown when the browser share sheet fails.
func ShareFailed() Notification {
	return Notification{Level: LevelDanger, Title: "Error", Message: "No se pudo compartir"}
}

// Copied is shown after the current source was copied.
func Copied() Notification {
	return Notification{Level: LevelSuccess, Title: "Copiado", Message: "El código se ha copiado al portapapeles"}
}

// CopyFailed is shown when the clipboard rejected the copy.
func CopyFailed() Notification {
	return Notification{Level: LevelDanger, Title: "Error", Message: "No se pudo copiar el código"}
}

// ClientSide lists the notifications raised by browser-only actions, keyed
// by the action outcome.
func ClientSide() map[string]Notification {
	return map[string]Notification{
		"copied":         Copied(),
		"copy_failed":    CopyFailed(),
		"share_fallback": ShareFallback(),
		"share_failed":   ShareFailed(),
	}
}

// FromError maps a failed action to its notification.
func FromError(err error) Notification {
	if errors.Is(err, generator.ErrEmptyInput) {
		return EmptyInput()
	}
	return GenerationFailed()
}
