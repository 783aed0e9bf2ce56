// Package policy decides which sources accompany a backend answer.
package policy

import (
	"strings"

	"github.com/pario-ai/ragchat/pkg/urlnorm"
)

// NotAvailableMessage is the backend's canonical "no answer" reply. Sources
// are never shown next to it.
const NotAvailableMessage = "Maaf, informasi mengenai hal tersebut tidak tersedia dalam data kami."

// Apply returns the answer to display and the sources to attach. A blank
// answer becomes NotAvailableMessage; a not-available answer drops all
// sources; anything else keeps its answer and gets deduplicated sources.
func Apply(answer string, sourceURLs []string) (string, []string) {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return NotAvailableMessage, []string{}
	}
	if trimmed == NotAvailableMessage {
		return answer, []string{}
	}
	return answer, urlnorm.Dedupe(sourceURLs)
}

// IsNotAvailable reports whether answer is the canonical not-available reply.
func IsNotAvailable(answer string) bool {
	return strings.TrimSpace(answer) == NotAvailableMessage
}
