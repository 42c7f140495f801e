// Package email builds RFC-2822 message envelopes for the Gmail raw-send API.
package email

import (
	"encoding/base64"
	"strings"

	"github.com/jobreach/jobreach/internal/model"
)

// Envelope renders a single-part plain-text RFC-2822 message with CRLF line
// endings. The From header is omitted when no sender address is known; Gmail
// then fills in the authenticated user's address.
func Envelope(msg model.OutboundMessage) string {
	headers := []string{
		"To: " + msg.To,
	}
	if msg.From != "" {
		headers = append(headers, "From: "+msg.From)
	}
	headers = append(headers,
		"Subject: "+msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		msg.Body,
	)
	return strings.Join(headers, "\r\n")
}

// EncodeRaw returns the envelope encoded the way Gmail's users.messages.send
// endpoint expects the Raw field: base64url without padding.
func EncodeRaw(msg model.OutboundMessage) string {
	return base64.RawURLEncoding.EncodeToString([]byte(Envelope(msg)))
}
