// Package payment provides a deterministic, pure pseudo-gateway. It has no
// I/O and never fails on its own, so the booking engine never needs to
// compensate for simulator failures — only for the outcomes it reports.
package payment

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/Rajeswari195/kayak/internal/models"
)

// Charge runs the deterministic token-prefix rules against a charge request
// and returns its outcome. Rules, in order: tok_fail_* -> card_declined,
// tok_net_* -> network_error, amount <= 0 -> invalid_amount, else success.
func Charge(req *models.PaymentCharge) *models.PaymentOutcome {
	switch {
	case strings.HasPrefix(req.Token, "tok_fail_"):
		return declined("card_declined")
	case strings.HasPrefix(req.Token, "tok_net_"):
		return declined("network_error")
	case req.Amount <= 0:
		return declined("invalid_amount")
	default:
		raw, _ := json.Marshal(map[string]any{
			"status": "approved",
			"ts":     time.Now().UTC().Format(time.RFC3339),
		})
		return &models.PaymentOutcome{
			Success:     true,
			ProviderRef: randomRef(),
			RawResponse: raw,
		}
	}
}

func declined(errorType string) *models.PaymentOutcome {
	raw, _ := json.Marshal(map[string]any{"status": "declined", "reason": errorType})
	return &models.PaymentOutcome{
		Success:     false,
		ErrorType:   errorType,
		RawResponse: raw,
	}
}

func randomRef() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return "ch_" + hex.EncodeToString(buf)
}
