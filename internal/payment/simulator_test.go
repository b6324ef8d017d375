package payment

import (
	"testing"

	"github.com/Rajeswari195/kayak/internal/models"
)

func TestChargeDeclinesCardOnFailPrefix(t *testing.T) {
	out := Charge(&models.PaymentCharge{Amount: 100, Token: "tok_fail_abc"})
	if out.Success {
		t.Fatal("expected decline")
	}
	if out.ErrorType != "card_declined" {
		t.Fatalf("expected card_declined, got %s", out.ErrorType)
	}
}

func TestChargeDeclinesNetworkOnNetPrefix(t *testing.T) {
	out := Charge(&models.PaymentCharge{Amount: 100, Token: "tok_net_abc"})
	if out.Success {
		t.Fatal("expected decline")
	}
	if out.ErrorType != "network_error" {
		t.Fatalf("expected network_error, got %s", out.ErrorType)
	}
}

func TestChargeRejectsNonPositiveAmount(t *testing.T) {
	out := Charge(&models.PaymentCharge{Amount: 0, Token: "tok_ok"})
	if out.Success {
		t.Fatal("expected decline")
	}
	if out.ErrorType != "invalid_amount" {
		t.Fatalf("expected invalid_amount, got %s", out.ErrorType)
	}
}

func TestChargeSucceedsOnPlainToken(t *testing.T) {
	out := Charge(&models.PaymentCharge{Amount: 100, Token: "tok_ok"})
	if !out.Success {
		t.Fatal("expected success")
	}
	if out.ProviderRef == "" {
		t.Fatal("expected a provider reference")
	}
	if out.ErrorType != "" {
		t.Fatalf("expected no error type, got %s", out.ErrorType)
	}
}

func TestChargeIsDeterministicAcrossCalls(t *testing.T) {
	req := &models.PaymentCharge{Amount: 100, Token: "tok_fail_xyz"}
	a := Charge(req)
	b := Charge(req)
	if a.Success != b.Success || a.ErrorType != b.ErrorType {
		t.Fatal("expected identical outcome shape across repeated calls")
	}
}
