package paymentsetu

import (
	"strings"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"order_id":"1001","status":"success","amount":49900}`)
	secret := "sk_test_secret"
	timestamp := "1756600000"

	validSig := ComputeSignature(secret, timestamp, body)

	if !VerifySignature(body, timestamp, validSig, secret) {
		t.Fatalf("expected valid signature to verify")
	}
	if !VerifySignature(body, timestamp, strings.ToUpper(validSig), secret) {
		t.Fatalf("expected uppercase hex signature to verify")
	}
	if VerifySignature(body, timestamp, "deadbeef", secret) {
		t.Fatalf("expected wrong signature to fail")
	}
	if VerifySignature(body, timestamp, "not-hex", secret) {
		t.Fatalf("expected non-hex signature to fail")
	}
}

func TestVerifySignature_SingleBitMutations(t *testing.T) {
	body := []byte(`{"order_id":"1001","status":"success"}`)
	secret := "sk_test_secret"
	timestamp := "1756600000"
	validSig := ComputeSignature(secret, timestamp, body)

	mutatedBody := append([]byte(nil), body...)
	mutatedBody[0] ^= 0x01
	if VerifySignature(mutatedBody, timestamp, validSig, secret) {
		t.Fatalf("expected mutated body to fail verification")
	}

	if VerifySignature(body, "1756600001", validSig, secret) {
		t.Fatalf("expected mutated timestamp to fail verification")
	}

	mutatedSig := []byte(validSig)
	if mutatedSig[0] == '0' {
		mutatedSig[0] = '1'
	} else {
		mutatedSig[0] = '0'
	}
	if VerifySignature(body, timestamp, string(mutatedSig), secret) {
		t.Fatalf("expected mutated signature to fail verification")
	}
}

func TestVerifySignature_MissingInputs(t *testing.T) {
	body := []byte(`{}`)
	sig := ComputeSignature("secret", "1", body)

	if VerifySignature(body, "1", "", "secret") {
		t.Fatalf("expected empty signature to fail")
	}
	if VerifySignature(body, "", sig, "secret") {
		t.Fatalf("expected empty timestamp to fail")
	}
	if VerifySignature(body, "1", sig, "") {
		t.Fatalf("expected empty secret to fail")
	}
}

func TestComputeSignature_CoversTimestampAndBody(t *testing.T) {
	body := []byte(`{"a":1}`)
	if ComputeSignature("s", "1", body) == ComputeSignature("s", "2", body) {
		t.Fatalf("expected different timestamps to produce different signatures")
	}
	if ComputeSignature("s", "1", body) == ComputeSignature("s2", "1", body) {
		t.Fatalf("expected different secrets to produce different signatures")
	}
}
