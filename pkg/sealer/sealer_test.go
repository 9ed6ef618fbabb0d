package sealer

import "testing"

func TestMeetingTokenRoundTrip(t *testing.T) {
	apptID := "64f1a2b3c4d5e6f7a8b9c0d1"
	vetID := "64f1a2b3c4d5e6f7a8b9c0d2"

	token, err := CreateMeetingToken(apptID, vetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	gotAppt, gotVet, err := ParseMeetingToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAppt != apptID || gotVet != vetID {
		t.Errorf("round trip mismatch: got (%s, %s)", gotAppt, gotVet)
	}
}

func TestMeetingTokensAreUnique(t *testing.T) {
	// A random nonce means two tokens for the same appointment differ.
	first, err := CreateMeetingToken("a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CreateMeetingToken("a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected distinct tokens for repeated sealing")
	}
}

func TestParseMeetingToken_Garbage(t *testing.T) {
	if _, _, err := ParseMeetingToken("not-a-token"); err == nil {
		t.Error("expected error for undecodable token")
	}
	if _, _, err := ParseMeetingToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestParseMeetingToken_Tampered(t *testing.T) {
	token, err := CreateMeetingToken("a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 1
	if _, _, err := ParseMeetingToken(string(tampered)); err == nil {
		t.Error("expected authentication failure for tampered token")
	}
}

func TestGeneratePassword(t *testing.T) {
	first, err := GeneratePassword()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == "" {
		t.Fatal("expected a non-empty password")
	}
	second, err := GeneratePassword()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected random passwords to differ")
	}
}
