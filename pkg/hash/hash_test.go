package hash

import "testing"

func TestSHA256Hex(t *testing.T) {
	// Known vector: sha256("") = e3b0c442...
	got := SHA256Hex("")
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Deterministic(t *testing.T) {
	a := SHA256Hex("voter-123")
	b := SHA256Hex("voter-123")
	if a != b {
		t.Errorf("same input produced different hashes: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}

func TestIteratedSHA256_DiffersFromSingle(t *testing.T) {
	single := SHA256Hex("input")
	iterated := IteratedSHA256("input", 2)
	if single == iterated {
		t.Error("iterated hash should differ from single-pass hash")
	}
}

func TestIteratedSHA256_OneIteration(t *testing.T) {
	if IteratedSHA256("x", 1) != SHA256Hex("x") {
		t.Error("one iteration should equal a single SHA256 pass")
	}
}

func TestHashIP_SaltChangesOutput(t *testing.T) {
	a := HashIP("192.0.2.1", "salt-a")
	b := HashIP("192.0.2.1", "salt-b")
	if a == b {
		t.Error("different salts must produce different IP hashes")
	}
}

func TestHashIP_Deterministic(t *testing.T) {
	a := HashIP("192.0.2.1", "salt")
	b := HashIP("192.0.2.1", "salt")
	if a != b {
		t.Error("same IP and salt must produce the same hash")
	}
}

func TestShortHash(t *testing.T) {
	got := ShortHash("review-1", 12)
	if len(got) != 12 {
		t.Errorf("ShortHash length = %d, want 12", len(got))
	}
	if got != SHA256Hex("review-1")[:12] {
		t.Error("ShortHash should be a prefix of the full hash")
	}
}

func TestShortHash_LongerThanHash(t *testing.T) {
	got := ShortHash("x", 100)
	if len(got) != 64 {
		t.Errorf("ShortHash capped length = %d, want 64", len(got))
	}
}
