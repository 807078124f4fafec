package signature

import "testing"

func TestVerifyAcceptsOwnSignature(t *testing.T) {
	sig := Compute("ref-1", "200", "600000.00", "server-key")
	if !Verify(sig, "ref-1", "200", "600000.00", "server-key") {
		t.Fatal("computed signature must verify")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	sig := Compute("ref-1", "200", "600000.00", "server-key")

	cases := map[string][4]string{
		"order":  {"ref-2", "200", "600000.00", "server-key"},
		"status": {"ref-1", "201", "600000.00", "server-key"},
		"amount": {"ref-1", "200", "600001.00", "server-key"},
		"key":    {"ref-1", "200", "600000.00", "other-key"},
	}
	for name, c := range cases {
		if Verify(sig, c[0], c[1], c[2], c[3]) {
			t.Fatalf("%s: tampered fields must not verify", name)
		}
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if Verify("", "ref-1", "200", "600000.00", "server-key") {
		t.Fatal("empty signature must not verify")
	}
	if Verify("deadbeef", "ref-1", "200", "600000.00", "server-key") {
		t.Fatal("short signature must not verify")
	}
}
