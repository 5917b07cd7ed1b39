package main

import "testing"

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("EVALBAR_TEST_BOOL", "on")
	t.Setenv("EVALBAR_TEST_UINT", "42")
	t.Setenv("EVALBAR_TEST_BAD", "maybe")

	if !getenb("EVALBAR_TEST_BOOL", false) {
		t.Error("expected true")
	}
	if getenb("EVALBAR_TEST_BAD", false) {
		t.Error("unparsable value should fall back to the default")
	}
	if got := getenu("EVALBAR_TEST_UINT", 1); got != 42 {
		t.Errorf("unexpected uint: %d", got)
	}
	if got := getenu("EVALBAR_TEST_BAD", 7); got != 7 {
		t.Errorf("unexpected uint: %d", got)
	}
	if got := getenv("EVALBAR_TEST_UNSET", "def"); got != "def" {
		t.Errorf("unexpected string: %s", got)
	}
}
