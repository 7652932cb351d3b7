package config

import (
	"reflect"
	"testing"
)

func TestParseReentry(t *testing.T) {
	tests := []struct {
		raw  string
		want ReentryPolicy
	}{
		{"window", ReentryWindow},
		{"unlimited", ReentryUnlimited},
		{"UNLIMITED", ReentryUnlimited},
		{"", ReentryWindow},
		{"nonsense", ReentryWindow},
	}

	for _, tt := range tests {
		if got := parseReentry(tt.raw); got != tt.want {
			t.Errorf("parseReentry(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"https://acadex.edu", []string{"https://acadex.edu"}},
		{"https://a.test, https://b.test", []string{"https://a.test", "https://b.test"}},
		{" https://a.test ,, ", []string{"https://a.test"}},
	}

	for _, tt := range tests {
		if got := parseOrigins(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ACADEX_TEST_KEY", "set")
	if got := getEnv("ACADEX_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("getEnv with value = %q, want %q", got, "set")
	}
	if got := getEnv("ACADEX_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv without value = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("ACADEX_TEST_INT", "42")
	if got := getEnvInt("ACADEX_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt with value = %d, want 42", got)
	}
	t.Setenv("ACADEX_TEST_INT", "not-a-number")
	if got := getEnvInt("ACADEX_TEST_INT", 7); got != 7 {
		t.Errorf("getEnvInt with junk = %d, want 7", got)
	}
}
