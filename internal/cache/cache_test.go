package cache

import (
	"errors"
	"testing"
)

func TestKeyBuilder(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		clientIP  string
		want      string
	}{
		{"no namespace", "", "10.0.0.1", "rate:10.0.0.1"},
		{"with namespace", "shortlink", "10.0.0.1", "shortlink:rate:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewKeyBuilder(tt.namespace).RateLimit(tt.clientIP); got != tt.want {
				t.Errorf("RateLimit() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKeyBuilder_BuildParts(t *testing.T) {
	if got := NewKeyBuilder("").Build(PrefixRateLimit, "a", "b"); got != "rate:a:b" {
		t.Errorf("Build() = %s, want rate:a:b", got)
	}
}

func TestCacheError(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewCacheError("increment", "rate:1.2.3.4", cause)
	if err.Error() != "cache increment 'rate:1.2.3.4': connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not unwrap CacheError")
	}

	err = NewCacheError("ping", "", cause)
	if err.Error() != "cache ping: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}
