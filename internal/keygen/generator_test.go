package keygen

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/Kosench/shortlink/internal/errors"
)

type mockKeyChecker struct {
	taken      map[string]bool
	collisions int
	calls      int
	err        error
}

func (m *mockKeyChecker) ExistsByKey(ctx context.Context, key string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	if m.calls <= m.collisions {
		return true, nil
	}
	return m.taken[key], nil
}

func TestRandomString(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"length 1", 1},
		{"length 5", 5},
		{"length 8", 8},
		{"length 32", 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := RandomString(tt.length)
			if err != nil {
				t.Fatalf("RandomString(%d) error = %v", tt.length, err)
			}

			if len(s) != tt.length {
				t.Errorf("RandomString(%d) length = %d", tt.length, len(s))
			}

			for _, char := range s {
				if !strings.ContainsRune(alphabet, char) {
					t.Errorf("RandomString(%d) contains invalid character: %c", tt.length, char)
				}
			}
		})
	}
}

func TestRandomStringUniqueness(t *testing.T) {
	generated := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		s, err := RandomString(DefaultKeyLength + 3)
		if err != nil {
			t.Fatalf("RandomString() error = %v", err)
		}

		if generated[s] {
			t.Errorf("RandomString() generated duplicate: %s", s)
		}
		generated[s] = true
	}
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(0, -1)

	if g.length != DefaultKeyLength {
		t.Errorf("length = %d, want %d", g.length, DefaultKeyLength)
	}
	if g.maxRetries != DefaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", g.maxRetries, DefaultMaxRetries)
	}
}

func TestGenerator_UniqueKey(t *testing.T) {
	t.Run("free on first draw", func(t *testing.T) {
		checker := &mockKeyChecker{}
		key, err := NewGenerator(7, 3).UniqueKey(context.Background(), checker)
		if err != nil {
			t.Fatalf("UniqueKey() error = %v", err)
		}
		if len(key) != 7 {
			t.Errorf("UniqueKey() length = %d, want 7", len(key))
		}
		if checker.calls != 1 {
			t.Errorf("ExistsByKey called %d times, want 1", checker.calls)
		}
	})

	t.Run("retries after collisions", func(t *testing.T) {
		checker := &mockKeyChecker{collisions: 2}
		if _, err := NewGenerator(5, 5).UniqueKey(context.Background(), checker); err != nil {
			t.Fatalf("UniqueKey() error = %v", err)
		}
		if checker.calls != 3 {
			t.Errorf("ExistsByKey called %d times, want 3", checker.calls)
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		checker := &mockKeyChecker{collisions: 100}
		_, err := NewGenerator(5, 4).UniqueKey(context.Background(), checker)
		if err == nil {
			t.Fatal("UniqueKey() expected error, got nil")
		}
		if !errors.Is(err, apperrors.ErrKeyGeneration) {
			t.Errorf("UniqueKey() error = %v, want ErrKeyGeneration", err)
		}
		if checker.calls != 4 {
			t.Errorf("ExistsByKey called %d times, want 4", checker.calls)
		}
	})

	t.Run("checker error is returned", func(t *testing.T) {
		dbErr := errors.New("database is locked")
		checker := &mockKeyChecker{err: dbErr}
		_, err := NewGenerator(5, 4).UniqueKey(context.Background(), checker)
		if !errors.Is(err, dbErr) {
			t.Errorf("UniqueKey() error = %v, want %v", err, dbErr)
		}
		if checker.calls != 1 {
			t.Errorf("ExistsByKey called %d times, want 1", checker.calls)
		}
	})
}

func TestIsReserved(t *testing.T) {
	for _, key := range []string{"health", "info"} {
		if !IsReserved(key) {
			t.Errorf("IsReserved(%q) = false", key)
		}
	}
	for _, key := range []string{"Health", "infos", "qr", "admin", "url", ""} {
		if IsReserved(key) {
			t.Errorf("IsReserved(%q) = true", key)
		}
	}
}

func TestGenerator_SecretSuffix(t *testing.T) {
	suffix, err := NewGenerator(5, 5).SecretSuffix()
	if err != nil {
		t.Fatalf("SecretSuffix() error = %v", err)
	}
	if len(suffix) != SecretSuffixLength {
		t.Errorf("SecretSuffix() length = %d, want %d", len(suffix), SecretSuffixLength)
	}
}
