package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestMustGetEnv_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required env var")
		}
	}()

	os.Unsetenv("NONEXISTENT_REQUIRED_VAR")
	mustGetEnv("NONEXISTENT_REQUIRED_VAR")
}

func TestLoad_SQLiteDoesNotRequireDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverSQLite)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", "/tmp/chat-test.db")

	cfg := Load()
	if cfg.DatabaseDriver != DriverSQLite {
		t.Fatalf("Expected driver %q, got %q", DriverSQLite, cfg.DatabaseDriver)
	}
	if cfg.SQLitePath != "/tmp/chat-test.db" {
		t.Errorf("Expected sqlite path from env, got %q", cfg.SQLitePath)
	}
	if cfg.SeedLimit != 20 {
		t.Errorf("Expected default seed limit 20, got %d", cfg.SeedLimit)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when DATABASE_URL is missing for postgres")
		}
	}()

	Load()
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mongo")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for unsupported driver")
		}
	}()

	Load()
}

func TestLoad_RejectsSeedLimitOutOfRange(t *testing.T) {
	for _, seed := range []string{"0", "-5", "101"} {
		t.Run(seed, func(t *testing.T) {
			t.Setenv("DATABASE_DRIVER", DriverSQLite)
			t.Setenv("SEED_LIMIT", seed)

			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Expected panic for SEED_LIMIT=%s", seed)
				}
			}()

			Load()
		})
	}
}

func TestLoad_AcceptsSeedLimitBounds(t *testing.T) {
	for _, tc := range []struct {
		value    string
		expected int
	}{{"1", 1}, {"100", 100}} {
		t.Setenv("DATABASE_DRIVER", DriverSQLite)
		t.Setenv("SEED_LIMIT", tc.value)

		if cfg := Load(); cfg.SeedLimit != tc.expected {
			t.Errorf("Expected seed limit %d, got %d", tc.expected, cfg.SeedLimit)
		}
	}
}

func TestLoad_RejectsNonPositiveAskRateLimit(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", DriverSQLite)
	t.Setenv("ASK_RATE_LIMIT_PER_MINUTE", "0")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for ASK_RATE_LIMIT_PER_MINUTE=0")
		}
	}()

	Load()
}
