package surrealstore_test

import (
	"os"
	"testing"

	"github.com/bluescreen10/surrealstore"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SURREALDB_URL", "ws://db.internal:8000/rpc")
	t.Setenv("SURREALDB_USER", "admin")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("SURREALDB_NAMESPACE", "prod")
	t.Setenv("SURREALDB_DATABASE", "app")

	cfg, err := surrealstore.ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.URL != "ws://db.internal:8000/rpc" {
		t.Errorf("expected url got %q", cfg.URL)
	}
	if cfg.Username != "admin" {
		t.Errorf("expected username admin got %q", cfg.Username)
	}
	if cfg.Password != "hunter2" {
		t.Errorf("expected password from DB_PASSWORD got %q", cfg.Password)
	}
	if cfg.Namespace != "prod" || cfg.Database != "app" {
		t.Errorf("expected prod/app got %s/%s", cfg.Namespace, cfg.Database)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	for _, name := range []string{"SURREALDB_URL", "SURREALDB_USER", "DB_PASSWORD", "SURREALDB_NAMESPACE", "SURREALDB_DATABASE"} {
		// Setenv registers restoration of the prior value on cleanup,
		// so the unset doesn't leak into other tests.
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	cfg, err := surrealstore.ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.URL != "ws://localhost:8000/rpc" {
		t.Errorf("expected default url got %q", cfg.URL)
	}
	if cfg.Username != "root" {
		t.Errorf("expected default user root got %q", cfg.Username)
	}
	if cfg.Namespace != "default" || cfg.Database != "default" {
		t.Errorf("expected default/default got %s/%s", cfg.Namespace, cfg.Database)
	}
}
