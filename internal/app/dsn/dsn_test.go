package dsn

import "testing"

func TestFromEnvPrefersDSN(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://crm@localhost/crm")
	t.Setenv("DB_HOST", "ignored")
	if got := FromEnv(); got != "postgres://crm@localhost/crm" {
		t.Errorf("expected DB_DSN to win, got %q", got)
	}
}

func TestFromEnvBuildsFromParts(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "crm")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "crm_db")
	t.Setenv("DB_SSLMODE", "")

	want := "host=db port=5432 user=crm password=secret dbname=crm_db sslmode=disable TimeZone=UTC"
	if got := FromEnv(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
