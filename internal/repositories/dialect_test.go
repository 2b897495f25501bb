package repositories

import "testing"

func TestRebind(t *testing.T) {
	q := `UPDATE contracts SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	if got := MySQL.Rebind(q); got != q {
		t.Fatalf("mysql must keep placeholders, got %s", got)
	}
	want := `UPDATE contracts SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	if got := Postgres.Rebind(q); got != want {
		t.Fatalf("unexpected postgres query %s", got)
	}
}

func TestDialectFor(t *testing.T) {
	if d, err := DialectFor("pgx"); err != nil || d != Postgres {
		t.Fatalf("expected postgres, got %v %v", d, err)
	}
	if d, err := DialectFor("MySQL"); err != nil || d != MySQL {
		t.Fatalf("expected mysql, got %v %v", d, err)
	}
	if _, err := DialectFor("sqlite3"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(3); got != "?, ?, ?" {
		t.Fatalf("unexpected %q", got)
	}
	if got := placeholders(0); got != "" {
		t.Fatalf("unexpected %q", got)
	}
}
