package postgres

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xraph/grove/drivers/pgdriver"
)

// The pg dialect passes clause text through verbatim and appends args in
// order, so every placeholder must be numbered sequentially per query.
// These tests build the same clause chains the store methods use and check
// that each bound arg has its own $N.

func checkPlaceholders(t *testing.T, sql string, args []any) {
	t.Helper()
	for i := 1; i <= len(args); i++ {
		if !strings.Contains(sql, fmt.Sprintf("$%d", i)) {
			t.Errorf("query binds %d args but never references $%d: %s", len(args), i, sql)
		}
	}
	if strings.Contains(sql, fmt.Sprintf("$%d", len(args)+1)) {
		t.Errorf("query references $%d but binds only %d args: %s", len(args)+1, len(args), sql)
	}
}

func TestGetSupplyQueryPlaceholders(t *testing.T) {
	db := pgdriver.New()

	sql, args, err := db.NewSelect(new(supplyModel)).
		Where("location = $1", "Maharashtra").
		Where("year = $2", 2025).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(args) != 2 {
		t.Fatalf("got %d args, want 2", len(args))
	}
	checkPlaceholders(t, sql, args)
}

func TestUpdateSupplyGivenQueryPlaceholders(t *testing.T) {
	db := pgdriver.New()

	sql, args, err := db.NewUpdate((*supplyModel)(nil)).
		Set("given_food = $1", int64(100)).
		Set("given_med = $2", int64(50)).
		Set("updated_at = $3", time.Now().UTC()).
		Where("location = $4", "Maharashtra").
		Where("year = $5", 2025).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(args) != 5 {
		t.Fatalf("got %d args, want 5", len(args))
	}
	checkPlaceholders(t, sql, args)
}

func TestListServicesQueryPlaceholders(t *testing.T) {
	db := pgdriver.New()

	// Both optional filters set: numbering must continue across clauses.
	var models []serviceModel
	q := db.NewSelect(&models)
	n := 0
	for _, filter := range []struct {
		clause string
		arg    any
	}{
		{`"user" = $%d`, "Asha"},
		{"lower(location) = lower($%d)", "Maharashtra"},
	} {
		n++
		q = q.Where(fmt.Sprintf(filter.clause, n), filter.arg)
	}

	sql, args, err := q.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(args) != 2 {
		t.Fatalf("got %d args, want 2", len(args))
	}
	checkPlaceholders(t, sql, args)
}
