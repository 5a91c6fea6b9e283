package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("pickup_sessions").
		Where(Contains("player_ids", "u1"), Or(Gt("starts_at", "2026-01-01"), IsNull("starts_at"))).
		OrderBy("starts_at ASC", "public_id ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT public_id, name FROM pickup_sessions WHERE $1 = ANY(player_ids) AND (starts_at > $2 OR starts_at IS NULL) ORDER BY starts_at ASC, public_id ASC LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if !reflect.DeepEqual(args, []any{"u1", "2026-01-01"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("matches").Where(In("home_squad_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM matches WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query=%q args=%v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("venues").
		Columns("public_id", "name").
		Values("v1", "Downsview").
		Values("v2", "Sobeys").
		Suffix("ON CONFLICT (public_id) DO UPDATE SET name = EXCLUDED.name").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO venues (public_id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (public_id) DO UPDATE SET name = EXCLUDED.name"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[2] != "v2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("venues").Columns("a", "b").Values("only-one").ToSQL()
	if err == nil {
		t.Fatalf("expected error for mismatched row")
	}
}

func TestUpdateBuilder_ConditionalAppend(t *testing.T) {
	query, args, err := Update("pickup_sessions").
		SetExpr("player_ids", "array_append(player_ids, ?)", "u1").
		Set("updated_at", "now").
		Where(Eq("public_id", "p1"), Expr("NOT (? = ANY(player_ids))", "u1"), Expr("cardinality(player_ids) < capacity")).
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	want := "UPDATE pickup_sessions SET player_ids = array_append(player_ids, $1), updated_at = $2 WHERE public_id = $3 AND NOT ($4 = ANY(player_ids)) AND cardinality(player_ids) < capacity RETURNING public_id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if !reflect.DeepEqual(args, []any{"u1", "now", "p1", "u1"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}
