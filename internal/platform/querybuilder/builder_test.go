package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id").
		From("dim_date").
		Where(Eq("date", "2023-08-12")).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM dim_date WHERE date = $1 LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "2023-08-12" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderCoalesceUpsert(t *testing.T) {
	query, args, err := InsertInto("dim_venue").
		Columns("api_venue_id", "name", "city").
		Values(int64(556), "Old Trafford", nil).
		OnConflict(OnConflict("api_venue_id").Coalesce("name", "city")).
		Returning("venue_key").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO dim_venue (api_venue_id, name, city) VALUES ($1, $2, $3) " +
		"ON CONFLICT (api_venue_id) DO UPDATE SET name = COALESCE(EXCLUDED.name, dim_venue.name), " +
		"city = COALESCE(EXCLUDED.city, dim_venue.city) RETURNING venue_key"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != int64(556) || args[2] != nil {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderMixedMerge(t *testing.T) {
	query, _, err := InsertInto("fact_match").
		Columns("api_match_id", "home_goals", "attendance").
		Values(int64(1), 2, nil).
		OnConflict(OnConflict("api_match_id").Overwrite("home_goals").Coalesce("attendance")).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO fact_match (api_match_id, home_goals, attendance) VALUES ($1, $2, $3) " +
		"ON CONFLICT (api_match_id) DO UPDATE SET home_goals = EXCLUDED.home_goals, " +
		"attendance = COALESCE(EXCLUDED.attendance, fact_match.attendance)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertBuilderDoNothing(t *testing.T) {
	query, _, err := InsertInto("fact_game_basketball").
		Columns("points").
		Values(101).
		OnConflict(OnConflict().DoNothing()).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO fact_game_basketball (points) VALUES ($1) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertBuilderRejectsUpdateWithoutTarget(t *testing.T) {
	_, _, err := InsertInto("dim_team").
		Columns("name").
		Values("x").
		OnConflict(OnConflict().Coalesce("name")).
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for DO UPDATE without conflict target")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		APITeamID int64   `db:"api_team_id"`
		Name      *string `db:"name"`
		internal  string
		Ignored   string `db:"-"`
	}

	name := "Arsenal"
	builder, err := InsertModel("dim_team", row{APITeamID: 42, Name: &name, internal: "x", Ignored: "y"})
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	query, args, err := builder.Returning("team_key").ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if query != "INSERT INTO dim_team (api_team_id, name) VALUES ($1, $2) RETURNING team_key" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	cols, err := ModelColumns(row{}, "api_team_id")
	if err != nil {
		t.Fatalf("model columns: %v", err)
	}
	if len(cols) != 1 || cols[0] != "name" {
		t.Fatalf("unexpected columns: %+v", cols)
	}

	if _, err := InsertModel("dim_team", (*row)(nil)); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
