package querybuilder

import "testing"

func TestSelectToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").From("registrations").
		Where(Eq("team_id", "t1"), IsNull("waiver_url")).
		OrderBy("created_at DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT * FROM registrations WHERE team_id = $1 AND waiver_url IS NULL ORDER BY created_at DESC LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdateConditional(t *testing.T) {
	t.Parallel()

	query, args, err := Update("registrations").
		Set("payment_status", "paid").
		Where(Eq("id", "r1"), Eq("payment_status", "unpaid")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "UPDATE registrations SET payment_status = $1 WHERE id = $2 AND payment_status = $3"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	model := struct {
		ID   string `db:"id"`
		Name string `db:"name"`
		Skip string `db:"-"`
	}{ID: "c1", Name: "Jane", Skip: "nope"}

	query, args, err := InsertModel("contact_messages", model, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	want := "INSERT INTO contact_messages (id, name) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "c1" || args[1] != "Jane" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteRequiresCondition(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("teams").ToSQL(); err == nil {
		t.Fatal("expected unconditional delete to be rejected")
	}

	query, args, err := DeleteFrom("teams").Where(Eq("id", "t1")).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if query != "DELETE FROM teams WHERE id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %v", query, args)
	}
}
