package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"taksa/internal/roster"
)

func TestExportCSVContainsRoster(t *testing.T) {
	svc := NewRosterService(newTestStore(t), roster.DefaultOptions())

	out, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	body := string(out)
	if !strings.HasPrefix(body, strings.Join(roster.Columns, ",")+"\n") {
		t.Fatalf("export should start with the canonical header:\n%s", body)
	}
	for _, id := range []string{"A601", "AP501", "A401", "B203"} {
		if !strings.Contains(body, id+",") {
			t.Fatalf("export missing %s:\n%s", id, body)
		}
	}
}

func TestImportCSVReplacesRoster(t *testing.T) {
	s := newTestStore(t)
	svc := NewRosterService(s, roster.DefaultOptions())
	ctx := context.Background()

	in := strings.Join(roster.Columns, ",") + "\n" +
		"C100,home,50,0.7,0,7100,18,7,6,8,12,0,0,2\n" +
		"BROKEN,home\n" +
		"C200,office,45,0.6,1,7200,18,7,6,8,12,3,2,2\n"
	res, err := svc.ImportCSV(ctx, []byte(in))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 1 {
		t.Fatalf("result = %+v, want 2 imported / 1 skipped", res)
	}

	apts, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(apts) != 2 || apts[0].ID != "C100" || apts[1].ID != "C200" {
		t.Fatalf("roster after import = %+v", apts)
	}
}

func TestImportCSVSchemaErrorKeepsRoster(t *testing.T) {
	s := newTestStore(t)
	svc := NewRosterService(s, roster.DefaultOptions())
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, []byte("apt_id,type\nA601,home\n"))
	var schemaErr *roster.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}

	apts, _ := svc.List(ctx)
	if len(apts) != 4 {
		t.Fatalf("failed import must not touch the roster, got %d records", len(apts))
	}
}
