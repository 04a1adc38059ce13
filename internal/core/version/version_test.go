package version

import "testing"

func TestInfoDefaults(t *testing.T) {
	bi := Info()
	if bi.Service != "scribe-api" {
		t.Fatalf("service = %q", bi.Service)
	}
	if bi.Version != "dev" || bi.Commit != "none" || bi.Date != "unknown" {
		t.Fatalf("unexpected defaults %+v", bi)
	}
	if For("scribe-ingest").Service != "scribe-ingest" {
		t.Fatal("For should label the service")
	}
}
