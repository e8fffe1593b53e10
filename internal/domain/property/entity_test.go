package property

import (
	"database/sql"
	"testing"
	"time"
)

func TestAddonsScan(t *testing.T) {
	var a Addons
	if err := a.Scan([]byte(`{"late_checkout":2500,"chairs":400}`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if a["late_checkout"] != 2500 || a["chairs"] != 400 {
		t.Fatalf("unexpected addons: %v", a)
	}

	var empty Addons
	if err := empty.Scan(nil); err != nil || empty == nil {
		t.Fatalf("nil scan should yield empty map, got %v %v", empty, err)
	}

	if err := a.Scan(42); err == nil {
		t.Fatal("expected error for unsupported source type")
	}
}

func TestAddonsValueOfNil(t *testing.T) {
	var a Addons
	v, err := a.Value()
	if err != nil || v != "{}" {
		t.Fatalf("expected {}, got %v %v", v, err)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	p := &Property{Timezone: "Not/AZone"}
	if p.Location() != time.UTC {
		t.Fatal("expected UTC fallback for unknown zone")
	}
	p.Timezone = ""
	if p.Location() != time.UTC {
		t.Fatal("expected UTC for empty zone")
	}
}

func TestPropertyCapabilities(t *testing.T) {
	p := &Property{NightlyRateCents: 10000, MaxGuests: 4, Curfew: sql.NullString{String: "22:00", Valid: true}}

	if !p.SupportsStays() || p.SupportsEvents() {
		t.Fatal("expected stay-only property")
	}
	if !p.AcceptsGuests(4) || p.AcceptsGuests(5) {
		t.Fatal("guest limit not enforced")
	}
	if p.CurfewValue() != "22:00" {
		t.Fatalf("unexpected curfew %q", p.CurfewValue())
	}

	p.MaxGuests = 0
	if !p.AcceptsGuests(500) {
		t.Fatal("zero max guests means unlimited")
	}
}
