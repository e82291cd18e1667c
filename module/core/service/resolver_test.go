package service

import "testing"

type idList []string

func (l idList) IDs() []string { return l }

func TestAssignmentResolver(t *testing.T) {
	r := NewAssignmentResolver(NewCatalogResolver(idList{"Z1", "Z2", "Z3"}))

	if got := r.ZonesFor("BUS-01"); len(got) != 3 {
		t.Fatalf("unassigned vehicle: expected 3 zones, got %v", got)
	}

	route := []string{"Z3", "Z1"}
	r.Assign("BUS-01", route)
	route[0] = "changed"

	got := r.ZonesFor("BUS-01")
	if len(got) != 2 || got[0] != "Z3" || got[1] != "Z1" {
		t.Fatalf("expected [Z3 Z1], got %v", got)
	}

	r.Unassign("BUS-01")
	if got := r.ZonesFor("BUS-01"); len(got) != 3 {
		t.Errorf("after unassign: expected 3 zones, got %v", got)
	}
}

func TestAssignmentResolver_NoFallback(t *testing.T) {
	r := NewAssignmentResolver(nil)
	if got := r.ZonesFor("BUS-01"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
