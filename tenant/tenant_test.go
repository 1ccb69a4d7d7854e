package tenant

import (
	"strings"
	"testing"
)

func TestSafeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no_hyphens", "acme", "acme"},
		{"single_hyphen", "acme-corp", "acme_corp"},
		{"many_hyphens", "a-b-c-d", "a_b_c_d"},
		{"leading_trailing", "-acme-", "_acme_"},
		{"already_underscored", "a_b", "a_b"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeID(tt.in)
			if got != tt.want {
				t.Errorf("SafeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.Contains(got, "-") {
				t.Errorf("SafeID(%q) = %q still contains a hyphen", tt.in, got)
			}
		})
	}
}

func TestSafeID_Deterministic(t *testing.T) {
	id := "tenant-42-west"
	first := SafeID(id)
	for i := 0; i < 5; i++ {
		if got := SafeID(id); got != first {
			t.Fatalf("SafeID(%q) not deterministic: %q vs %q", id, got, first)
		}
	}
}

func TestCollectionName(t *testing.T) {
	got := CollectionName("acme-corp")
	want := "qa_data_acme_corp"
	if got != want {
		t.Errorf("CollectionName = %q, want %q", got, want)
	}
}

func TestCollectionName_KnownCollision(t *testing.T) {
	// "a-b" and "a_b" sanitize identically; both callers share one collection.
	if CollectionName("a-b") != CollectionName("a_b") {
		t.Error("expected colliding ids to map to the same collection")
	}
}
