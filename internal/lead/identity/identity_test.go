package identity

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func TestNormalizeAddress_CollapsesCaseAndWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123 Main St", "123 main st"},
		{"  123  Main   St  ", "123 main st"},
		{"123 MAIN ST", "123 main st"},
		{"123\tMain\nSt", "123 main st"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeAddress(tc.in); got != tc.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPseudoIdentity_StableAcrossCaseAndSpacing(t *testing.T) {
	base := PseudoIdentity("123 Main St, Springfield, IL 62704")
	variants := []string{
		"123 main st, springfield, il 62704",
		"  123 Main St,   Springfield, IL 62704",
		"123 MAIN ST, SPRINGFIELD, IL 62704",
	}

	for _, variant := range variants {
		if got := PseudoIdentity(variant); got != base {
			t.Errorf("PseudoIdentity(%q) = %d, want %d", variant, got, base)
		}
	}
}

func TestPseudoIdentity_OrderDependent(t *testing.T) {
	if PseudoIdentity("12 Main St 3") == PseudoIdentity("123 Main St") {
		t.Fatal("expected different hashes for different addresses")
	}
}

func TestPlaceholderEmail_Deterministic(t *testing.T) {
	first := PlaceholderEmail("123 Main St")
	second := PlaceholderEmail("123 Main St")
	if first != second {
		t.Fatalf("placeholder email not deterministic: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "partial_") || !strings.HasSuffix(first, "@placeholder.lead") {
		t.Fatalf("unexpected placeholder email shape %q", first)
	}
	if first != PlaceholderEmail("123 main st") {
		t.Fatal("expected the same placeholder email for a case variant")
	}
}

func TestPseudoIdentity_CollisionRate(t *testing.T) {
	const n = 10000
	rng := rand.New(rand.NewSource(1))
	streets := []string{"Main St", "Oak Ave", "Maple Dr", "Cedar Ln", "2nd St", "Park Blvd"}
	cities := []string{"Springfield", "Franklin", "Clinton", "Madison", "Georgetown"}

	seen := make(map[uint32]string, n)
	collisions := 0
	for i := 0; i < n; i++ {
		addr := fmt.Sprintf("%d %s, %s, IL %05d",
			rng.Intn(9999)+1,
			streets[rng.Intn(len(streets))],
			cities[rng.Intn(len(cities))],
			rng.Intn(99999),
		)
		key := PseudoIdentity(addr)
		if prev, ok := seen[key]; ok && prev != NormalizeAddress(addr) {
			collisions++
			continue
		}
		seen[key] = NormalizeAddress(addr)
	}

	if rate := float64(collisions) / float64(n); rate >= 0.01 {
		t.Fatalf("collision rate %.4f exceeds 1%% over %d addresses", rate, n)
	}
}
