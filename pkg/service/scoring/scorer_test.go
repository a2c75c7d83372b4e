package scoring_test

import (
	"testing"

	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/scoring"
)

func TestBrut(t *testing.T) {
	t.Run("product over full ordinal space", func(t *testing.T) {
		for g := 1; g <= 4; g++ {
			for p := 1; p <= 4; p++ {
				if got := scoring.Brut(g, p); got != g*p {
					t.Errorf("Brut(%d,%d) = %d, want %d", g, p, got, g*p)
				}
			}
		}
	})

	t.Run("out of range input clamped", func(t *testing.T) {
		tests := []struct {
			g, p, want int
		}{
			{0, 3, 3},   // missing gravity defaults to 1
			{-2, 2, 2},  // negative gravity defaults to 1
			{5, 4, 16},  // excess gravity clamped to 4
			{9, 9, 16},  // both clamped
			{0, 0, 1},   // both default to 1
		}
		for _, tt := range tests {
			if got := scoring.Brut(tt.g, tt.p); got != tt.want {
				t.Errorf("Brut(%d,%d) = %d, want %d", tt.g, tt.p, got, tt.want)
			}
		}
	})
}

func TestNet(t *testing.T) {
	t.Run("no mitigation keeps brut", func(t *testing.T) {
		for g := 1; g <= 4; g++ {
			for p := 1; p <= 4; p++ {
				if got := scoring.Net(g, p, types.MitigationNone); got != g*p {
					t.Errorf("Net(%d,%d,none) = %d, want %d", g, p, got, g*p)
				}
				if got := scoring.Net(g, p, ""); got != g*p {
					t.Errorf("Net(%d,%d,absent) = %d, want %d", g, p, got, g*p)
				}
			}
		}
	})

	t.Run("mitigation never increases the score", func(t *testing.T) {
		levels := []types.MitigationLevel{
			types.MitigationNone,
			types.MitigationPartial,
			types.MitigationGood,
			types.MitigationVeryGood,
		}
		for g := 1; g <= 4; g++ {
			for p := 1; p <= 4; p++ {
				brut := scoring.Brut(g, p)
				for _, m := range levels {
					net := scoring.Net(g, p, m)
					if net > brut {
						t.Errorf("Net(%d,%d,%s) = %d exceeds brut %d", g, p, m, net, brut)
					}
					if m == types.MitigationNone && net != brut {
						t.Errorf("Net(%d,%d,none) = %d, want brut %d", g, p, net, brut)
					}
					if m != types.MitigationNone && brut > 1 && net == brut {
						t.Errorf("Net(%d,%d,%s) = %d, expected strict discount", g, p, m, net)
					}
				}
			}
		}
	})

	t.Run("ceil rounding", func(t *testing.T) {
		tests := []struct {
			g, p int
			m    types.MitigationLevel
			want int
		}{
			{4, 3, types.MitigationGood, 4},     // ceil(12*0.3) = 4
			{4, 4, types.MitigationVeryGood, 2}, // ceil(16*0.1) = 2
			{3, 3, types.MitigationPartial, 5},  // ceil(9*0.5) = 5
			{1, 1, types.MitigationVeryGood, 1}, // ceil(1*0.1) = 1
		}
		for _, tt := range tests {
			if got := scoring.Net(tt.g, tt.p, tt.m); got != tt.want {
				t.Errorf("Net(%d,%d,%s) = %d, want %d", tt.g, tt.p, tt.m, got, tt.want)
			}
		}
	})
}

func TestTier(t *testing.T) {
	tests := []struct {
		net  int
		want types.SeverityTier
	}{
		{16, types.TierCritical},
		{12, types.TierCritical},
		{11, types.TierImportant},
		{8, types.TierImportant},
		{7, types.TierModerate},
		{4, types.TierModerate},
		{3, types.TierLow},
		{1, types.TierLow},
		{0, types.TierLow},
	}
	for _, tt := range tests {
		if got := scoring.Tier(tt.net); got != tt.want {
			t.Errorf("Tier(%d) = %s, want %s", tt.net, got, tt.want)
		}
	}
}

// A strong brut score with good mitigation drops below the important
// threshold: the discount changes the classification outcome.
func TestMitigationChangesTier(t *testing.T) {
	brut := scoring.Brut(4, 3)
	if brut != 12 {
		t.Fatalf("Brut(4,3) = %d, want 12", brut)
	}
	if tier := scoring.Tier(brut); tier != types.TierCritical {
		t.Fatalf("Tier(12) = %s, want critical", tier)
	}

	net := scoring.Net(4, 3, types.MitigationGood)
	if net != 4 {
		t.Fatalf("Net(4,3,good) = %d, want 4", net)
	}
	if tier := scoring.Tier(net); tier != types.TierModerate {
		t.Errorf("Tier(%d) = %s, want moderate", net, tier)
	}
}
