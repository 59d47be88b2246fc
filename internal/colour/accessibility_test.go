package colour

import (
	"testing"
)

// compliantRoles returns a role map whose default pairs already pass AA and
// AAA. The dark primary keeps light text readable on it without repair.
func compliantRoles(t *testing.T) RoleMap {
	t.Helper()
	p := paletteFromHexes(t, []string{"#0b3d91"})
	h := NewHarmoniser(0)
	roles, _, err := h.Harmonise(p, HarmonyAnalogous)
	if err != nil {
		t.Fatalf("Harmonise() error = %v", err)
	}
	return roles
}

func TestValidatePassingPairsUntouched(t *testing.T) {
	roles := compliantRoles(t)

	v := NewValidator(nil)
	repaired, corrections, unresolved := v.Validate(roles)

	if len(corrections) != 0 {
		t.Errorf("Validate() applied %d corrections to a compliant palette", len(corrections))
	}
	if len(unresolved) != 0 {
		t.Errorf("Validate() reported %d unresolved pairs for a compliant palette", len(unresolved))
	}
	for role, rgb := range roles {
		if repaired[role] != rgb {
			t.Errorf("role %s changed from %v to %v without a failing pair", role, rgb, repaired[role])
		}
	}
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	roles := compliantRoles(t)
	roles[RoleTextLight] = RGB{R: 120, G: 120, B: 120}
	before := roles.Clone()

	v := NewValidator(nil)
	v.Validate(roles)

	for role, rgb := range before {
		if roles[role] != rgb {
			t.Errorf("input role map mutated at %s: %v -> %v", role, rgb, roles[role])
		}
	}
}

func TestValidateRepairsFailingPair(t *testing.T) {
	roles := compliantRoles(t)
	// Mid-grey text on a dark background fails AA on its own.
	roles[RoleTextLight] = RGB{R: 110, G: 110, B: 110}

	v := NewValidator(nil)
	repaired, corrections, unresolved := v.Validate(roles)

	if len(unresolved) != 0 {
		t.Fatalf("Validate() left pairs unresolved: %v", unresolved)
	}
	if len(corrections) == 0 {
		t.Fatal("Validate() repaired nothing for a failing pair")
	}

	for _, pair := range DefaultContrastPairs(LevelAA) {
		ratio := ContrastRatio(repaired[pair.Foreground], repaired[pair.Background])
		if ratio < pair.Required {
			t.Errorf("pair (%s, %s) still fails after repair: %f < %f",
				pair.Foreground, pair.Background, ratio, pair.Required)
		}
	}

	for _, c := range corrections {
		if c.RatioAfter < c.Ratio {
			t.Errorf("correction for %s lowered the ratio: %f -> %f", c.Role, c.Ratio, c.RatioAfter)
		}
		if c.Before == c.After {
			t.Errorf("correction for %s recorded no colour change", c.Role)
		}
	}
}

func TestValidateAAA(t *testing.T) {
	roles := compliantRoles(t)

	v := NewValidator(DefaultContrastPairs(LevelAAA))
	repaired, _, unresolved := v.Validate(roles)

	if len(unresolved) != 0 {
		t.Fatalf("Validate() left AAA pairs unresolved: %v", unresolved)
	}
	for _, pair := range DefaultContrastPairs(LevelAAA) {
		ratio := ContrastRatio(repaired[pair.Foreground], repaired[pair.Background])
		if ratio < ContrastAAA {
			t.Errorf("pair (%s, %s) ratio = %f, want >= %f", pair.Foreground, pair.Background, ratio, ContrastAAA)
		}
	}
}

func TestValidateUnresolvedRecorded(t *testing.T) {
	// An impossible requirement: no two colours reach a ratio of 30.
	pairs := []ContrastPair{
		{Foreground: RoleTextLight, Background: RoleBackgroundDark, Required: 30.0},
	}
	roles := compliantRoles(t)

	v := NewValidator(pairs)
	repaired, _, unresolved := v.Validate(roles)

	if len(unresolved) != 1 {
		t.Fatalf("Validate() reported %d unresolved pairs, want 1", len(unresolved))
	}
	u := unresolved[0]
	if u.Foreground != RoleTextLight || u.Background != RoleBackgroundDark {
		t.Errorf("unresolved pair = (%s, %s), want (text_light, background_dark)", u.Foreground, u.Background)
	}
	if u.Required != 30.0 {
		t.Errorf("unresolved required = %f, want 30.0", u.Required)
	}
	if u.Achieved >= u.Required {
		t.Errorf("unresolved achieved %f >= required %f", u.Achieved, u.Required)
	}

	// The best attempt is kept even when the threshold is unreachable.
	got := ContrastRatio(repaired[RoleTextLight], repaired[RoleBackgroundDark])
	before := ContrastRatio(roles[RoleTextLight], roles[RoleBackgroundDark])
	if got < before {
		t.Errorf("repair attempt lowered the ratio: %f -> %f", before, got)
	}
}

func TestContrastLevelRatio(t *testing.T) {
	tests := []struct {
		name  string
		level ContrastLevel
		want  float64
	}{
		{name: "AA", level: LevelAA, want: 4.5},
		{name: "AAA", level: LevelAAA, want: 7.0},
		{name: "unknown falls back to AA", level: ContrastLevel("AAAA"), want: 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.Ratio(); got != tt.want {
				t.Errorf("Ratio() = %f, want %f", got, tt.want)
			}
		})
	}
}
