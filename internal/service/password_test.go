package service

import "testing"

func codes(errs []PolicyError) map[string]bool {
	m := make(map[string]bool, len(errs))
	for _, e := range errs {
		m[e.Code] = true
	}
	return m
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{"valid", "Passw0rd", nil},
		{"too short", "Pw0rd", []string{PasswordTooShort}},
		{"no digit", "Passwords", []string{PasswordNoDigit}},
		{"no uppercase", "passw0rds", []string{PasswordNoUppercase}},
		{"short and no digit", "Pass", []string{PasswordTooShort, PasswordNoDigit}},
		{"everything wrong", "abc", []string{PasswordTooShort, PasswordNoDigit, PasswordNoUppercase}},
		{"empty", "", []string{PasswordTooShort, PasswordNoDigit, PasswordNoUppercase}},
		{"exactly eight", "Abcdefg1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultPolicy.Validate(tt.password)
			if len(got) != len(tt.want) {
				t.Fatalf("Validate(%q) returned %d violations, want %d: %v", tt.password, len(got), len(tt.want), got)
			}
			gotCodes := codes(got)
			for _, code := range tt.want {
				if !gotCodes[code] {
					t.Errorf("Validate(%q) missing violation %s", tt.password, code)
				}
			}
		})
	}
}

func TestPolicyValidateCollectsAll(t *testing.T) {
	// every rule must be reported, not just the first
	got := DefaultPolicy.Validate("ab")
	if len(got) != 3 {
		t.Fatalf("expected all three violations, got %v", got)
	}
}

func TestPolicyOptionalRules(t *testing.T) {
	p := Policy{MinLength: 4}
	if errs := p.Validate("abcd"); len(errs) != 0 {
		t.Errorf("relaxed policy rejected %q: %v", "abcd", errs)
	}
}

func TestPolicyDescribe(t *testing.T) {
	help := DefaultPolicy.Describe()
	if len(help) != 3 {
		t.Fatalf("expected 3 help lines, got %d", len(help))
	}

	// describing must not mutate anything; two calls agree
	again := DefaultPolicy.Describe()
	for i := range help {
		if help[i] != again[i] {
			t.Errorf("Describe not stable: %q vs %q", help[i], again[i])
		}
	}
}
