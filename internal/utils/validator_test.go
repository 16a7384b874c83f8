package utils

import "testing"

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	if errs := ValidateRegistration("amit", "a@x.com", "9876543210", "secret1"); errs != nil {
		t.Fatalf("valid input rejected: %v", errs)
	}

	cases := []struct {
		name     string
		username string
		email    string
		phone    string
		password string
		field    string
	}{
		{"short name", "ab", "a@x.com", "9876543210", "secret1", "username"},
		{"bad email", "amit", "not-an-email", "9876543210", "secret1", "email"},
		{"short phone", "amit", "a@x.com", "12345", "secret1", "phone"},
		{"alpha phone", "amit", "a@x.com", "98765abcde", "secret1", "phone"},
		{"short password", "amit", "a@x.com", "9876543210", "12345", "password"},
	}
	for _, tc := range cases {
		errs := ValidateRegistration(tc.username, tc.email, tc.phone, tc.password)
		if errs == nil {
			t.Errorf("%s: expected rejection", tc.name)
			continue
		}
		if _, ok := errs[tc.field]; !ok {
			t.Errorf("%s: expected error on %q, got %v", tc.name, tc.field, errs)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	if errs := ValidateLogin("a@x.com", "secret1"); errs != nil {
		t.Fatalf("valid input rejected: %v", errs)
	}
	if errs := ValidateLogin("", ""); errs == nil {
		t.Fatalf("empty input accepted")
	}
}
