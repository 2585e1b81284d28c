package validation

import "testing"

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"password too short", IsValidPassword, "abc", false},
		{"password letters and digits", IsValidPassword, "abcd1234", true},
		{"password digits only", IsValidPassword, "12345678", false},
		{"password letters only", IsValidPassword, "abcdefgh", false},
		{"password symbol", IsValidPassword, "abcd123!", false},
		{"email simple", IsValidEmail, "a@b.com", true},
		{"email missing at", IsValidEmail, "not-an-email", false},
		{"email with space", IsValidEmail, "a b@c.com", false},
		{"url https", IsValidURL, "https://example.com", true},
		{"url ftp without host", IsValidURL, "ftp:/bad", false},
		{"url relative", IsValidURL, "example.com/path", false},
		{"url empty", IsValidURL, "", false},
		{"phone strict", IsValidPhoneNumber, "+1234567890", true},
		{"phone missing plus", IsValidPhoneNumber, "1234567890", false},
		{"phone too short", IsValidPhoneNumber, "+12345", false},
		{"phone with spaces", IsValidPhoneNumber, "+1 234 567 890", false},
		{"zip five", IsValidZipCode, "12345", true},
		{"zip plus four", IsValidZipCode, "12345-6789", true},
		{"zip letters", IsValidZipCode, "ABCDE", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in); got != tc.want {
				t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
			}
		})
	}
}

type sampleForm struct {
	Email           string `json:"email" validate:"required,uniemail"`
	Password        string `json:"password" validate:"required,unipassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Website         string `json:"companyWebsiteURL" validate:"absurl"`
	Terms           bool   `json:"termsAccepted" validate:"required"`
	Text            string `json:"text" validate:"notblank"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(sampleForm{
		Email:           "nope",
		Password:        "abcd1234",
		ConfirmPassword: "abcd12345",
		Website:         "ftp:/bad",
		Text:            "   ",
	})

	want := map[string]string{
		"email":             "Valid email is required",
		"confirmPassword":   "Passwords must match",
		"companyWebsiteURL": "Invalid Company website URL",
		"termsAccepted":     "You must accept the terms and conditions",
		"text":              "Text is required",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Fatalf("field %s: expected %q, got %q", field, msg, errs[field])
		}
	}
	if _, ok := errs["password"]; ok {
		t.Fatalf("valid password must not be reported")
	}
	if !errs.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestValidateStructOptionalURL(t *testing.T) {
	errs := ValidateStruct(sampleForm{
		Email:           "a@b.com",
		Password:        "abcd1234",
		ConfirmPassword: "abcd1234",
		Terms:           true,
		Text:            "hello",
	})
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"firstName":         "First name",
		"companyWebsiteURL": "Company website URL",
		"email":             "Email",
		"maxParticipants":   "Max participants",
		"studentId":         "Student ID",
		"otp":               "OTP",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Fatalf("humanize(%q): expected %q, got %q", in, want, got)
		}
	}
}
