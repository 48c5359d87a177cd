package person

import "testing"

func TestValidate(t *testing.T) {
	valid := Registration{
		Name:     "Asha Kulkarni",
		Age:      34,
		Location: "Pune",
		Phone:    "9876543210",
		Email:    "asha@example.com",
		Password: "secret",
	}

	tests := []struct {
		name      string
		mutate    func(*Registration)
		wantField string
	}{
		{"valid", func(*Registration) {}, ""},
		{"missing name", func(r *Registration) { r.Name = "" }, FieldName},
		{"zero age", func(r *Registration) { r.Age = 0 }, FieldAge},
		{"negative age", func(r *Registration) { r.Age = -5 }, FieldAge},
		{"missing location", func(r *Registration) { r.Location = "" }, FieldLocation},
		{"short phone", func(r *Registration) { r.Phone = "12345" }, FieldPhone},
		{"long phone", func(r *Registration) { r.Phone = "98765432100" }, FieldPhone},
		{"letters in phone", func(r *Registration) { r.Phone = "98765abcde" }, FieldPhone},
		{"missing email", func(r *Registration) { r.Email = "" }, FieldEmail},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, FieldEmail},
		{"missing password", func(r *Registration) { r.Password = "" }, FieldPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := valid
			tt.mutate(&reg)
			inv := reg.Validate()
			if tt.wantField == "" {
				if inv != nil {
					t.Errorf("got %+v, want nil", inv)
				}
				return
			}
			if inv == nil {
				t.Fatalf("got nil, want field %q", tt.wantField)
			}
			if inv.Field != tt.wantField {
				t.Errorf("field: got %q, want %q", inv.Field, tt.wantField)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	reg := Registration{
		Name:     "  Asha Kulkarni ",
		Location: " Pune",
		Phone:    "9876543210 ",
		Email:    " asha@example.com ",
		Password: " secret ",
	}
	reg.Normalize()

	if reg.Name != "Asha Kulkarni" {
		t.Errorf("name: got %q", reg.Name)
	}
	if reg.Location != "Pune" {
		t.Errorf("location: got %q", reg.Location)
	}
	if reg.Phone != "9876543210" {
		t.Errorf("phone: got %q", reg.Phone)
	}
	if reg.Email != "asha@example.com" {
		t.Errorf("email: got %q", reg.Email)
	}
	// Passwords keep their whitespace.
	if reg.Password != " secret " {
		t.Errorf("password: got %q", reg.Password)
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"0000000000", true},
		{"987654321", false},
		{"98765432101", false},
		{"98765x4321", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.phone); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.c", true},
		{"asha@example.com", true},
		{"a.b@c.d", true},
		{"@b.c", false},
		{"a@", false},
		{"a@b", false},
		{"a@b.", false},
		{"a@.c", false},
		{"a@@b.c", false},
		{"plain", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
