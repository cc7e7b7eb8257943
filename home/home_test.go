package home

import "testing"

func TestAllergenName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"🥜 Cacahuetes", "Cacahuetes"},
		{"🐟 Frutos de mar", "Frutos de mar"},
		{"gluten", "gluten"},
		{"  🥛 Lácteos ", "Lácteos"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := allergenName(tc.in); got != tc.want {
			t.Errorf("allergenName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
