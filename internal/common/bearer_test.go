package common

import "testing"

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "   ", want: ""},
		{name: "bare token", in: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "bearer prefix", in: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase prefix", in: "bearer abc", want: "abc"},
		{name: "prefix only", in: "Bearer ", want: ""},
		{name: "surrounding spaces", in: "  Bearer   tok  ", want: "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBearer(tt.in); got != tt.want {
				t.Fatalf("ExtractBearer(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
