package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object", `{"role":"manager"}`, "manager"},
		{"json string", `"manager"`, "manager"},
		{"bare word", "manager", "manager"},
		{"bare word with newline", "manager\n", "manager"},
		{"object keeps padding", `{"role":" manager "}`, " manager "},
		{"json string keeps padding", `" manager "`, " manager "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roleFromBody([]byte(tt.body)))
		})
	}
}
