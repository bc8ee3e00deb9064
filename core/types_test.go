package core_test

import (
	"testing"

	"github.com/engramlabs/engram-go-sdk/core"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want core.Role
		ok   bool
	}{
		{"user", core.RoleUser, true},
		{" ASSISTANT ", core.RoleAssistant, true},
		{"moderator", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := core.ParseRole(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleDisplay(t *testing.T) {
	if got := core.RoleUser.Display(); got != "User" {
		t.Errorf("Display = %q, want User", got)
	}
	if got := core.RoleAssistant.Display(); got != "Assistant" {
		t.Errorf("Display = %q, want Assistant", got)
	}
}
