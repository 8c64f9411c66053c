package text

import "testing"

func TestToID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Some User", "someuser"},
		{"+Voiced Guy", "voicedguy"},
		{"UPPER-case_99", "uppercase99"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToID(tt.in); got != tt.want {
			t.Errorf("ToID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToRoomID(t *testing.T) {
	if got := ToRoomID("Lobby Room-2"); got != "lobbyroom-2" {
		t.Errorf("ToRoomID = %q", got)
	}
}

func TestStripCommands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/me does a thing", "//me does a thing"},
		{"!showimage x", " !showimage x"},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := StripCommands(tt.in); got != tt.want {
			t.Errorf("StripCommands(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLineSplitter(t *testing.T) {
	ls := NewLineSplitter(10)
	ls.Add("aaaa")
	ls.Add("bbbb")
	ls.Add("cccc")
	lines := ls.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %v, want 2 entries", lines)
	}
	if lines[0] != "aaaabbbb" || lines[1] != "cccc" {
		t.Errorf("lines = %v", lines)
	}
}
