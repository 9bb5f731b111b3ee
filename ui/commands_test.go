package ui

import "testing"

func TestFilterCommandsEmptyQuery(t *testing.T) {
	got := FilterCommands("/")
	if len(got) != len(slashCommands) {
		t.Errorf("len = %d, want %d", len(got), len(slashCommands))
	}
}

func TestFilterCommandsFuzzyMatch(t *testing.T) {
	got := FilterCommands("/cp")
	if len(got) == 0 {
		t.Fatal("no matches for /cp")
	}

	found := false
	for _, c := range got {
		if c.Name == "/copy" {
			found = true
		}
	}
	if !found {
		t.Errorf("/copy not in matches: %v", got)
	}
}

func TestFilterCommandsNoMatch(t *testing.T) {
	if got := FilterCommands("/zzz"); len(got) != 0 {
		t.Errorf("matches = %v, want none", got)
	}
}
