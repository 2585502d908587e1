package command

import "testing"

func TestApp_CommandSurface(t *testing.T) {
	app := App()

	if app.Name != "sesskv-cli" {
		t.Errorf("Name = %q", app.Name)
	}

	want := map[string][]string{
		"custom":  {"set", "get", "del", "exists", "keys"},
		"session": {"create", "get", "list", "add-data", "get-data", "delete"},
		"bridge":  {"status", "resolve"},
	}

	for name, subs := range want {
		cmd := app.Command(name)
		if cmd == nil {
			t.Errorf("command %q missing", name)
			continue
		}
		have := make(map[string]bool, len(cmd.Subcommands))
		for _, sc := range cmd.Subcommands {
			have[sc.Name] = true
		}
		for _, sub := range subs {
			if !have[sub] {
				t.Errorf("command %q lacks subcommand %q", name, sub)
			}
		}
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	app := App()

	names := make(map[string]bool)
	for _, f := range app.Flags {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, want := range []string{"server", "s", "admin", "a"} {
		if !names[want] {
			t.Errorf("flag %q missing", want)
		}
	}
}
