package action

import "testing"

func TestCheckArgAcceptsDocumentedShapes(t *testing.T) {
	cases := []struct {
		name string
		verb Verb
		arg  any
	}{
		{"spawn string", Spawn, "xterm"},
		{"spawn argv", Spawn, []string{"xterm", "-e", "top"}},
		{"focus_stack", FocusStack, 1},
		{"focus_monitor", FocusMonitor, -1},
		{"move_to_monitor", MoveToMonitor, 1},
		{"focus_direction", FocusDirection, Left},
		{"swap_direction", SwapDirection, Down},
		{"view_tag", ViewTag, 3},
		{"move_to_tag", MoveToTag, 0},
		{"change_layout", ChangeLayout, "grid"},
		{"set_master_factor", SetMasterFactor, 0.05},
		{"inc_num_master", IncNumMaster, -1},
		{"quit zero-arg", Quit, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := CheckArg(c.verb, c.arg); err != nil {
				t.Fatalf("CheckArg(%v, %#v) = %v, want nil", c.verb, c.arg, err)
			}
		})
	}
}

func TestCheckArgRejectsWrongShapes(t *testing.T) {
	cases := []struct {
		name string
		verb Verb
		arg  any
	}{
		{"spawn int", Spawn, 5},
		{"focus_stack string", FocusStack, "1"},
		{"focus_direction out of range", FocusDirection, Direction(99)},
		{"focus_direction wrong type", FocusDirection, 1},
		{"change_layout int", ChangeLayout, 3},
		{"set_master_factor string", SetMasterFactor, "0.1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckArg(c.verb, c.arg)
			if err == nil {
				t.Fatalf("CheckArg(%v, %#v) = nil, want an error", c.verb, c.arg)
			}
			if _, ok := err.(*ArgTypeError); !ok {
				t.Fatalf("CheckArg() returned %T, want *ArgTypeError", err)
			}
		})
	}
}

func TestNamesCoversEveryVerb(t *testing.T) {
	for v := Spawn; v <= IncNumMaster; v++ {
		if _, ok := Names[v]; !ok {
			t.Errorf("Names is missing an entry for verb %d", v)
		}
	}
}
