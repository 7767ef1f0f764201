package config

import (
	"fmt"

	"github.com/xsoder/oxwm/internal/action"
)

var actionNames = map[string]action.Verb{
	"spawn":                    action.Spawn,
	"client.kill":              action.KillClient,
	"client.focus_stack":       action.FocusStack,
	"client.focus_direction":   action.FocusDirection,
	"client.swap_direction":    action.SwapDirection,
	"client.toggle_fullscreen": action.ToggleFullScreen,
	"client.toggle_floating":   action.ToggleFloating,
	"layout.set":               action.ChangeLayout,
	"layout.cycle":             action.CycleLayout,
	"tag.view":                 action.ViewTag,
	"tag.move_to":              action.MoveToTag,
	"monitor.focus":            action.FocusMonitor,
	"monitor.tag":              action.MoveToMonitor,
	"quit":                     action.Quit,
	"restart":                  action.Restart,
	"show_keybinds":            action.ShowKeybindOverlay,
	"toggle_gaps":              action.ToggleGaps,
	"set_master_factor":        action.SetMasterFactor,
	"inc_num_master":           action.IncNumMaster,
}

var directionNames = map[string]action.Direction{
	"up": action.Up, "down": action.Down, "left": action.Left, "right": action.Right,
}

// parseAction resolves a binding's action name + raw TOML arg into an
// action.Action, converting direction/tag-index string args into their
// typed form so action.CheckArg's later validation sees the real types.
func parseAction(name string, arg any) (action.Action, error) {
	verb, ok := actionNames[name]
	if !ok {
		return action.Action{}, fmt.Errorf("unknown action %q", name)
	}
	converted, err := convertArg(verb, arg)
	if err != nil {
		return action.Action{}, err
	}
	return action.Action{Verb: verb, Arg: converted}, nil
}

// asInt normalizes the numeric types TOML decoding can hand back for an
// untyped field (int64 for integer literals, float64 for floats).
func asInt(arg any) (int, bool) {
	switch v := arg.(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

func convertArg(verb action.Verb, arg any) (any, error) {
	switch verb {
	case action.FocusDirection, action.SwapDirection:
		if s, ok := arg.(string); ok {
			d, ok := directionNames[s]
			if !ok {
				return nil, fmt.Errorf("direction %q unknown, want up/down/left/right", s)
			}
			return d, nil
		}
		if n, ok := asInt(arg); ok {
			return action.Direction(n), nil
		}
		return arg, nil
	case action.FocusStack, action.FocusMonitor, action.MoveToMonitor, action.ViewTag, action.MoveToTag, action.IncNumMaster:
		if n, ok := asInt(arg); ok {
			return n, nil
		}
		return arg, nil
	case action.SetMasterFactor:
		switch v := arg.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		}
		return arg, nil
	case action.Spawn:
		switch v := arg.(type) {
		case string:
			return v, nil
		case []any:
			out := make([]string, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out, nil
		}
		return arg, nil
	case action.ChangeLayout:
		if s, ok := arg.(string); ok {
			return s, nil
		}
		return arg, nil
	default:
		return arg, nil
	}
}
