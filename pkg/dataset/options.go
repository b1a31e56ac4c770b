package dataset

import "fmt"

// stringArg reads a string-valued option, returning def when absent.
func stringArg(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("option %q must be a string, got %T", key, v)
	}
	return s, nil
}

// boolArg reads a boolean-valued option, returning def when absent.
func boolArg(args map[string]any, key string, def bool) (bool, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("option %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

// runeArg reads a single-character option such as a CSV delimiter.
func runeArg(args map[string]any, key string, def rune) (rune, error) {
	s, err := stringArg(args, key, string(def))
	if err != nil {
		return 0, err
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("option %q must be a single character, got %q", key, s)
	}
	return runes[0], nil
}
