// Package sharestate encodes calculator inputs into shareable URL query
// parameters and decodes them back over a set of defaults.
package sharestate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
)

// Encode returns the base64 encoded JSON form of state, or "" when state
// cannot be marshaled.
func Encode(state any) string {
	raw, err := json.Marshal(state)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// Raw decodes an encoded state into its JSON object bytes.
func Raw(encoded string) (json.RawMessage, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("empty state")
	}
	// Query decoding turns an unescaped '+' into a space.
	encoded = strings.ReplaceAll(encoded, " ", "+")

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("state is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("state is not a JSON object")
	}
	return raw, nil
}

// Decode merges the encoded state over *dst, which should hold the
// defaults. Fields missing from the state keep their current values. On
// failure *dst is left untouched and false is returned.
func Decode[T any](encoded string, dst *T) bool {
	raw, err := Raw(encoded)
	if err != nil {
		return false
	}
	merged := *dst
	if err := json.Unmarshal(raw, &merged); err != nil {
		return false
	}
	*dst = merged
	return true
}

// ShareURL returns base with the encoded state in the s parameter. The mode
// parameter is only added when it differs from the default mode.
func ShareURL(base string, state any, mode calculator.Mode) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	encoded := Encode(state)
	if encoded == "" {
		return "", fmt.Errorf("failed to encode state")
	}

	q := u.Query()
	q.Set(constants.StateParam, encoded)
	if mode.Valid() && mode != calculator.DefaultMode {
		q.Set(constants.ModeParam, string(mode))
	} else {
		q.Del(constants.ModeParam)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromQuery merges the s parameter over *dst and returns the requested
// mode. A missing or invalid state leaves *dst at its defaults.
func FromQuery[T any](values url.Values, dst *T) calculator.Mode {
	if encoded := values.Get(constants.StateParam); encoded != "" {
		Decode(encoded, dst)
	}
	return calculator.ParseMode(values.Get(constants.ModeParam))
}
