// Package payload decodes the message bodies exchanged with the broker:
// plain numeric text for sensor readings and a small JSON object for
// device control commands.
package payload

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"github.com/goccy/go-json"
)

// Control is a device command, e.g. {"state": "ON"}
type Control struct {
	State string `json:"state"`
}

// ParseNumber reads a float from UTF-8 text such as "21.50". Surrounding
// whitespace is ignored; NaN and infinities are rejected.
func ParseNumber(raw []byte) (float64, error) {
	errFactory := errors.New()

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return 0, errFactory.New(ErrEmpty)
	}
	if !utf8.ValidString(text) {
		return 0, errFactory.WithData(ErrInvalidNumber, "not valid UTF-8")
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errFactory.Wrap(ErrInvalidNumber, err).WithData(text)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errFactory.WithData(ErrInvalidNumber, text)
	}

	return value, nil
}

// ParseControl decodes a control object. Text that is not JSON, JSON that
// is not an object, and objects without a "state" key are rejected with
// distinct codes.
func ParseControl(raw []byte) (Control, error) {
	errFactory := errors.New()

	if !json.Valid(raw) {
		return Control{}, errFactory.New(ErrInvalidControl)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Control{}, errFactory.Wrap(ErrNotObject, err)
	}

	state, ok := fields["state"]
	if !ok {
		return Control{}, errFactory.New(ErrMissingState)
	}

	var c Control
	if err := json.Unmarshal(state, &c.State); err != nil {
		// Non-string states such as {"state": 1} are kept verbatim
		c.State = string(state)
	}

	return c, nil
}

// EncodeControl renders a control command
func EncodeControl(c Control) ([]byte, error) {
	out, err := json.Marshal(c)
	if err != nil {
		return nil, errors.New().Wrap(ErrInvalidControl, err)
	}

	return out, nil
}

// FormatNumber renders a reading the way the sensor publishers do
func FormatNumber(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}
