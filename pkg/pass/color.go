package pass

import (
	"fmt"
	"strconv"
)

// NormalizeColor converts #rgb and #rrggbb colours to the rgb(r,g,b) form
// pass.json expects. In the three digit form every digit is its own channel
// value, so #fff becomes rgb(15,15,15). Six or more digits use the first six
// and ignore the rest. Any other digit count, or a non-hex digit, returns an
// InvalidFormatError. Values that do not start with '#' are returned as-is.
func NormalizeColor(color string) (string, error) {
	if color == "" || color[0] != '#' {
		return color, nil
	}

	digits := color[1:]
	var channels [3]string
	switch {
	case len(digits) == 3:
		channels = [3]string{digits[0:1], digits[1:2], digits[2:3]}
	case len(digits) >= 6:
		channels = [3]string{digits[0:2], digits[2:4], digits[4:6]}
	default:
		return "", &InvalidFormatError{Value: color, Reason: "use #rgb or #rrggbb for color values"}
	}

	var rgb [3]uint64
	for i, channel := range channels {
		v, err := strconv.ParseUint(channel, 16, 8)
		if err != nil {
			return "", &InvalidFormatError{Value: color, Reason: fmt.Sprintf("channel %q is not hexadecimal", channel)}
		}
		rgb[i] = v
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", rgb[0], rgb[1], rgb[2]), nil
}
