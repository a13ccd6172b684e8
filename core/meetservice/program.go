package meetservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProgramNumber is the ordinal of an event within a meet.
// The service stores it as a string on entries, so both JSON numbers and
// numeric strings are accepted when decoding.
type ProgramNumber int

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProgramNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return fmt.Errorf("invalid program number %q", raw)
		}
		n = int(f)
	}
	*p = ProgramNumber(n)
	return nil
}

// String implements fmt.Stringer.
func (p ProgramNumber) String() string {
	return strconv.Itoa(int(p))
}
