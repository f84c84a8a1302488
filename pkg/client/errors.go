package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const errorPrefix = "Something went wrong. "

// errorFields lists, in order of precedence, the fields of an error body
// whose value is shown to the user.
var errorFields = []string{"detail", "message"}

// challengeErrorMessage builds the message for a failed /challenge call.
// The first truthy field of errorFields wins; otherwise, and whenever the
// body is not a JSON object, the status code is reported.
func challengeErrorMessage(status int, body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, name := range errorFields {
			if text, ok := truthyText(fields[name]); ok {
				return errorPrefix + text
			}
		}
	}
	return errorPrefix + fmt.Sprintf("Server responded with status %d", status)
}

// resultText extracts the result field of a successful /challenge body.
// A missing or null result, or a body that is not an object, yields "".
// Non-string results are returned as their compact JSON text.
func resultText(body []byte) (string, error) {
	if !json.Valid(body) {
		return "", errors.New("failed to unmarshal response: invalid JSON")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", nil
	}

	raw := bytes.TrimSpace(fields["result"])
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("failed to unmarshal result: %w", err)
		}
		return s, nil
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return string(raw), nil
		}
		return compact.String(), nil
	}
}

// truthyText renders a JSON value for display. Missing, null, false, zero
// and empty-string values report ok=false.
func truthyText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	switch raw[0] {
	case 'n', 'f':
		return "", false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	case '{', '[', 't':
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return string(raw), true
		}
		return compact.String(), true
	default:
		n, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || n == 0 {
			return "", false
		}
		return string(raw), true
	}
}
