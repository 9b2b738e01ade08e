package intel

import (
	"encoding/json"
	"strconv"
)

// Result is the decoded body of a successful lookup. Fields holds the
// full object; the named fields lift what the service commonly sends.
// Only Status is guaranteed to be present.
type Result struct {
	Status     string
	Score      string // service "result" field, numeric string
	QueryIP    string
	QueryFlags string
	Country    string // present when the country output flag is set
	BadIP      int    // 1 when the service flags the address
	Fields     map[string]any
}

// ScoreValue parses the numeric score the service reports as a string
// like "0.99".
func (r *Result) ScoreValue() (float64, error) {
	return strconv.ParseFloat(r.Score, 64)
}

// parseResult decodes a response body. Invalid JSON is a
// MalformedBodyError; valid JSON that is not an object with status
// "success" is a ServiceError carrying the body verbatim.
func parseResult(body string) (*Result, error) {
	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, &MalformedBodyError{Cause: err}
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		// Valid JSON but no object: the service answers some
		// rejections with a bare number.
		return nil, &ServiceError{RawBody: body}
	}

	status, _ := obj["status"].(string)
	if status != "success" {
		return nil, &ServiceError{RawBody: body}
	}

	res := &Result{Status: status, Fields: obj}
	res.Score, _ = obj["result"].(string)
	res.QueryIP, _ = obj["queryIP"].(string)
	res.QueryFlags, _ = obj["queryFlags"].(string)
	res.Country, _ = obj["Country"].(string)
	if n, ok := obj["BadIP"].(float64); ok {
		res.BadIP = int(n)
	}
	return res, nil
}
