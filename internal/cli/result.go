package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/crmarques/eosport/reconciler"
)

// failureResult is the shape emitted on any fatal path: a single
// message, no partial outcome.
type failureResult struct {
	Failed bool   `json:"failed"`
	Msg    string `json:"msg"`
}

func renderFailure(err error) string {
	message := "unknown failure"
	if err != nil {
		message = strings.TrimSpace(err.Error())
	}
	data, marshalErr := json.Marshal(failureResult{Failed: true, Msg: message})
	if marshalErr != nil {
		return fmt.Sprintf(`{"failed":true,"msg":%q}`, message)
	}
	return string(data)
}

func writeOutcome(w io.Writer, outcome reconciler.Outcome) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcome)
}
