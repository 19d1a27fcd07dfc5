package eapi

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const commandAPIPath = "/command-api"

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

type rpcParams struct {
	Version int      `json:"version"`
	Cmds    []string `json:"cmds"`
	Format  string   `json:"format"`
}

type rpcResponse struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      string            `json:"id"`
	Result  []json.RawMessage `json:"result"`
	Error   *rpcError         `json:"error"`
}

type rpcError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    []json.RawMessage `json:"data"`
}

func newRunCmdsRequest(cmds []string, format string) rpcRequest {
	return rpcRequest{
		JSONRPC: "2.0",
		Method:  "runCmds",
		Params: rpcParams{
			Version: 1,
			Cmds:    cmds,
			Format:  format,
		},
		ID: uuid.NewString(),
	}
}

func decodeResponse(body []byte) (*rpcResponse, error) {
	var response rpcResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, internalError("failed to decode eapi response", err)
	}
	if response.Error != nil {
		return nil, commandError(
			fmt.Sprintf("eapi error %d: %s", response.Error.Code, response.Error.Message), nil)
	}
	return &response, nil
}

func decodeResults(response *rpcResponse) ([]map[string]any, error) {
	results := make([]map[string]any, len(response.Result))
	for idx, raw := range response.Result {
		decoded := make(map[string]any)
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, internalError("failed to decode eapi command result", err)
		}
		results[idx] = decoded
	}
	return results, nil
}
