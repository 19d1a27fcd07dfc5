package eapi

import (
	"strings"
	"sync"

	"github.com/itchyny/gojq"
)

var extractCodeCache sync.Map

// Extract evaluates a jq expression against a decoded command result.
// Command output is deeply nested keyed JSON; resolvers use short jq
// expressions instead of hand-walking type-asserted maps. A nil result
// means the expression matched nothing.
func Extract(payload any, expression string) (any, error) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return payload, nil
	}

	code, err := cachedExtractCode(trimmed)
	if err != nil {
		return nil, validationError("invalid extract expression", err)
	}

	iterator := code.Run(payload)
	results := make([]any, 0, 1)
	for {
		value, ok := iterator.Next()
		if !ok {
			break
		}
		if valueErr, isErr := value.(error); isErr {
			return nil, internalError("failed to evaluate extract expression", valueErr)
		}
		results = append(results, value)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

func cachedExtractCode(expression string) (*gojq.Code, error) {
	if cached, found := extractCodeCache.Load(expression); found {
		return cached.(*gojq.Code), nil
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, err
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, err
	}

	actual, _ := extractCodeCache.LoadOrStore(expression, code)
	return actual.(*gojq.Code), nil
}
