package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/mozilla-ai/mcpscout/internal/domain"
	"github.com/mozilla-ai/mcpscout/internal/errors"
)

// defaultToolName is used for tools that do not report a name.
const defaultToolName = "tool"

// queryTools asks client for its tool list through whichever query capability it exposes.
// It returns errors.ErrToolQueryUnsupported when the client exposes none.
func queryTools(ctx context.Context, client Client) ([]domain.ToolDescriptor, error) {
	var (
		raw any
		err error
	)

	switch c := client.(type) {
	case ToolLister:
		raw, err = c.ListTools(ctx)
	case ToolsAccessor:
		raw, err = c.Tools(ctx)
	default:
		return nil, errors.ErrToolQueryUnsupported
	}

	if err != nil {
		return nil, err
	}

	return NormalizeTools(raw)
}

// NormalizeTools converts a tool list response into tool descriptors.
// The response may be a flat list or an object holding the list in its 'tools' field,
// either as Go values or as raw JSON. A null response is an empty list.
// Tools without a name are named 'tool', missing descriptions are empty.
func NormalizeTools(raw any) ([]domain.ToolDescriptor, error) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return []domain.ToolDescriptor{}, nil
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("tool list response could not be encoded: %w", err)
		}
		data = b
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("tool list response is not valid JSON")
	}

	list := gjson.ParseBytes(data)
	switch {
	case list.Type == gjson.Null:
		return []domain.ToolDescriptor{}, nil
	case list.IsObject():
		list = list.Get("tools")
		if list.Type == gjson.Null || !list.Exists() {
			return []domain.ToolDescriptor{}, nil
		}
		if !list.IsArray() {
			return nil, fmt.Errorf("tool list response field 'tools' is not a list")
		}
	case !list.IsArray():
		return nil, fmt.Errorf("tool list response is not a list")
	}

	tools := []domain.ToolDescriptor{}
	list.ForEach(func(_, t gjson.Result) bool {
		name := t.Get("name").String()
		if name == "" {
			name = defaultToolName
		}
		tools = append(tools, domain.ToolDescriptor{
			Name:        name,
			Description: t.Get("description").String(),
		})
		return true
	})

	return tools, nil
}
