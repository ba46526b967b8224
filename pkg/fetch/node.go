package fetch

import (
	"fmt"
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// RequestNode converts a built Request into a shape-core AST node for
// interop with shape tooling. The node carries the wire-relevant fields:
//
//	{ "type": "request", "method": "GET", "target": "/api",
//	  "version": "HTTP/1.1", "scheme": "http",
//	  "authority": "example.com:80",
//	  "headers": ["User-Agent: ...", ...], "body": "..." }
//
// The conversion is one-way: a Request is only ever built from a URL via
// RequestBuilder, never reassembled from wire parts.
func RequestNode(req *Request) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":      ast.NewLiteralNode("request", zeroPos),
		"method":    ast.NewLiteralNode(req.Method(), zeroPos),
		"target":    ast.NewLiteralNode(req.Target(), zeroPos),
		"version":   ast.NewLiteralNode(req.HTTPVersion(), zeroPos),
		"scheme":    ast.NewLiteralNode(req.Scheme(), zeroPos),
		"authority": ast.NewLiteralNode(req.Authority(), zeroPos),
		"headers":   headerLinesNode(req.Headers()),
	}
	if body, ok := req.Body(); ok {
		props["body"] = ast.NewLiteralNode(string(body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// ResponseNode converts a Response into a shape-core AST node:
//
//	{ "type": "response", "statusCode": 200, "reason": "OK",
//	  "headers": ["Content-Type: text/plain", ...], "body": "..." }
func ResponseNode(resp *Response) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":       ast.NewLiteralNode("response", zeroPos),
		"statusCode": ast.NewLiteralNode(int64(resp.StatusCode()), zeroPos),
		"reason":     ast.NewLiteralNode(resp.Reason(), zeroPos),
		"headers":    headerLinesNode(resp.Headers()),
	}
	if body := resp.Body(); body != nil {
		props["body"] = ast.NewLiteralNode(string(body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// NodeToResponse converts an AST node produced by ResponseNode back into
// a Response. The status line is resynthesized from statusCode and
// reason; the Response never stored the peer's protocol token, so the
// rebuilt value is observably identical to the original.
func NodeToResponse(node ast.SchemaNode) (*Response, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("fetch: NodeToResponse: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	code, err := intProp(props, "statusCode")
	if err != nil {
		return nil, fmt.Errorf("fetch: NodeToResponse: %w", err)
	}
	reason, _ := stringProp(props, "reason")

	builder := NewResponseBuilder()
	builder.SetStatusLine("HTTP/1.1 " + strconv.FormatInt(code, 10) + " " + reason)

	if v, ok := props["headers"]; ok {
		lines, err := nodeToHeaderLines(v)
		if err != nil {
			return nil, fmt.Errorf("fetch: NodeToResponse: %w", err)
		}
		for _, line := range lines {
			builder.AddHeader(line)
		}
	}
	if body, ok := stringProp(props, "body"); ok {
		builder.SetBody([]byte(body))
	}
	return builder.Build()
}

func headerLinesNode(lines []string) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(lines))
	for i, line := range lines {
		elements[i] = ast.NewLiteralNode(line, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

func nodeToHeaderLines(node ast.SchemaNode) ([]string, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected ArrayDataNode for headers, got %T", node)
	}
	elements := arr.Elements()
	lines := make([]string, 0, len(elements))
	for _, elem := range elements {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			continue
		}
		if s, ok := lit.Value().(string); ok {
			lines = append(lines, s)
		}
	}
	return lines, nil
}

func stringProp(props map[string]ast.SchemaNode, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	lit, ok := v.(*ast.LiteralNode)
	if !ok {
		return "", false
	}
	s, ok := lit.Value().(string)
	return s, ok
}

func intProp(props map[string]ast.SchemaNode, key string) (int64, error) {
	v, ok := props[key]
	if !ok {
		return 0, fmt.Errorf("missing %q property", key)
	}
	lit, ok := v.(*ast.LiteralNode)
	if !ok {
		return 0, fmt.Errorf("%q is not a literal", key)
	}
	switch n := lit.Value().(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not numeric: %w", key, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%q has unsupported type %T", key, n)
	}
}
