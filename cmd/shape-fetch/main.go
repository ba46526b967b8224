// Command shape-fetch issues a single HTTP/1.1 exchange: it builds one
// request from the target URL and flags, sends it over a fresh
// connection, and prints the response.
//
// Usage:
//
//	shape-fetch [flags] URL
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-fetch/internal/obs"
	"github.com/shapestone/shape-fetch/pkg/fetch"
)

// headerList collects repeated -H flags in order.
type headerList []string

func (h *headerList) String() string { return strings.Join(*h, ", ") }

func (h *headerList) Set(value string) error {
	*h = append(*h, value)
	return nil
}

func main() {
	var headers headerList
	method := flag.String("X", "GET", "HTTP method")
	flag.Var(&headers, "H", "request header line `\"Name: value\"` (repeatable)")
	data := flag.String("d", "", "request body; sets the method to POST unless -X is given")
	userAgent := flag.String("A", "", "override the User-Agent value")
	http10 := flag.Bool("0", false, "use HTTP/1.0 instead of HTTP/1.1")
	include := flag.Bool("i", false, "print the status line and headers before the body")
	insecure := flag.Bool("k", false, "skip TLS certificate verification")
	timeout := flag.Duration("timeout", 30*time.Second, "whole-exchange timeout")
	verbose := flag.Bool("v", false, "log exchange progress to stderr")
	dumpAST := flag.Bool("ast", false, "print the exchange as shape-core AST instead of the body")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: shape-fetch [flags] URL")
		flag.PrintDefaults()
		os.Exit(2)
	}

	builder := fetch.NewRequestBuilder(flag.Arg(0))
	builder.AddHeaders(headers...)
	if *data != "" {
		builder.SetBodyText(*data)
		if *method == "GET" {
			builder.SetMethod("POST")
		}
	}
	if *method != "GET" {
		builder.SetMethod(*method)
	}
	if *userAgent != "" {
		builder.SetUserAgent(*userAgent)
	}
	if *http10 {
		builder.SetHTTPVersion("HTTP/1.0")
	}

	req, err := builder.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := &fetch.Client{Timeout: *timeout}
	if *insecure {
		client.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if *verbose {
		client.Logger = obs.Std{L: log.New(os.Stderr, "shape-fetch ", log.LstdFlags)}
	}

	resp, err := client.Do(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dumpAST {
		fmt.Println(formatNode(fetch.RequestNode(req), ""))
		fmt.Println(formatNode(fetch.ResponseNode(resp), ""))
		return
	}

	if *include {
		fmt.Println(resp.StatusLine())
		for _, line := range resp.Headers() {
			fmt.Println(line)
		}
		fmt.Println()
	}

	body, err := resp.BodyText()
	if err != nil {
		// Not text: dump the raw bytes instead.
		os.Stdout.Write(resp.Body())
		return
	}
	fmt.Print(body)
}

// formatNode renders a shape-core AST node as indented JSON-ish text.
func formatNode(node ast.SchemaNode, indent string) string {
	switch n := node.(type) {
	case *ast.ObjectNode:
		props := n.Properties()
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteString("{\n")
		for i, k := range keys {
			sb.WriteString(indent + "  " + strconv.Quote(k) + ": ")
			sb.WriteString(formatNode(props[k], indent+"  "))
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(indent + "}")
		return sb.String()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		if len(elements) == 0 {
			return "[]"
		}
		var sb strings.Builder
		sb.WriteString("[\n")
		for i, elem := range elements {
			sb.WriteString(indent + "  " + formatNode(elem, indent+"  "))
			if i < len(elements)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(indent + "]")
		return sb.String()
	case *ast.LiteralNode:
		switch v := n.Value().(type) {
		case string:
			return strconv.Quote(v)
		default:
			return fmt.Sprintf("%v", v)
		}
	default:
		return fmt.Sprintf("%v", node)
	}
}
