package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/hazyhaar/anunturi/pkg/article"
	"github.com/mark3labs/mcp-go/mcp"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestDecodeFilter(t *testing.T) {
	res, err := decodeFilter(callRequest(map[string]any{"query": "ședință", "subject": "economie"}))
	if err != nil {
		t.Fatal(err)
	}
	got := res.Request.(*filterReq).Criteria
	want := article.Criteria{Query: "ședință", Subject: "economie"}
	if got != want {
		t.Errorf("criteria = %+v, want %+v", got, want)
	}
}

func TestDecodeRequired(t *testing.T) {
	tests := []struct {
		name   string
		decode func(mcp.CallToolRequest) error
	}{
		{"article", func(r mcp.CallToolRequest) error { _, err := decodeArticle(r); return err }},
		{"highlight", func(r mcp.CallToolRequest) error { _, err := decodeHighlight(r); return err }},
		{"explain", func(r mcp.CallToolRequest) error { _, err := decodeExplain(r); return err }},
	}
	for _, tt := range tests {
		if err := tt.decode(callRequest(map[string]any{})); err == nil {
			t.Errorf("%s: expected error for missing argument", tt.name)
		}
	}

	res, err := decodeExplain(callRequest(map[string]any{"term": "ordin", "catalog": "termeni-ro"}))
	if err != nil {
		t.Fatal(err)
	}
	if r := res.Request.(*explainReq); r.Term != "ordin" || r.Catalog != "termeni-ro" {
		t.Errorf("explain request = %+v", r)
	}
}

func TestMCPToolCall(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewMCPServer(testService(t), logger, "test")

	msg := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"highlight_text","arguments":{"text":"O ordonanță de urgență nouă"}}}`
	out := srv.HandleMessage(context.Background(), json.RawMessage(msg))

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if strings.Contains(body, `"isError":true`) {
		t.Fatalf("tool returned an error: %s", body)
	}
	for _, want := range []string{"ordonanță de urgență", "tagged", "Ordonanța de urgență este"} {
		if !strings.Contains(body, want) {
			t.Errorf("response missing %q: %s", want, body)
		}
	}
}

func TestMCPToolList_FilterQueryFields(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewMCPServer(testService(t), logger, "test")

	out := srv.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Result struct {
			Tools []struct {
				Name        string `json:"name"`
				InputSchema struct {
					Properties map[string]struct {
						Description string `json:"description"`
					} `json:"properties"`
				} `json:"inputSchema"`
			} `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("decode tools/list: %v", err)
	}
	for _, tool := range list.Result.Tools {
		if tool.Name != "filter_articles" {
			continue
		}
		desc := tool.InputSchema.Properties["query"].Description
		for _, field := range []string{"title", "original", "simplified"} {
			if !strings.Contains(desc, field) {
				t.Errorf("query description %q does not name %s", desc, field)
			}
		}
		if strings.Contains(desc, "category") {
			t.Errorf("query description %q names category, which the query does not search", desc)
		}
		return
	}
	t.Fatal("filter_articles not listed")
}
