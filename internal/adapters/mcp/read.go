// Package mcp exposes the open history to MCP clients as read-only
// tools. The history store is never written through this surface.
package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vedetta/internal/domain"
	"vedetta/internal/ports"
)

// RegisterReadTools adds all read-only history tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.HistoryStore) {
	s.AddTool(hasBeenOpenedTool(), hasBeenOpenedHandler(store))
	s.AddTool(reportTool(), reportHandler(store))
	s.AddTool(recentOpensTool(), recentOpensHandler(store))
}

// --- has_been_opened ---

func hasBeenOpenedTool() mcp.Tool {
	return mcp.NewTool("has_been_opened",
		mcp.WithDescription("Check whether a watchlist page was ever opened by a triage run. Exact title match, namespace prefix included."),
		mcp.WithString("page",
			mcp.Description("Exact page title (e.g. \"Alan Turing\" or \"Talk:Alan Turing\")"),
			mcp.Required(),
		),
	)
}

func hasBeenOpenedHandler(store ports.HistoryStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page := req.GetString("page", "")
		if page == "" {
			return toolError(fmt.Errorf("page is required"))
		}

		opened, err := store.HasBeenOpened(domain.PageName(page))
		if err != nil {
			return toolError(err)
		}
		if opened {
			return mcp.NewToolResultText(fmt.Sprintf("%s has been opened before.", page)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s has never been opened.", page)), nil
	}
}

// --- report ---

func reportTool() mcp.Tool {
	return mcp.NewTool("report",
		mcp.WithDescription("Aggregate the open history: per-page occurrence counts, first/last open, and opens per day."),
		mcp.WithString("mode",
			mcp.Description("Rate mode: since-first (current activity) or first-to-last (historical activity). Default since-first."),
		),
		mcp.WithString("fold_prefix",
			mcp.Description("Discussion namespace prefix to fold into main pages (e.g. \"Talk:\"). Omit to keep discussion pages separate."),
		),
	)
}

func reportHandler(store ports.HistoryStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode, ok := domain.ParseRateMode(req.GetString("mode", ""))
		if !ok {
			return toolError(fmt.Errorf("unknown mode (expected since-first or first-to-last)"))
		}
		prefix := req.GetString("fold_prefix", "")

		activities, err := store.Aggregate(ports.AggregateOptions{
			Mode:             mode,
			FoldDiscussion:   prefix != "",
			DiscussionPrefix: prefix,
			Now:              time.Now(),
		})
		if err != nil {
			return toolError(err)
		}
		if len(activities) == 0 {
			return mcp.NewToolResultText("No pages opened yet."), nil
		}

		var sb strings.Builder
		for _, a := range activities {
			fmt.Fprintf(&sb, "%s  opens=%d  first=%s  last=%s  per_day=%.3f\n",
				a.Name, a.Occurrences,
				a.First.Format(time.RFC3339), a.Last.Format(time.RFC3339),
				a.TimesPerDay)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- recent_opens ---

func recentOpensTool() mcp.Tool {
	return mcp.NewTool("recent_opens",
		mcp.WithDescription("List the most recently opened pages, newest first."),
		mcp.WithString("limit",
			mcp.Description("Maximum number of events to return. Default 20."),
		),
	)
}

func recentOpensHandler(store ports.HistoryStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := 20
		if raw := req.GetString("limit", ""); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return toolError(fmt.Errorf("limit must be a positive integer"))
			}
			limit = n
		}

		events, err := store.RecentOpens(limit)
		if err != nil {
			return toolError(err)
		}
		if len(events) == 0 {
			return mcp.NewToolResultText("No pages opened yet."), nil
		}

		var sb strings.Builder
		for _, e := range events {
			fmt.Fprintf(&sb, "%s  %s\n", e.OpenedAt.Format(time.RFC3339), e.Name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
