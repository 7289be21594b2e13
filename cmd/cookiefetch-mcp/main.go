package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/cookiefetch/config"
	"github.com/use-agent/cookiefetch/cookies"
	"github.com/use-agent/cookiefetch/fetcher"
	"github.com/use-agent/cookiefetch/models"
)

func main() {
	// stdout carries the MCP protocol, so logs go to stderr only.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	cfg := config.Load()
	store := cookies.NewStore()
	client := fetcher.NewClient(cfg.Fetcher.DefaultProxy)
	orch := fetcher.New(store, client, fetcher.Config{
		RequestTimeout: cfg.Fetcher.RequestTimeout,
		MaxBodyBytes:   cfg.Fetcher.MaxBodyBytes,
		PollInterval:   cfg.Login.PollInterval,
		WaitCeiling:    cfg.Login.WaitCeiling,
	}, slog.Default())

	s := server.NewMCPServer(
		"cookiefetch",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	fetchTool := mcp.NewTool("fetch",
		mcp.WithDescription("Fetch a web resource using cookies from the user's local browser. If the page demands a fresh login, optionally opens the browser and waits for the user to sign in, then retries."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to fetch (http or https)"),
		),
		mcp.WithString("browser",
			mcp.Description("Which browser's cookies to use: 'default' (system default), 'chrome', 'edge', 'brave', 'opera', 'firefox', or 'safari'"),
			mcp.Enum("default", "chrome", "edge", "brave", "opera", "firefox", "safari"),
		),
		mcp.WithBoolean("auto_login",
			mcp.Description("When a login page is detected, open the browser and wait up to 2 minutes for the user to sign in before retrying (default: true)"),
		),
	)
	s.AddTool(fetchTool, handleFetch(orch))

	downloadTool := mcp.NewTool("download",
		mcp.WithDescription("Download a web resource to a file using cookies from the user's local browser, with the same automatic wait-for-login behavior as fetch."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to download (http or https)"),
		),
		mcp.WithString("output_path",
			mcp.Description("Destination file path relative to the working directory. Defaults to the server-suggested or URL-derived filename."),
		),
		mcp.WithString("browser",
			mcp.Description("Which browser's cookies to use: 'default', 'chrome', 'edge', 'brave', 'opera', 'firefox', or 'safari'"),
			mcp.Enum("default", "chrome", "edge", "brave", "opera", "firefox", "safari"),
		),
		mcp.WithBoolean("auto_login",
			mcp.Description("When a login page is detected, open the browser and wait for the user to sign in before retrying (default: true)"),
		),
	)
	s.AddTool(downloadTool, handleDownload(orch))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleFetch(orch *fetcher.Orchestrator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		autoLogin := request.GetBool("auto_login", true)

		req := &models.FetchRequest{
			URL:       url,
			Browser:   request.GetString("browser", ""),
			AutoLogin: &autoLogin,
		}

		resp, err := orch.Fetch(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(toolError(err)), nil
		}

		if resp.LoginRequired {
			return mcp.NewToolResultText(fmt.Sprintf(
				"Login required.\nLogin URL: %s\nOriginal URL: %s\n\nSign in there, then call fetch again (or set auto_login to true).",
				resp.LoginURL, resp.OriginalURL)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\nFinal URL: %s\nCookies used: %d\n", resp.StatusText, resp.FinalURL, resp.CookiesUsed)
		if resp.Title != "" {
			fmt.Fprintf(&sb, "Title: %s\n", resp.Title)
		}
		sb.WriteString("\n")
		sb.WriteString(resp.Body)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleDownload(orch *fetcher.Orchestrator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		autoLogin := request.GetBool("auto_login", true)

		req := &models.DownloadRequest{
			URL:        url,
			OutputPath: request.GetString("output_path", ""),
			Browser:    request.GetString("browser", ""),
			AutoLogin:  &autoLogin,
		}

		resp, err := orch.Download(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(toolError(err)), nil
		}

		if resp.Status == "login_required" {
			return mcp.NewToolResultText(fmt.Sprintf(
				"Login required.\nLogin URL: %s\nOriginal URL: %s\n\nSign in there, then call download again (or set auto_login to true).",
				resp.LoginURL, resp.OriginalURL)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"Saved %s (%s) in %dms at %s using %d cookies.",
			resp.Filename, resp.SizeHuman, resp.DurationMs, resp.AverageSpeedHuman, resp.CookiesUsed)), nil
	}
}

// toolError renders internal errors in the "[CODE] message" convention.
func toolError(err error) string {
	var accessErr *models.AccessError
	if errors.As(err, &accessErr) {
		return fmt.Sprintf("[%s] %s", accessErr.Code, accessErr.Message)
	}
	return err.Error()
}
