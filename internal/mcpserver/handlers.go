package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// JailSummary is one entry of list_jails.
type JailSummary struct {
	Name            string `json:"name"`
	Banned          int    `json:"banned"`
	Bantime         string `json:"bantime"`
	Findtime        string `json:"findtime"`
	MaxRetry        string `json:"maxRetry"`
	TotalBanned     string `json:"totalBanned"`
	CurrentlyBanned string `json:"currentlyBanned"`
}

// BanInfo is one address of get_jail.
type BanInfo struct {
	IP       string `json:"ip"`
	TimeLeft string `json:"timeLeft"`
	Expires  *int64 `json:"expires,omitempty"`
}

// JailDetail is the answer of get_jail.
type JailDetail struct {
	JailSummary
	Bans []BanInfo `json:"bans"`
}

func summarize(j *fail2ban.JailState) JailSummary {
	return JailSummary{
		Name:            j.Name,
		Banned:          len(j.Bans),
		Bantime:         j.Bantime.Display(),
		Findtime:        j.Findtime.Display(),
		MaxRetry:        fail2ban.FormatCount(j.MaxRetry),
		TotalBanned:     fail2ban.FormatCount(j.TotalBanned),
		CurrentlyBanned: fail2ban.FormatCount(j.CurrentlyBanned),
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) fetch(ctx context.Context) (fail2ban.Snapshot, *mcp.CallToolResult) {
	snap, err := s.client.Fetch(ctx)
	if err != nil {
		return snap, mcp.NewToolResultError("fail2ban-client failed: " + fail2ban.ErrorMessage(err))
	}
	return snap, nil
}

func (s *Server) handleListJails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, failed := s.fetch(ctx)
	if failed != nil {
		return failed, nil
	}
	out := make([]JailSummary, 0, len(snap.Jails))
	for i := range snap.Jails {
		out = append(out, summarize(&snap.Jails[i]))
	}
	return jsonResult(out)
}

func (s *Server) handleGetJail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("jail")
	if err != nil {
		return mcp.NewToolResultError("jail parameter is required"), nil
	}
	filter := strings.ToLower(request.GetString("filter", ""))

	snap, failed := s.fetch(ctx)
	if failed != nil {
		return failed, nil
	}
	jail := snap.Jail(name)
	if jail == nil {
		return mcp.NewToolResultError(fmt.Sprintf("Jail not found: %s", name)), nil
	}

	detail := JailDetail{JailSummary: summarize(jail), Bans: []BanInfo{}}
	for i := range jail.Bans {
		b := &jail.Bans[i]
		if filter != "" && !strings.Contains(strings.ToLower(b.IP), filter) {
			continue
		}
		detail.Bans = append(detail.Bans, BanInfo{IP: b.IP, TimeLeft: b.TimeLeftLabel(), Expires: b.ExpiryEpoch})
	}
	return jsonResult(detail)
}

func (s *Server) jailAndAddress(request mcp.CallToolRequest) (string, string, *mcp.CallToolResult) {
	jail, err := request.RequireString("jail")
	if err != nil {
		return "", "", mcp.NewToolResultError("jail parameter is required")
	}
	raw, err := request.RequireString("ip")
	if err != nil {
		return "", "", mcp.NewToolResultError("ip parameter is required")
	}
	ip, err := fail2ban.ValidateAddress(raw)
	if err != nil {
		return "", "", mcp.NewToolResultError(err.Error())
	}
	return jail, ip, nil
}

func (s *Server) handleBanIP(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jail, ip, invalid := s.jailAndAddress(request)
	if invalid != nil {
		return invalid, nil
	}
	if err := s.client.Ban(ctx, jail, ip); err != nil {
		logging.Error(subsystem, err, "ban_ip %s in %s failed", ip, jail)
		return mcp.NewToolResultError(fmt.Sprintf("Ban failed for %s: %s", ip, fail2ban.ErrorMessage(err))), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Banned %s in %s", ip, jail)), nil
}

func (s *Server) handleUnbanIP(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jail, ip, invalid := s.jailAndAddress(request)
	if invalid != nil {
		return invalid, nil
	}
	if err := s.client.Unban(ctx, jail, ip); err != nil {
		logging.Error(subsystem, err, "unban_ip %s in %s failed", ip, jail)
		return mcp.NewToolResultError(fmt.Sprintf("Unban failed for %s: %s", ip, fail2ban.ErrorMessage(err))), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Unbanned %s from %s", ip, jail)), nil
}
