// Package gateway presents the remote onboarding tools as local callables
// over a single reused MCP stdio session.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	contractx "github.com/warasiri/storeboard/agent/contract"
	toolx "github.com/warasiri/storeboard/agent/tool"
)

// Config controls how the tool server process is reached.
type Config struct {
	Command     string        `envconfig:"COMMAND" split_words:"true" default:"storeboard-tools"`
	Args        []string      `envconfig:"ARGS" split_words:"true"`
	CallTimeout time.Duration `envconfig:"CALL_TIMEOUT" split_words:"true" default:"15s"`
	Fallback    bool          `envconfig:"FALLBACK" split_words:"true" default:"true"`
}

// Client calls the three onboarding tools over MCP. The session is
// established lazily exactly once; when Fallback is enabled, any transport
// or decode failure is answered by the in-process mock backend instead,
// which produces the same response shapes as the live server.
type Client struct {
	cfg      Config
	fallback contractx.ToolBackend

	mu      sync.Mutex
	session *mcpclient.Client
}

var _ contractx.ToolBackend = (*Client)(nil)

func NewClient(cfg Config) *Client {
	c := &Client{cfg: cfg}
	if cfg.Fallback {
		c.fallback = toolx.NewMockBackend()
	}
	return c
}

func (c *Client) StoreInfo(ctx context.Context, storeID string) (contractx.StoreInfo, error) {
	var out contractx.StoreInfo
	err := c.invoke(ctx, toolx.ToolGetStoreInfo, map[string]any{"store_id": storeID}, &out)
	if err == nil {
		return out, nil
	}
	if c.fallback != nil {
		log.Warn().Err(err).Str("tool", toolx.ToolGetStoreInfo).Msg("gateway call failed, using local fallback")
		return c.fallback.StoreInfo(ctx, storeID)
	}
	return contractx.StoreInfo{}, err
}

func (c *Client) B2BData(ctx context.Context, storeID string) (contractx.B2BData, error) {
	var out contractx.B2BData
	err := c.invoke(ctx, toolx.ToolGetB2BData, map[string]any{"store_id": storeID}, &out)
	if err == nil {
		return out, nil
	}
	if c.fallback != nil {
		log.Warn().Err(err).Str("tool", toolx.ToolGetB2BData).Msg("gateway call failed, using local fallback")
		return c.fallback.B2BData(ctx, storeID)
	}
	return contractx.B2BData{}, err
}

func (c *Client) OnboardUser(ctx context.Context, details contractx.OnboardingDetails) (contractx.OnboardingReceipt, error) {
	args := map[string]any{
		"store_id":            details.StoreID,
		"team_name":           details.TeamName,
		"profile_name":        details.ProfileName,
		"selected_profiles":   details.SelectedProfiles,
		"selected_identities": details.SelectedIdentities,
	}
	var out contractx.OnboardingReceipt
	err := c.invoke(ctx, toolx.ToolOnboardUser, args, &out)
	if err == nil {
		return out, nil
	}
	if c.fallback != nil {
		log.Warn().Err(err).Str("tool", toolx.ToolOnboardUser).Msg("gateway call failed, using local fallback")
		return c.fallback.OnboardUser(ctx, details)
	}
	return contractx.OnboardingReceipt{}, err
}

// Close releases the MCP session. Safe to call without a prior connect and
// safe to call twice.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return
	}
	if err := c.session.Close(); err != nil {
		log.Warn().Err(err).Msg("closing tool gateway session")
	}
	c.session = nil
}

func (c *Client) invoke(ctx context.Context, tool string, args map[string]any, out any) error {
	session, err := c.ensureSession(ctx)
	if err != nil {
		return err
	}

	callCtx := ctx
	if c.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.CallTimeout)
		defer cancel()
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	res, err := session.CallTool(callCtx, req)
	if err != nil {
		return fmt.Errorf("%w: call %s: %v", contractx.ErrGateway, tool, err)
	}
	text := firstText(res)
	if res.IsError {
		return fmt.Errorf("%w: %s returned error: %s", contractx.ErrGateway, tool, text)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty response from %s", contractx.ErrGateway, tool)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", contractx.ErrGateway, tool, err)
	}
	return nil
}

// ensureSession establishes the stdio session exactly once. The mutex keeps
// concurrent first calls from racing to spawn the tool server.
func (c *Client) ensureSession(ctx context.Context) (*mcpclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return c.session, nil
	}

	cli, err := mcpclient.NewStdioMCPClient(c.cfg.Command, nil, c.cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: start tool server: %v", contractx.ErrGateway, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "storeboard", Version: "0.1.0"}

	if _, err := cli.Initialize(ctx, initReq); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("%w: initialize tool session: %v", contractx.ErrGateway, err)
	}

	log.Info().Str("command", c.cfg.Command).Msg("tool gateway session initialized")
	c.session = cli
	return c.session, nil
}

func firstText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			return tc.Text
		}
	}
	return ""
}
