package aurory

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
)

const defaultAvatarURL = "https://images.cdn.aurory.io/items/default_avatar.png"

type ProfileClientConfig struct {
	BaseURL       string
	DefaultAvatar string
	Timeout       time.Duration
	Logger        *logging.Logger
}

// ProfileClient resolves player avatars from the aggregator's profile
// endpoint. Lookups are best-effort: any failure yields the default avatar.
type ProfileClient struct {
	httpClient    *fasthttp.Client
	baseURL       string
	defaultAvatar string
	timeout       time.Duration
	logger        *logging.Logger
}

func NewProfileClient(cfg ProfileClientConfig) *ProfileClient {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	defaultAvatar := strings.TrimSpace(cfg.DefaultAvatar)
	if defaultAvatar == "" {
		defaultAvatar = defaultAvatarURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &ProfileClient{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:       baseURL,
		defaultAvatar: defaultAvatar,
		timeout:       timeout,
		logger:        logger,
	}
}

func (c *ProfileClient) AvatarURL(ctx context.Context, playerID string) string {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return c.defaultAvatar
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/players/%s", c.baseURL, playerID))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		c.logger.WarnContext(ctx, "profile lookup failed, using default avatar", "player_id", playerID, "error", err)
		return c.defaultAvatar
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.DebugContext(ctx, "profile lookup non-ok status", "player_id", playerID, "status", resp.StatusCode())
		return c.defaultAvatar
	}

	var envelope profileEnvelope
	if err := sonic.Unmarshal(resp.Body(), &envelope); err != nil {
		c.logger.WarnContext(ctx, "profile payload decode failed", "player_id", playerID, "error", err)
		return c.defaultAvatar
	}

	avatar := strings.TrimSpace(envelope.AvatarURL)
	if avatar == "" {
		return c.defaultAvatar
	}
	return avatar
}
