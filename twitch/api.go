package twitch

import (
	"context"
	"time"
)

// Typed endpoint methods. Each assembles an argument map and defers to the
// endpoint table; optional parameters at their zero value are omitted so the
// dispatcher's drop-empty policy never sees them.

// GetWebhookSubscriptionsRequest pages through registered webhook
// subscriptions.
type GetWebhookSubscriptionsRequest struct {
	First int
	After string
}

func (c *Client) GetWebhookSubscriptions(ctx context.Context, req GetWebhookSubscriptionsRequest) (map[string]any, error) {
	args := map[string]any{}
	putInt(args, "first", req.First)
	putString(args, "after", req.After)
	return c.execute(ctx, "GetWebhookSubscriptions", args)
}

// GetUsers looks up users by id, login, or both. At least one of the two
// lists must be supplied.
func (c *Client) GetUsers(ctx context.Context, ids []string, logins []string) (map[string]any, error) {
	args := map[string]any{}
	putList(args, "id", ids)
	putList(args, "login", logins)
	return c.execute(ctx, "GetUsers", args)
}

// AnalyticsRequest is shared by the extension and game analytics endpoints.
// StartedAt and EndedAt must be supplied together, StartedAt not after
// EndedAt.
type AnalyticsRequest struct {
	After      string
	EntityID   string
	First      int
	StartedAt  time.Time
	EndedAt    time.Time
	ReportType string
}

func (c *Client) GetExtensionAnalytics(ctx context.Context, req AnalyticsRequest) (map[string]any, error) {
	args := map[string]any{}
	putString(args, "after", req.After)
	putString(args, "extension_id", req.EntityID)
	putInt(args, "first", req.First)
	putTime(args, "started_at", req.StartedAt)
	putTime(args, "ended_at", req.EndedAt)
	putString(args, "type", req.ReportType)
	return c.execute(ctx, "GetExtensionAnalytics", args)
}

func (c *Client) GetGameAnalytics(ctx context.Context, req AnalyticsRequest) (map[string]any, error) {
	args := map[string]any{}
	putString(args, "after", req.After)
	putString(args, "game_id", req.EntityID)
	putInt(args, "first", req.First)
	putTime(args, "started_at", req.StartedAt)
	putTime(args, "ended_at", req.EndedAt)
	putString(args, "type", req.ReportType)
	return c.execute(ctx, "GetGameAnalytics", args)
}

type GetBitsLeaderboardRequest struct {
	Count     int
	Period    string
	StartedAt time.Time
	UserID    string
}

func (c *Client) GetBitsLeaderboard(ctx context.Context, req GetBitsLeaderboardRequest) (map[string]any, error) {
	args := map[string]any{}
	putInt(args, "count", req.Count)
	putString(args, "period", req.Period)
	putTime(args, "started_at", req.StartedAt)
	putString(args, "user_id", req.UserID)
	return c.execute(ctx, "GetBitsLeaderboard", args)
}

type GetExtensionTransactionsRequest struct {
	ExtensionID string
	IDs         []string
	After       string
	First       int
}

func (c *Client) GetExtensionTransactions(ctx context.Context, req GetExtensionTransactionsRequest) (map[string]any, error) {
	args := map[string]any{"extension_id": req.ExtensionID}
	putList(args, "id", req.IDs)
	putString(args, "after", req.After)
	putInt(args, "first", req.First)
	return c.execute(ctx, "GetExtensionTransactions", args)
}

// CreateClip starts clip creation on a broadcaster's stream. hasDelay shifts
// the capture window by the stream delay.
func (c *Client) CreateClip(ctx context.Context, broadcasterID string, hasDelay bool) (map[string]any, error) {
	return c.execute(ctx, "CreateClip", map[string]any{
		"broadcaster_id": broadcasterID,
		"has_delay":      hasDelay,
	})
}

type GetClipsRequest struct {
	BroadcasterID string
	GameID        string
	ClipIDs       []string
	After         string
	Before        string
	First         int
}

func (c *Client) GetClips(ctx context.Context, req GetClipsRequest) (map[string]any, error) {
	args := map[string]any{}
	putString(args, "broadcaster_id", req.BroadcasterID)
	putString(args, "game_id", req.GameID)
	putList(args, "id", req.ClipIDs)
	putString(args, "after", req.After)
	putString(args, "before", req.Before)
	putInt(args, "first", req.First)
	return c.execute(ctx, "GetClips", args)
}

// CreateEntitlementGrantsUploadURL requests an upload URL for a drops
// manifest. grantType is currently always "bulk_drops_grant".
func (c *Client) CreateEntitlementGrantsUploadURL(ctx context.Context, manifestID string, grantType string) (map[string]any, error) {
	if grantType == "" {
		grantType = "bulk_drops_grant"
	}
	return c.execute(ctx, "CreateEntitlementGrantsUploadURL", map[string]any{
		"manifest_id": manifestID,
		"type":        grantType,
	})
}

func (c *Client) GetCodeStatus(ctx context.Context, codes []string, userID string) (map[string]any, error) {
	return c.execute(ctx, "GetCodeStatus", map[string]any{
		"code":    codes,
		"user_id": userID,
	})
}

func (c *Client) RedeemCode(ctx context.Context, codes []string, userID string) (map[string]any, error) {
	return c.execute(ctx, "RedeemCode", map[string]any{
		"code":    codes,
		"user_id": userID,
	})
}

type GetTopGamesRequest struct {
	After  string
	Before string
	First  int
}

func (c *Client) GetTopGames(ctx context.Context, req GetTopGamesRequest) (map[string]any, error) {
	args := map[string]any{}
	putString(args, "after", req.After)
	putString(args, "before", req.Before)
	putInt(args, "first", req.First)
	return c.execute(ctx, "GetTopGames", args)
}

// GetGames looks up games by id, name, or both; the combined list may not
// exceed 100 entries.
func (c *Client) GetGames(ctx context.Context, ids []string, names []string) (map[string]any, error) {
	args := map[string]any{}
	putList(args, "id", ids)
	putList(args, "name", names)
	return c.execute(ctx, "GetGames", args)
}

// AutomodMessage is one chat message submitted for moderation checking.
type AutomodMessage struct {
	MsgID   string `json:"msg_id"`
	MsgText string `json:"msg_text"`
	UserID  string `json:"user_id"`
}

func (c *Client) CheckAutomodStatus(ctx context.Context, broadcasterID string, messages []AutomodMessage) (map[string]any, error) {
	args := map[string]any{"broadcaster_id": broadcasterID}
	if len(messages) > 0 {
		args["messages"] = messages
	}
	return c.execute(ctx, "CheckAutomodStatus", args)
}

type GetBannedEventsRequest struct {
	BroadcasterID string
	UserID        string
	After         string
	First         int
}

func (c *Client) GetBannedEvents(ctx context.Context, req GetBannedEventsRequest) (map[string]any, error) {
	args := map[string]any{"broadcaster_id": req.BroadcasterID}
	putString(args, "user_id", req.UserID)
	putString(args, "after", req.After)
	putInt(args, "first", req.First)
	return c.execute(ctx, "GetBannedEvents", args)
}

type GetBannedUsersRequest struct {
	BroadcasterID string
	UserIDs       []string
	After         string
	Before        string
}

func (c *Client) GetBannedUsers(ctx context.Context, req GetBannedUsersRequest) (map[string]any, error) {
	args := map[string]any{"broadcaster_id": req.BroadcasterID}
	putList(args, "user_id", req.UserIDs)
	putString(args, "after", req.After)
	putString(args, "before", req.Before)
	return c.execute(ctx, "GetBannedUsers", args)
}

func putString(args map[string]any, name string, value string) {
	if value != "" {
		args[name] = value
	}
}

func putInt(args map[string]any, name string, value int) {
	if value != 0 {
		args[name] = value
	}
}

func putList(args map[string]any, name string, value []string) {
	if len(value) > 0 {
		args[name] = value
	}
}

func putTime(args map[string]any, name string, value time.Time) {
	if !value.IsZero() {
		args[name] = value
	}
}
