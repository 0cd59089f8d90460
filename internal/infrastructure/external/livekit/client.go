package livekit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/livekit/protocol/auth"
	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// DefaultTokenTTL is the join-token lifetime used when the caller does not
// specify one.
const DefaultTokenTTL = time.Hour

// Client wraps LiveKit operations used by the transfer workflow.
type Client interface {
	// EnsureRoom creates the room if it does not exist yet and returns its
	// name. Calling it again with the same name is a no-op.
	EnsureRoom(ctx context.Context, roomName string) (string, error)
	// MintToken signs a join token for identity in roomName. It is a pure
	// function of its inputs and the API secret; no server call is made.
	MintToken(roomName, identity string, options *TokenOptions) (string, error)
}

// TokenOptions holds options for minting an access token.
type TokenOptions struct {
	IsModerator bool
	TTL         time.Duration
}

// realClient is the real LiveKit client implementation
type realClient struct {
	roomClient *lksdk.RoomServiceClient
	apiKey     string
	apiSecret  string
	url        string
}

// NewClient creates a new LiveKit client
func NewClient(url, apiKey, apiSecret string, useMock bool) Client {
	if useMock {
		return &mockClient{
			apiKey:    apiKey,
			apiSecret: apiSecret,
			rooms:     make(map[string]bool),
		}
	}

	return &realClient{
		roomClient: lksdk.NewRoomServiceClient(url, apiKey, apiSecret),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		url:        url,
	}
}

// EnsureRoom looks the room up first and creates it when the existence
// check comes back empty. A failed lookup also falls through to creation,
// which is idempotent on the server side.
func (c *realClient) EnsureRoom(ctx context.Context, roomName string) (string, error) {
	if roomName == "" {
		return "", fmt.Errorf("roomName is required")
	}

	resp, err := c.roomClient.ListRooms(ctx, &livekit.ListRoomsRequest{
		Names: []string{roomName},
	})
	if err == nil {
		for _, room := range resp.Rooms {
			if room.Name == roomName {
				return room.Name, nil
			}
		}
	}

	room, err := c.roomClient.CreateRoom(ctx, &livekit.CreateRoomRequest{
		Name: roomName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create room %s: %w", roomName, err)
	}
	return room.Name, nil
}

// MintToken signs a join token granting publish/subscribe capability, plus
// room-admin capability for moderators.
func (c *realClient) MintToken(roomName, identity string, options *TokenOptions) (string, error) {
	return mintToken(c.apiKey, c.apiSecret, roomName, identity, options)
}

func mintToken(apiKey, apiSecret, roomName, identity string, options *TokenOptions) (string, error) {
	if roomName == "" {
		return "", fmt.Errorf("roomName is required")
	}
	if identity == "" {
		return "", fmt.Errorf("identity is required")
	}
	if options == nil {
		options = &TokenOptions{}
	}
	ttl := options.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	canPublish := true
	canSubscribe := true
	canPublishData := true
	grant := &auth.VideoGrant{
		RoomJoin:       true,
		Room:           roomName,
		CanPublish:     &canPublish,
		CanSubscribe:   &canSubscribe,
		CanPublishData: &canPublishData,
	}
	if options.IsModerator {
		grant.RoomAdmin = true
	}

	at := auth.NewAccessToken(apiKey, apiSecret)
	at.AddGrant(grant).
		SetIdentity(identity).
		SetValidFor(ttl)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// mockClient is a mock implementation for testing and local development.
// Rooms live in memory; tokens are minted with real auth for consistency.
type mockClient struct {
	apiKey    string
	apiSecret string

	mu    sync.Mutex
	rooms map[string]bool
}

// EnsureRoom (mock) simulates idempotent room creation
func (m *mockClient) EnsureRoom(ctx context.Context, roomName string) (string, error) {
	if roomName == "" {
		return "", fmt.Errorf("roomName is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[roomName] = true
	return roomName, nil
}

// MintToken (mock) mints a real token with the configured credentials
func (m *mockClient) MintToken(roomName, identity string, options *TokenOptions) (string, error) {
	return mintToken(m.apiKey, m.apiSecret, roomName, identity, options)
}

// NewRoomName returns a fresh transfer-room identity.
func NewRoomName() string {
	return "transfer-" + uuid.New().String()
}
