package livekit

import (
	"context"
	"strings"
	"testing"
	"time"
)

const (
	testAPIKey    = "APItestkey"
	testAPISecret = "testsecret-testsecret-testsecret"
)

func newMock(t *testing.T) Client {
	t.Helper()
	return NewClient("", testAPIKey, testAPISecret, true)
}

func TestMockEnsureRoomIsIdempotent(t *testing.T) {
	client := newMock(t)
	ctx := context.Background()

	name, err := client.EnsureRoom(ctx, "transfer-room-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if name != "transfer-room-1" {
		t.Fatalf("expected room name echoed back, got %q", name)
	}

	again, err := client.EnsureRoom(ctx, "transfer-room-1")
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if again != name {
		t.Fatalf("repeated ensure must return the same room, got %q", again)
	}
}

func TestMockEnsureRoomRequiresName(t *testing.T) {
	client := newMock(t)
	if _, err := client.EnsureRoom(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty room name")
	}
}

func TestMintTokenValidatesInputs(t *testing.T) {
	client := newMock(t)

	if _, err := client.MintToken("", "agent-A", nil); err == nil {
		t.Fatal("expected error for empty room name")
	}
	if _, err := client.MintToken("transfer-room-1", "", nil); err == nil {
		t.Fatal("expected error for empty identity")
	}
}

func TestMintTokenProducesJWT(t *testing.T) {
	client := newMock(t)

	token, err := client.MintToken("transfer-room-1", "agent-A", nil)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected a three-segment JWT, got %d segments", len(parts))
	}

	// Minting twice must not require the room to exist or mutate anything;
	// it is signing only.
	if _, err := client.MintToken("never-ensured-room", "agent-B", &TokenOptions{
		IsModerator: true,
		TTL:         5 * time.Minute,
	}); err != nil {
		t.Fatalf("mint for unknown room failed: %v", err)
	}
}

func TestNewRoomNameIsUnique(t *testing.T) {
	a := NewRoomName()
	b := NewRoomName()
	if !strings.HasPrefix(a, "transfer-") {
		t.Fatalf("expected transfer- prefix, got %q", a)
	}
	if a == b {
		t.Fatal("room names must be unique")
	}
}
