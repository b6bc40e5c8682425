package email

import (
	"context"
	"testing"
)

// Both clients must satisfy the Sender interface so callers can swap the
// dry-run client in without caring which one they hold.
var (
	_ Sender = (*Client)(nil)
	_ Sender = (*DryRunClient)(nil)
)

func TestDryRunClientSend(t *testing.T) {
	var sender Sender = &DryRunClient{}

	id, err := sender.Send(context.Background(), Email{
		To:          "ops@example.com",
		Subject:     "[adsvideo] Advertisement ready",
		HTMLContent: "<p>done</p>",
		TextContent: "done",
	})
	if err != nil {
		t.Fatalf("Send() returned unexpected error: %v", err)
	}
	if id != "dry-run-message-id" {
		t.Errorf("Send() message ID = %q", id)
	}
}
