package kafka

import (
	"errors"
	"testing"
)

func TestMessageBuilder_SetsHeaders(t *testing.T) {
	msg := NewMessage().
		WithKey("64f1a2b3c4d5e6f7a8b9c0d2").
		WithValue(map[string]string{"hello": "world"}).
		WithEventType(EventAppointmentRequested).
		WithSchemaVersion(SchemaVersionV1).
		WithSource("vetconnect-appointments").
		Build()

	if msg.Key != "64f1a2b3c4d5e6f7a8b9c0d2" {
		t.Errorf("unexpected key %q", msg.Key)
	}
	if msg.GetEventType() != EventAppointmentRequested {
		t.Errorf("expected event type %s, got %s", EventAppointmentRequested, msg.GetEventType())
	}
	if msg.Headers[HeaderSchemaVersion] != SchemaVersionV1 {
		t.Errorf("expected schema version header, got %q", msg.Headers[HeaderSchemaVersion])
	}
	if msg.Headers[HeaderSource] != "vetconnect-appointments" {
		t.Errorf("expected source header, got %q", msg.Headers[HeaderSource])
	}
}

func TestMessageBuilder_GeneratesEventIDAndTimestamp(t *testing.T) {
	msg := NewMessage().WithKey("k").WithRawValue([]byte("{}")).Build()

	if msg.GetEventID() == "" {
		t.Error("expected a generated event ID")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("expected a timestamp header")
	}
}

func TestMessageBuilder_PreservesExplicitEventID(t *testing.T) {
	msg := NewMessage().WithEventID("evt-42").Build()

	if msg.GetEventID() != "evt-42" {
		t.Errorf("expected evt-42, got %s", msg.GetEventID())
	}
}

func TestMessage_DecodeValue(t *testing.T) {
	msg := NewMessage().WithValue(AppointmentEvent{
		AppointmentID: "64f1a2b3c4d5e6f7a8b9c0d1",
		VetID:         "64f1a2b3c4d5e6f7a8b9c0d2",
		Status:        "pending",
	}).Build()

	var event AppointmentEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.VetID != "64f1a2b3c4d5e6f7a8b9c0d2" {
		t.Errorf("unexpected vet ID %q", event.VetID)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "network error is transient",
			err:  errors.New("dial tcp: connection refused"),
			want: ErrorTypeTransient,
		},
		{
			name: "timeout is transient",
			err:  errors.New("context deadline exceeded"),
			want: ErrorTypeTransient,
		},
		{
			name: "bad payload is permanent",
			err:  errors.New("deserialization failed for message"),
			want: ErrorTypePermanent,
		},
		{
			name: "unclassifiable defaults to permanent",
			err:  errors.New("something odd happened"),
			want: ErrorTypePermanent,
		},
		{
			name: "wrapped kafka error keeps its type",
			err:  NewTransientError("broker unavailable", nil),
			want: ErrorTypeTransient,
		},
		{
			name: "nil",
			err:  nil,
			want: ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := errors.New("i/o timeout")

	if !ShouldRetry(transient, 0, 3) {
		t.Error("expected retry for transient error under the limit")
	}
	if ShouldRetry(transient, 3, 3) {
		t.Error("expected no retry once the limit is reached")
	}
	if ShouldRetry(errors.New("schema mismatch"), 0, 3) {
		t.Error("expected no retry for permanent error")
	}
	if ShouldRetry(nil, 0, 3) {
		t.Error("expected no retry for nil error")
	}
}
