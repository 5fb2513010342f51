package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/proto"
)

func TestInboundToCommand(t *testing.T) {
	client := core.NewClient("c1")

	tests := []struct {
		name     string
		inbound  proto.Inbound
		wantKind core.CommandKind
		wantErr  string // proto error code, "" for none
	}{
		{
			name:     "join",
			inbound:  proto.Inbound{Type: proto.InboundTypeJoin, Data: json.RawMessage(`{"user":"alice"}`)},
			wantKind: core.CommandJoin,
		},
		{
			name:    "join without user",
			inbound: proto.Inbound{Type: proto.InboundTypeJoin, Data: json.RawMessage(`{}`)},
			wantErr: core.ErrCodeBadRequest,
		},
		{
			name:    "join with absent data",
			inbound: proto.Inbound{Type: proto.InboundTypeJoin},
			wantErr: core.ErrCodeBadRequest,
		},
		{
			name:     "msg",
			inbound:  proto.Inbound{Type: proto.InboundTypeMsg, Data: json.RawMessage(`{"text":"hi"}`)},
			wantKind: core.CommandPost,
		},
		{
			name:    "msg without text",
			inbound: proto.Inbound{Type: proto.InboundTypeMsg, Data: json.RawMessage(`{"text":""}`)},
			wantErr: core.ErrCodeBadRequest,
		},
		{
			name:    "msg with absent data",
			inbound: proto.Inbound{Type: proto.InboundTypeMsg},
			wantErr: core.ErrCodeBadRequest,
		},
		{
			name:     "leave",
			inbound:  proto.Inbound{Type: proto.InboundTypeLeave},
			wantKind: core.CommandLeave,
		},
		{
			name:    "unknown type",
			inbound: proto.Inbound{Type: "dance"},
			wantErr: "invalid_message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, protoErr, err := inboundToCommand(client, tt.inbound)
			if err != nil {
				t.Fatalf("unexpected mapping error: %v", err)
			}
			if tt.wantErr != "" {
				if protoErr == nil || protoErr.Code != tt.wantErr {
					t.Fatalf("expected proto error %q, got %+v", tt.wantErr, protoErr)
				}
				return
			}
			if protoErr != nil {
				t.Fatalf("unexpected proto error: %+v", protoErr)
			}
			if cmd == nil || cmd.Kind != tt.wantKind {
				t.Fatalf("expected command kind %v, got %+v", tt.wantKind, cmd)
			}
			if cmd.Client != client {
				t.Fatal("command must carry the originating client")
			}
		})
	}
}

func TestOutboundFromEvent(t *testing.T) {
	created := time.UnixMilli(1700000000123)
	msg := core.Message{ID: 7, Room: "room-1", From: "alice", Text: "hi", CreatedAt: created}

	out := outboundFromEvent(&core.Event{Kind: core.EventMessage, Room: "room-1", User: "alice", Message: msg})
	if out.Type != proto.OutboundTypeEvent || out.Event != "message" {
		t.Fatalf("unexpected envelope: %+v", out)
	}
	wire, ok := out.Data.(proto.EventMessage)
	if !ok {
		t.Fatalf("unexpected data type: %T", out.Data)
	}
	if wire.ID != 7 || wire.User != "alice" || wire.TS != created.UnixMilli() {
		t.Fatalf("unexpected wire message: %+v", wire)
	}

	out = outboundFromEvent(&core.Event{Kind: core.EventMessageDeleted, Room: "room-1", Message: msg})
	if out.Event != "message_deleted" {
		t.Fatalf("unexpected envelope: %+v", out)
	}
	del, ok := out.Data.(proto.EventMessageDeleted)
	if !ok {
		t.Fatalf("unexpected data type: %T", out.Data)
	}
	if del.ID != 7 || del.TS != created.UnixMilli() {
		t.Fatalf("unexpected deletion payload: %+v", del)
	}

	out = outboundFromEvent(&core.Event{Kind: core.EventError, Error: &core.CoreError{Code: core.ErrCodeNotJoined, Message: "join first"}})
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodeNotJoined {
		t.Fatalf("unexpected error envelope: %+v", out)
	}
}
