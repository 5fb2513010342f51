package http

import (
	"encoding/json"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/proto"
)

func inboundToCommand(client *core.Client, inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		if len(inbound.Data) == 0 {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "data is required"}, nil
		}
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.User == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "user is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandJoin,
			Client: client,
			User:   join.User,
		}, nil, nil
	case proto.InboundTypeLeave:
		return &core.Command{
			Kind:   core.CommandLeave,
			Client: client,
		}, nil, nil
	case proto.InboundTypeMsg:
		if len(inbound.Data) == 0 {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "data is required"}, nil
		}
		var msg proto.MsgData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Text == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandPost,
			Client: client,
			Text:   msg.Text,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func wireMessage(msg core.Message) proto.EventMessage {
	return proto.EventMessage{
		ID:     msg.ID,
		Room:   msg.Room,
		User:   msg.From,
		Text:   msg.Text,
		TS:     msg.CreatedAt.UnixMilli(),
		System: msg.System,
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomInfo:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: "room_info",
			Data:  proto.EventRoomInfo{Room: event.Room},
		}
	case core.EventHistory:
		messages := make([]proto.EventMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, wireMessage(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: "history",
			Data: proto.EventHistory{
				Room:     event.Room,
				Messages: messages,
			},
		}
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: "message",
			Data:  wireMessage(event.Message),
		}
	case core.EventUserJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: "user_joined",
			Data: proto.EventUserJoined{
				Room: event.Room,
				User: event.User,
			},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: "user_left",
			Data: proto.EventUserLeft{
				Room: event.Room,
				User: event.User,
			},
		}
	case core.EventMessageDeleted:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: "message_deleted",
			Data: proto.EventMessageDeleted{
				Room: event.Room,
				ID:   event.Message.ID,
				TS:   event.Message.CreatedAt.UnixMilli(),
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
