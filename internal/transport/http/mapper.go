package http

import (
	"encoding/json"

	"github.com/duochat/duochat-server/internal/chat"
	"github.com/duochat/duochat-server/internal/core"
	"github.com/duochat/duochat-server/internal/proto"
)

func inboundToCommand(client *core.Client, inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Username == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "username is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoin,
			Client:   client,
			Username: join.Username,
		}, nil, nil
	case proto.InboundTypeMsg:
		var msg proto.MsgData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Content == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "content is required"}, nil
		}
		return &core.Command{
			Kind:    core.CommandSendMessage,
			Client:  client,
			Content: msg.Content,
		}, nil, nil
	case proto.InboundTypeTyping:
		return &core.Command{
			Kind:   core.CommandTyping,
			Client: client,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(ev *core.Event) proto.Outbound {
	switch ev.Kind {
	case core.EventHistory:
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: proto.HistoryPayload{Messages: messagePayloads(ev.Messages)},
		}
	case core.EventJoined:
		return proto.Outbound{
			Type: proto.OutboundTypeJoined,
			Data: userPayload(ev.User),
		}
	case core.EventMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: messagePayload(ev.Message),
		}
	case core.EventPresence:
		return proto.Outbound{
			Type: proto.OutboundTypePresence,
			Data: proto.PresencePayload{Users: userPayloads(ev.Users)},
		}
	case core.EventTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeTyping,
			Data: proto.TypingPayload{Username: ev.Username},
		}
	case core.EventError:
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: ev.Error.Code, Msg: ev.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "internal", Msg: "unknown event"}}
	}
}

func messagePayload(m chat.Message) proto.MessagePayload {
	return proto.MessagePayload{
		ID:        m.ID,
		Username:  m.Username,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		Type:      string(m.Type),
		Color:     m.Color,
	}
}

func messagePayloads(msgs []chat.Message) []proto.MessagePayload {
	out := make([]proto.MessagePayload, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messagePayload(m))
	}
	return out
}

func userPayload(u chat.User) proto.UserPayload {
	return proto.UserPayload{
		ID:       u.ID,
		Username: u.Username,
		Color:    u.Color,
	}
}

func userPayloads(users []chat.User) []proto.UserPayload {
	out := make([]proto.UserPayload, 0, len(users))
	for _, u := range users {
		out = append(out, userPayload(u))
	}
	return out
}
