package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/roomcast/roomcast/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "username")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(v interface{}) {
		if writeErr := wsjson.Write(ctx, conn, v); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	joinPayload, err := json.Marshal(proto.JoinData{User: *user})
	if err != nil {
		return fmt.Errorf("marshal join: %w", err)
	}
	send(proto.Inbound{Type: proto.InboundTypeJoin, Data: joinPayload})

	fmt.Printf("Connected to %s as %s; the server picks your room\n", *addr, *user)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if outbound.Error != nil {
			fmt.Printf("!! %s: %s\n", outbound.Error.Code, outbound.Error.Msg)
			continue
		}

		switch outbound.Event {
		case "room_info":
			var evt proto.EventRoomInfo
			if err := decodeData(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal room_info: %v", err)
				continue
			}
			fmt.Printf("-- placed into %s\n", evt.Room)
		case "history":
			var evt proto.EventHistory
			if err := decodeData(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal history: %v", err)
				continue
			}
			for _, msg := range evt.Messages {
				printMessage(msg)
			}
		case "message":
			var evt proto.EventMessage
			if err := decodeData(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			printMessage(evt)
		case "user_joined":
			var evt proto.EventUserJoined
			if err := decodeData(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal user_joined: %v", err)
				continue
			}
			fmt.Printf("[%s] %s joined\n", evt.Room, evt.User)
		case "user_left":
			var evt proto.EventUserLeft
			if err := decodeData(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal user_left: %v", err)
				continue
			}
			fmt.Printf("[%s] %s left\n", evt.Room, evt.User)
		case "message_deleted":
			var evt proto.EventMessageDeleted
			if err := decodeData(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal message_deleted: %v", err)
				continue
			}
			fmt.Printf("[%s] message %d expired\n", evt.Room, evt.ID)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/leave" {
			_ = wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeLeave})
			continue
		}

		payload, err := json.Marshal(proto.MsgData{Text: text})
		if err != nil {
			log.Printf("marshal msg: %v", err)
			continue
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeMsg, Data: payload}); err != nil {
			log.Printf("send msg: %v", err)
			return
		}
	}
}

func decodeData(data any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func printMessage(msg proto.EventMessage) {
	if msg.System {
		fmt.Printf("[%s] * %s %s\n", msg.Room, msg.User, msg.Text)
		return
	}
	fmt.Printf("[%s] %s: %s\n", msg.Room, msg.User, msg.Text)
}
