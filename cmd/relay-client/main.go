package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	env "github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"relay-chat/domain"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type config struct {
	RelayURL string `env:"RELAY_URL,default=ws://localhost:3000/ws"`
}

// session is the client-side view of the relay: our own id and the
// roster as of the last users:list, excluding ourselves.
type session struct {
	mu    sync.Mutex
	self  string
	users []string
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var cfg config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.RelayURL, nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("dial %s: %w", cfg.RelayURL, err)
	}
	defer conn.Close()

	state := &session{}

	readErr := make(chan error, 1)
	go func() { readErr <- readLoop(conn, state) }()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case err := <-readErr:
			return exitRuntime, fmt.Errorf("connection lost: %w", err)
		case <-ctx.Done():
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			if err := handleLine(conn, state, line); err != nil {
				return exitRuntime, err
			}
		}
	}
}

func readLoop(conn *websocket.Conn, state *session) error {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var envlp domain.Envelope
		if err := json.Unmarshal(raw, &envlp); err != nil {
			continue
		}

		switch envlp.Event {
		case domain.EventSession:
			var id string
			if json.Unmarshal(envlp.Data, &id) == nil {
				state.mu.Lock()
				state.self = id
				state.mu.Unlock()
				fmt.Println(color.New(color.FgGreen).Render("connected as " + id))
			}
		case domain.EventUserList:
			var roster []string
			if json.Unmarshal(envlp.Data, &roster) == nil {
				state.mu.Lock()
				state.users = lo.Filter(roster, func(id string, _ int) bool {
					return id != state.self
				})
				count := len(state.users)
				state.mu.Unlock()
				fmt.Println(color.New(color.FgCyan).Render(fmt.Sprintf("%d other user(s) online", count)))
			}
		case domain.EventGlobalMessage:
			var text string
			if json.Unmarshal(envlp.Data, &text) == nil {
				fmt.Println(text)
			}
		case domain.EventPrivateMessage:
			var delivery domain.PrivateDelivery
			if json.Unmarshal(envlp.Data, &delivery) == nil {
				fmt.Println(color.New(color.FgMagenta).Render(
					fmt.Sprintf("[Private] %s : %s", delivery.From, delivery.Message)))
			}
		}
	}
}

func handleLine(conn *websocket.Conn, state *session, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	state.mu.Lock()
	self := state.self
	users := append([]string(nil), state.users...)
	state.mu.Unlock()

	switch {
	case line == "/users":
		for _, id := range users {
			fmt.Println(color.New(color.FgCyan).Render(id))
		}
		return nil

	case strings.HasPrefix(line, "/to "):
		fields := strings.SplitN(strings.TrimPrefix(line, "/to "), " ", 2)
		if len(fields) != 2 || strings.TrimSpace(fields[1]) == "" {
			fmt.Println(color.New(color.FgRed).Render("usage: /to <session-id> <message>"))
			return nil
		}
		to := fields[0]
		if err := emit(conn, domain.EventJoinPrivateRoom, domain.JoinRoomRequest{UserID1: self, UserID2: to}); err != nil {
			return err
		}
		return emit(conn, domain.EventPrivateMessage, domain.PrivateSend{From: self, To: to, Message: fields[1]})

	default:
		return emit(conn, domain.EventGlobalMessage, domain.GlobalSend{From: self, Message: line})
	}
}

func emit(conn *websocket.Conn, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(domain.Envelope{Event: event, Data: data})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, frame)
}
