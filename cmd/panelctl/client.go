package main

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// frame mirrors the server's wire contract.
type frame struct {
	Message      string `json:"message,omitempty"`
	TurnComplete bool   `json:"turn_complete,omitempty"`
	Interrupted  bool   `json:"interrupted,omitempty"`
	Error        string `json:"error,omitempty"`
}

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send one message and print the streamed response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, sessionID := connFlags(cmd)

			conn, err := dial(server, sessionID)
			if err != nil {
				return err
			}
			defer conn.Close()

			return runTurn(conn, strings.Join(args, " "))
		},
	}
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation with the panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, sessionID := connFlags(cmd)

			conn, err := dial(server, sessionID)
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Println(renderNotice(fmt.Sprintf("connected to %s (session %s), empty line quits", server, sessionID)))

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print(renderPrompt())
				if !scanner.Scan() {
					return scanner.Err()
				}
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					return nil
				}
				if err := runTurn(conn, text); err != nil {
					return err
				}
			}
		},
	}
}

func dial(server, sessionID string) (*websocket.Conn, error) {
	u := url.URL{Scheme: "ws", Host: server, Path: "/ws/" + sessionID}
	if strings.HasPrefix(server, "https://") {
		u.Scheme = "wss"
		u.Host = strings.TrimPrefix(server, "https://")
	} else if strings.HasPrefix(server, "http://") {
		u.Host = strings.TrimPrefix(server, "http://")
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", u.String(), err)
	}
	return conn, nil
}

// runTurn sends one message and prints frames until the terminal one.
func runTurn(conn *websocket.Conn, text string) error {
	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if f.Error != "" {
			fmt.Println(renderError(f.Error))
		}
		if f.Message != "" {
			fmt.Println(renderMessage(f.Message))
		}
		if f.Interrupted {
			fmt.Println(renderNotice("turn interrupted"))
		}
		if f.TurnComplete {
			return nil
		}
	}
}
