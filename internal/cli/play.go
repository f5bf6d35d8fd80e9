package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Join a match from the terminal",
		Long: `Connects to the match server, prints every server message on its own line
and sends every line typed on stdin as a text message.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(cmd.Context(), url, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&url, "url", "ws://localhost:8080/ws", "WebSocket endpoint of the server")

	return cmd
}

// play - runs one session until the server hangs up, ctx is done or in is exhausted.
func play(ctx context.Context, url string, in io.Reader, out io.Writer) error {
	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	_ = resp.Body.Close()
	defer ws.Close()

	hungUp := make(chan struct{})
	go func() {
		defer close(hungUp)
		printMessages(ws, out)
	}()

	lines := make(chan string)
	// the scanner may stay blocked on stdin after the session is over
	go scanLines(in, lines, hungUp)

	for {
		select {
		case <-hungUp:
			return nil
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return goodbye(ctx, ws, hungUp)
			}

			if err = ws.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}
		}
	}
}

// printMessages - stops on the first read error; the server hanging up ends every session.
func printMessages(ws *websocket.Conn, out io.Writer) {
	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			return
		}

		fmt.Fprintln(out, string(payload))
	}
}

func scanLines(in io.Reader, lines chan<- string, done <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
}

// goodbye - announces the end of input and waits for the server to close.
func goodbye(ctx context.Context, ws *websocket.Conn, hungUp <-chan struct{}) error {
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := ws.WriteMessage(websocket.CloseMessage, message); err != nil {
		// already gone
		return nil
	}

	select {
	case <-hungUp:
	case <-ctx.Done():
	}

	return nil
}
