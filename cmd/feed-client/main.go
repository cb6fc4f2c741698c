package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	url := flag.String("url", "ws://127.0.0.1:8080/ws", "live feed websocket URL")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	flag.Parse()

	for {
		if err := run(*url, *pretty, os.Stdout); err != nil {
			log.Printf("[feed-client] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(url string, pretty bool, out io.Writer) error {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer ws.Close()

	log.Printf("[feed-client] connected to %s", url)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, format(msg, pretty))
	}
}

// format indents JSON events; anything else is printed as received.
func format(msg []byte, pretty bool) string {
	if !pretty {
		return string(msg)
	}

	var obj map[string]any
	if err := json.Unmarshal(msg, &obj); err != nil {
		return string(msg)
	}
	b, _ := json.MarshalIndent(obj, "", "  ")
	return string(b)
}
