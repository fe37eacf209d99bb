// cmd/client/main.go
//
// Cliente de terminal para testar o servidor sem navegador. Conecta no
// /ws, imprime cada evento que chega e traduz comandos digitados para
// as mensagens do protocolo.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"velha/internal/network"
)

// gameID guarda a última partida anunciada pelo servidor, para o
// jogador não precisar digitar o código em cada jogada.
var gameID string

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := "localhost:8080"
	if fromEnv := os.Getenv("SERVER_ADDR"); fromEnv != "" {
		addr = fromEnv
	}

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("could not connect: %v", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go readLoop(conn, done)

	printHelp()
	go inputLoop(conn)

	select {
	case <-done:
		log.Println("connection closed by server")
	case <-interrupt:
		log.Println("interrupted, closing connection")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

// readLoop imprime tudo que o servidor manda e captura o id da partida
// quando ele aparece.
func readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		var payload map[string]any
		if len(msg.Payload) > 0 {
			json.Unmarshal(msg.Payload, &payload)
		}

		if g, ok := payload["game"].(map[string]any); ok {
			if id, ok := g["id"].(string); ok {
				gameID = id
			}
		}

		pretty, _ := json.MarshalIndent(payload, "", "  ")
		fmt.Printf("\n<< %s\n%s\n> ", msg.Type, pretty)
	}
}

// inputLoop lê comandos do stdin e envia as mensagens correspondentes.
func inputLoop(conn *websocket.Conn) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		var msg *network.Message
		switch fields[0] {
		case "queue":
			msg = build("join_queue", map[string]any{"name": arg(fields, 1)})
		case "leave":
			msg = build("leave_queue", nil)
		case "create":
			msg = build("create_private_game", map[string]any{"name": arg(fields, 1)})
		case "join":
			if len(fields) < 2 {
				fmt.Println("usage: join <gameId> [name]")
				break
			}
			gameID = fields[1]
			msg = build("join_private_game", map[string]any{"gameId": fields[1], "name": arg(fields, 2)})
		case "move":
			if len(fields) < 2 {
				fmt.Println("usage: move <position 0-8>")
				break
			}
			pos, err := strconv.Atoi(fields[1])
			if err != nil || gameID == "" {
				fmt.Println("need a numeric position and an active game")
				break
			}
			msg = build("make_move", map[string]any{"gameId": gameID, "position": pos})
		case "rematch":
			if gameID == "" {
				fmt.Println("no active game to restart")
				break
			}
			msg = build("request_rematch", map[string]any{"gameId": gameID})
		case "help":
			printHelp()
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}

		if msg != nil {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("write failed: %v", err)
				return
			}
		}
		fmt.Print("> ")
	}
}

func build(msgType string, payload map[string]any) *network.Message {
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		log.Printf("could not build %s: %v", msgType, err)
		return nil
	}
	return &msg
}

func arg(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func printHelp() {
	fmt.Println(`commands:
  queue [name]      enter the matchmaking queue
  leave             leave the queue
  create [name]     create a private game
  join <id> [name]  join a private game by code
  move <0-8>        play a position in the current game
  rematch           restart the current game
  help              show this message`)
}
