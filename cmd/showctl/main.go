package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"stageshow/auth"
	"stageshow/domain"
)

// Config is the CLI's environment. SHOWCTL_KEY is the shared operator key;
// it is only ever sent over the authenticate envelope, never logged.
type Config struct {
	ServerURL string `envconfig:"SHOWCTL_SERVER" default:"http://localhost:8080"`
	Session   string `envconfig:"SHOWCTL_SESSION" default:"default"`
	Key       string `envconfig:"SHOWCTL_KEY"`
	Colours   bool   `envconfig:"SHOWCTL_COLOURS" default:"true"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "showctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if !config.Colours {
		color.Disable()
	}

	if len(args) == 0 {
		return usage()
	}

	switch args[0] {
	case "packs":
		return listPacks(config)
	case "send":
		if len(args) < 2 {
			return fmt.Errorf("usage: showctl send '<action json>'")
		}
		return sendAction(config, args[1])
	case "tail":
		return tailState(config)
	case "hashkey":
		if len(args) < 2 {
			return fmt.Errorf("usage: showctl hashkey <operator key>")
		}
		return hashKey(args[1])
	default:
		return usage()
	}
}

func usage() error {
	return fmt.Errorf("commands: packs | send '<action json>' | tail | hashkey <key>")
}

// listPacks renders the catalog summaries as a table.
func listPacks(config Config) error {
	resp, err := http.Get(config.ServerURL + "/api/packs")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var summaries []domain.PackSummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		return fmt.Errorf("decoding pack list: %w", err)
	}

	color.Cyan.Println("Question packs")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Title", "Type", "Questions"})
	for _, s := range summaries {
		table.Append([]string{s.ID, s.Title, s.Type, fmt.Sprintf("%d", s.Count)})
	}
	table.Render()
	return nil
}

// sendAction authenticates as operator and submits a single action.
func sendAction(config Config, rawAction string) error {
	if config.Key == "" {
		return fmt.Errorf("SHOWCTL_KEY is required to send actions")
	}

	conn, err := dial(config, "operator")
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := awaitType(conn, "hello"); err != nil {
		return err
	}

	if err := conn.WriteJSON(map[string]any{
		"type": "authenticate", "id": 1, "credential": config.Key,
	}); err != nil {
		return err
	}
	ack, err := awaitAck(conn, 1)
	if err != nil {
		return err
	}
	if !ack.OK {
		return fmt.Errorf("authentication refused: %s", ack.Error)
	}

	if err := conn.WriteJSON(map[string]any{
		"type": "action", "id": 2, "action": json.RawMessage(rawAction),
	}); err != nil {
		return err
	}
	ack, err = awaitAck(conn, 2)
	if err != nil {
		return err
	}
	if !ack.OK {
		color.Red.Printf("Rejected: %s %s\n", ack.Error, ack.Details)
		return fmt.Errorf("action rejected")
	}
	color.Green.Println("Accepted")
	return nil
}

// tailState joins as a display and prints every snapshot push.
func tailState(config Config) error {
	conn, err := dial(config, "display")
	if err != nil {
		return err
	}
	defer conn.Close()

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}
		if env.Type != "state" || env.State == nil {
			continue
		}
		out, _ := json.Marshal(env.State)
		fmt.Println(string(out))
	}
}

// hashKey prints the argon2id hash to configure as OPERATOR_KEY_HASH.
func hashKey(key string) error {
	hash, err := auth.HashKey(key)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

type envelope struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	OK      bool              `json:"ok"`
	Error   string            `json:"error"`
	Details string            `json:"details"`
	State   *domain.ShowState `json:"state"`
}

func dial(config Config, role string) (*websocket.Conn, error) {
	wsURL := strings.Replace(config.ServerURL, "http", "ws", 1) +
		"/ws?session=" + config.Session + "&role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", wsURL, err)
	}
	return conn, nil
}

func awaitType(conn *websocket.Conn, wanted string) error {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}
		if env.Type == wanted {
			return nil
		}
	}
}

func awaitAck(conn *websocket.Conn, id int64) (envelope, error) {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return envelope{}, err
		}
		if env.Type == "ack" && env.ID == id {
			return env, nil
		}
	}
}
