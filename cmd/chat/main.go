package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
)

var (
	serverURL   = flag.String("server", "http://localhost:8080", "IntelliMed server base URL")
	userID      = flag.String("user", "cli-user", "User id to chat as")
	personaFlag = flag.String("persona", "", "Persona: general, senior, child, anxious or caregiver")
	showHistory = flag.Bool("history", false, "Print stored history before chatting")
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type chatTurn struct {
	Message string `json:"message"`
	IsUser  bool   `json:"isUser"`
	Persona string `json:"persona"`
}

type chatResult struct {
	AIMessage  chatTurn `json:"aiMessage"`
	Confidence float64  `json:"confidence"`
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nGoodbye. If this is an emergency, call 108.")
		cancel()
		os.Exit(0)
	}()

	client := &http.Client{Timeout: 60 * time.Second}

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Println(boldGreen("IntelliMed health assistant"))
	fmt.Printf("Server: %s  User: %s\n", boldCyan(*serverURL), boldCyan(*userID))
	fmt.Println("Type your message and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	if *showHistory {
		turns, err := fetchHistory(ctx, client)
		if err != nil {
			fmt.Fprintln(os.Stderr, red("history: "+err.Error()))
		}
		for _, t := range turns {
			if t.IsUser {
				fmt.Printf("%s %s\n", boldGreen("You:"), t.Message)
			} else {
				fmt.Printf("%s %s\n", boldCyan("Assistant:"), t.Message)
			}
		}
		fmt.Println()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()
		if strings.ToLower(strings.TrimSpace(input)) == "exit" {
			break
		}

		result, err := sendMessage(ctx, client, input)
		if err != nil {
			fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
			continue
		}
		fmt.Printf("%s %s\n", boldCyan("Assistant:"), result.AIMessage.Message)
		if result.Confidence < 0.5 {
			fmt.Println(yellow("(the assistant is having trouble right now; for urgent help call 108)"))
		}
		fmt.Println()
	}
}

func sendMessage(ctx context.Context, client *http.Client, message string) (*chatResult, error) {
	body, err := json.Marshal(map[string]string{
		"userId":  *userID,
		"message": message,
		"persona": *personaFlag,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(*serverURL, "/")+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result chatResult
	if err := doJSON(client, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func fetchHistory(ctx context.Context, client *http.Client) ([]chatTurn, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(*serverURL, "/")+"/api/chat-messages/"+*userID, nil)
	if err != nil {
		return nil, err
	}
	var turns []chatTurn
	if err := doJSON(client, req, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func doJSON(client *http.Client, req *http.Request, out interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, string(raw))
	}
	if env.Code != 0 {
		return fmt.Errorf("%s (code %d)", env.Message, env.Code)
	}
	return json.Unmarshal(env.Data, out)
}
