// Storeboard interactive chat client.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	sessionID string
)

var rootCmd = &cobra.Command{
	Use:   "storeboard-client",
	Short: "Interactive chat client for the storeboard onboarding service",
	Long: `Connects to a running storeboard server and drives the onboarding
conversation from the terminal. Type /state to inspect the current
onboarding record, /reset to start over, and /quit to exit.`,
	RunE: runChat,
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the storeboard server")
	rootCmd.Flags().StringVar(&sessionID, "session", "default", "session id to chat under")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	httpc := &http.Client{Timeout: 120 * time.Second}
	base := strings.TrimRight(serverURL, "/")

	fmt.Printf("Connected to %s (session %q). Type /quit to exit.\n", base, sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/state":
			if err := showState(httpc, base); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			continue
		case "/reset":
			if err := resetSession(httpc, base); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			continue
		}

		if err := sendMessage(httpc, base, line); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}

func sendMessage(httpc *http.Client, base, text string) error {
	payload, err := json.Marshal(map[string]string{
		"message":    text,
		"session_id": sessionID,
	})
	if err != nil {
		return err
	}

	resp, err := httpc.Post(base+"/chat", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out struct {
		Response string `json:"response"`
		State    struct {
			Step string `json:"step"`
		} `json:"state"`
		Error string `json:"error"`
	}
	if err := decodeBody(resp, &out); err != nil {
		return err
	}
	if out.Error != "" {
		return fmt.Errorf("server: %s", out.Error)
	}

	fmt.Println(out.Response)
	fmt.Printf("  [step: %s]\n", out.State.Step)
	return nil
}

func showState(httpc *http.Client, base string) error {
	resp, err := httpc.Get(base + "/session/" + sessionID + "/state")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func resetSession(httpc *http.Client, base string) error {
	req, err := http.NewRequest(http.MethodDelete, base+"/session/"+sessionID, nil)
	if err != nil {
		return err
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := decodeBody(resp, &out); err != nil {
		return err
	}
	if out.Error != "" {
		return fmt.Errorf("server: %s", out.Error)
	}
	fmt.Println(out.Message)
	return nil
}

func decodeBody(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
