package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paixi-lab/paixi/internal/config"
	"github.com/paixi-lab/paixi/internal/logging"
	"github.com/paixi-lab/paixi/internal/server"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to Paixi from the terminal",
	Long:  "Runs the full conversation pipeline against stdin, without the HTTP layer. Say مع السلامة to exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		cfg := config.FromEnv()
		// No free-chat parking on the command line: lessons start
		// immediately when asked for.
		cfg.ChatWindow = 0

		srv, st, err := buildServer(cmd, cfg, logging.NewNop())
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		profile := map[string]any{}
		if name != "" {
			profile["name"] = name
		}

		greeting, sessionID := srv.StartSession(ctx, profile)
		fmt.Println(greeting)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}

			out := srv.Converse(ctx, server.TurnInput{SessionID: sessionID, Text: text})
			fmt.Println(out.Reply)
			if out.Shutdown {
				break
			}
			// A finished lesson waits for a fresh session; roll one over
			// so the next lesson request still lands.
			if await, _ := out.ProgressUpdate["await_new_session"].(bool); await {
				profile["progress"] = out.ProgressUpdate
				_, sessionID = srv.StartSession(ctx, profile)
			}
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().String("name", "", "Kid's name for the session profile")
}
