// Package cli implements the chipp command tree. It is a thin collaborator
// around the client library: it resolves nothing itself and only drives the
// exchanges the library exposes.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chipp "github.com/davidbz/chipp-go"
	"github.com/davidbz/chipp-go/internal/observability"
)

// NewRootCommand builds the chipp command with its subcommands. Taking the
// logger here forces its initialization before any command runs.
func NewRootCommand(client *chipp.Client, logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "chipp",
		Short:         "Talk to a Chipp application from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Debug("client configured", zap.Object("config", client.Config()))
		},
	}

	root.AddCommand(
		newChatCommand(client),
		newStreamCommand(client),
		newPingCommand(client),
	)

	return root
}

func newChatCommand(client *chipp.Client) *cobra.Command {
	var sessionID, systemPrompt string

	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Send one prompt and print the full response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := observability.WithModel(cmd.Context(), client.Config().Model)
			session := newSession(sessionID)

			result, err := client.Chat(ctx, session, buildMessages(systemPrompt, args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Content)

			logger := observability.FromContext(ctx).With(zap.String("session_id", result.ChatSessionID))
			if result.Usage != nil {
				logger = logger.With(zap.Int("total_tokens", result.Usage.TotalTokens))
			}
			logger.Info("chat completed")

			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "resume an existing conversation by its session ID")
	cmd.Flags().StringVar(&systemPrompt, "system", "", "system prompt to prepend")

	return cmd
}

func newStreamCommand(client *chipp.Client) *cobra.Command {
	var sessionID, systemPrompt string

	cmd := &cobra.Command{
		Use:   "stream [prompt]",
		Short: "Send one prompt and print fragments as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := observability.WithModel(cmd.Context(), client.Config().Model)
			session := newSession(sessionID)

			stream, err := client.ChatStream(ctx, session, buildMessages(systemPrompt, args[0]))
			if err != nil {
				return err
			}
			defer stream.Close()

			out := cmd.OutOrStdout()
			for {
				fragment, recvErr := stream.Recv()
				if recvErr != nil {
					if errors.Is(recvErr, io.EOF) {
						break
					}
					return recvErr
				}
				fmt.Fprint(out, fragment)
			}
			fmt.Fprintln(out)

			observability.FromContext(ctx).Info("stream completed",
				zap.String("session_id", session.ID()),
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "resume an existing conversation by its session ID")
	cmd.Flags().StringVar(&systemPrompt, "system", "", "system prompt to prepend")

	return cmd
}

func newPingCommand(client *chipp.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Measure round-trip latency to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			latency, err := client.Ping(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "round-trip latency: %s\n", latency)

			return nil
		},
	}
}

func newSession(sessionID string) *chipp.Session {
	if sessionID != "" {
		return chipp.NewSessionWithID(sessionID)
	}
	return chipp.NewSession()
}

func buildMessages(systemPrompt, prompt string) []chipp.Message {
	var messages []chipp.Message
	if systemPrompt != "" {
		messages = append(messages, chipp.SystemMessage(systemPrompt))
	}
	return append(messages, chipp.UserMessage(prompt))
}
