package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tubeprobe/internal/config"
	"tubeprobe/internal/logging"
	"tubeprobe/internal/services"
	"tubeprobe/internal/services/llm"
)

const defaultChatPrompt = "Hello, can you search YouTube videos about 'cute cats'?"

func newChatCommand(ctx *commandContext) *cobra.Command {
	var model string
	var system string
	var listModels bool
	var retries int

	cmd := &cobra.Command{
		Use:   "chat [prompt...]",
		Short: "Send one prompt to the chat completion aggregator and print the reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "chat")

			client, err := newChatClient(cfg.GetLLM(), model, retries)
			if err != nil {
				return err
			}

			if listModels {
				return printModels(cmd, client)
			}

			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				prompt = defaultChatPrompt
			}
			messages := make([]llm.Message, 0, 2)
			if strings.TrimSpace(system) != "" {
				messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
			}
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

			started := time.Now()
			reply, err := client.Complete(cmd.Context(), messages)
			if err != nil {
				logging.ErrorWithContext(logger, "chat completion failed", "chat_failed",
					logging.String(logging.FieldModel, client.Model()),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, chatErrorHint(err)),
				)
				return fmt.Errorf("chat: %w", err)
			}
			logger.Debug("chat completion",
				logging.String(logging.FieldModel, client.Model()),
				logging.Duration("elapsed", time.Since(started)),
				logging.Int("reply_chars", len(reply)),
			)

			fmt.Fprintf(cmd.OutOrStdout(), "Response: %s\n", reply)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier (overrides llm.model)")
	cmd.Flags().StringVar(&system, "system", "", "Optional system message sent before the prompt")
	cmd.Flags().BoolVar(&listModels, "list-models", false, "List models the aggregator can route to and exit")
	cmd.Flags().IntVar(&retries, "retries", 1, "Attempts for transient failures (1 disables retrying)")
	return cmd
}

func newChatClient(cfg config.LLMConfig, modelOverride string, attempts int) (*llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "chat", "init",
			"llm.api_key is not set (edit the config or export OPENROUTER_API_KEY)", nil)
	}
	if override := strings.TrimSpace(modelOverride); override != "" {
		cfg.Model = override
	}
	if attempts < 1 {
		attempts = 1
	}
	return llm.NewClient(llm.Config{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		Referer:        cfg.Referer,
		Title:          cfg.Title,
		TimeoutSeconds: cfg.TimeoutSeconds,
	}, llm.WithRetryMaxAttempts(attempts)), nil
}

func printModels(cmd *cobra.Command, client *llm.Client) error {
	models, err := client.ListModels(cmd.Context())
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(models) == 0 {
		fmt.Fprintln(out, "No models available")
		return nil
	}
	rows := make([][]string, 0, len(models))
	for _, model := range models {
		window := ""
		if model.ContextLength > 0 {
			window = humanize.Comma(int64(model.ContextLength))
		}
		rows = append(rows, []string{model.ID, model.Name, window})
	}
	fmt.Fprintln(out, "Available models:")
	fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Context"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	return nil
}

func chatErrorHint(err error) string {
	switch status := llm.StatusCode(err); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "check llm.api_key"
	case status == http.StatusNotFound:
		return "check llm.model and llm.base_url"
	case status == http.StatusTooManyRequests:
		return "rate limited; retry later or raise --retries"
	case status >= http.StatusInternalServerError:
		return "aggregator or upstream provider failure; retry later"
	}
	return "check network connectivity and llm.base_url"
}
