// Package chatcmder provides the chat command for interactive conversations
// with a kernel agent.
package chatcmder

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/synaptiq/cereb/pkg/aios"
	"github.com/synaptiq/cereb/pkg/cliui"
	"github.com/synaptiq/cereb/pkg/config"
	"github.com/synaptiq/cereb/pkg/dotdir"
	"github.com/synaptiq/cereb/pkg/logger"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("assistant> ")
)

type chatCommander struct {
	kernelURL string
	agentName string
	model     string
	timeout   uint
	fresh     bool
	debug     bool

	configDir string
	logger    *slog.Logger
}

const chatLongDesc string = `Start an interactive chat session with a kernel agent.

Each message is one synchronous round trip to the kernel: the full
conversation history is sent with every turn and the agent's reply is
rendered as markdown when it arrives. There is no streaming.

The conversation is persisted to session.json in the .cereb/ directory,
so a later "cereb chat" resumes where the last one left off. Pass --new
to discard the saved session and start fresh. Sessions saved against a
different agent are not resumed.

Examples:
  cereb chat
  cereb chat --agent demo_agent --model gpt-4o-mini
  cereb chat --new`

const chatShortDesc string = "Interactive chat with a kernel agent"

// chatFlagKeys are the registry keys for flags this command binds to viper.
var chatFlagKeys = []string{
	config.FlagKernelURL,
	config.FlagAgentName,
	config.FlagTimeout,
	config.FlagModel,
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, chatFlagKeys)

			cmder.kernelURL = v.GetString("kernel.base_url")
			cmder.agentName = v.GetString("kernel.agent_name")
			cmder.timeout = v.GetUint("kernel.timeout_seconds")
			cmder.model = v.GetString("llm.name")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagKernelURL, &cmder.kernelURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagAgentName, &cmder.agentName)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	cmd.Flags().BoolVar(&cmder.fresh, "new", false, "Discard the saved session and start a new conversation")

	return cmd
}

func (c *chatCommander) run(cmd *cobra.Command) error {
	c.logger = logger.New(
		logger.WithPretty(true),
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
	)

	client := aios.NewClient(aios.ClientConfig{
		BaseURL: c.kernelURL,
		Timeout: time.Duration(c.timeout) * time.Second,
	})

	dotdirManager := dotdir.NewManager()
	if c.fresh {
		if err := dotdirManager.ClearSession(c.configDir); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
	}

	session, err := dotdirManager.LoadSessionState(c.configDir)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	// A session held with a different agent is someone else's conversation.
	if session != nil && session.Agent != c.agentName {
		c.logger.Debug("ignoring session for different agent",
			"session_agent", session.Agent,
			"agent", c.agentName,
		)
		session = nil
	}

	var messages []aios.Message
	fmt.Println()
	if session != nil {
		fmt.Printf("  %s Resuming conversation %s\n",
			cliui.SuccessMark,
			cliui.DimStyle.Render(fmt.Sprintf("(%d messages)", len(session.Messages))),
		)
		for _, msg := range session.Messages {
			messages = append(messages, aios.NewMessage(msg.Role, msg.Content))
		}
	} else {
		fmt.Printf("  %s New conversation\n", cliui.DimStyle.Render("●"))
	}

	fmt.Printf("  %s %s %s %s\n\n",
		cliui.KeyStyle.Render("Agent:"),
		cliui.NameStyle.Render(c.agentName),
		cliui.KeyStyle.Render("Model:"),
		cliui.NameStyle.Render(c.model),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))

	var models []aios.ModelConfig
	if c.model != "" {
		models = append(models, aios.ModelConfig{Name: c.model})
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}

		messages = append(messages, aios.NewMessage(aios.RoleUser, input))

		reply, err := c.sendTurn(cmd, client, messages, models)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
			// Drop the failed user message so it can be retried.
			messages = messages[:len(messages)-1]
			continue
		}

		messages = append(messages, aios.NewMessage(aios.RoleAssistant, reply))

		if err := c.saveSession(dotdirManager, messages); err != nil {
			c.logger.Warn("saving session", "error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// sendTurn sends the conversation to the kernel and renders the reply.
func (c *chatCommander) sendTurn(cmd *cobra.Command, client *aios.Client, messages []aios.Message, models []aios.ModelConfig) (string, error) {
	c.logger.Debug("sending chat query",
		"kernel_url", c.kernelURL,
		"agent", c.agentName,
		"message_count", len(messages),
	)

	resp, err := client.Chat(cmd.Context(), c.agentName, messages, models...)
	if err != nil {
		return "", fmt.Errorf("building query: %w", err)
	}
	if !resp.Succeeded() {
		return "", fmt.Errorf("kernel returned status %d: %s", resp.StatusCode, resp.Error)
	}

	rendered, err := cliui.RenderMarkdown(resp.ResponseMessage)
	if err != nil {
		// Fall back to the raw text when the renderer chokes.
		rendered = resp.ResponseMessage
	}

	fmt.Print(assistantPrompt)
	fmt.Println(strings.TrimRight(rendered, "\n"))

	return resp.ResponseMessage, nil
}

func (c *chatCommander) saveSession(m *dotdir.Manager, messages []aios.Message) error {
	state := &dotdir.SessionState{
		Agent:    c.agentName,
		Messages: make([]dotdir.SessionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		state.Messages = append(state.Messages, dotdir.SessionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return m.SaveSession(state, c.configDir)
}
