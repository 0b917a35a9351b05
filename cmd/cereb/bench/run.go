package benchcmder

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/synaptiq/cereb/pkg/agent"
	"github.com/synaptiq/cereb/pkg/aios"
	"github.com/synaptiq/cereb/pkg/bench"
	"github.com/synaptiq/cereb/pkg/bench/humaneval"
	"github.com/synaptiq/cereb/pkg/cliui"
	"github.com/synaptiq/cereb/pkg/config"
	"github.com/synaptiq/cereb/pkg/logger"
)

type runCommander struct {
	dataset         string
	kernelURL       string
	agentName       string
	timeout         uint
	agentType       string
	outputFile      string
	programsDir     string
	maxNum          int
	continueOnError bool
	model           string
	logFile         string
	debug           bool
}

const runLongDesc string = `Run a benchmark dataset through a kernel agent.

Reads a JSONL dataset of problems (task_id, prompt, test, entry_point),
sends each prompt to the configured agent one at a time, and writes all
predictions to the output file in one shot at the end of the run. Each
task also leaves a standalone verification program in the programs
directory combining the prompt, the extracted completion, and the
dataset's check function.

By default the run aborts on the first record failure. Pass
--continue-on-error to record the failure on that task's result line
and keep going.

Flag values resolve through the usual precedence chain:
flags > CEREB_* environment variables > config.toml > defaults.

Examples:
  cereb bench run --dataset humaneval.jsonl
  cereb bench run --dataset humaneval.jsonl --max-num 10 -o out.jsonl
  cereb bench run --dataset humaneval.jsonl --agent-type kernel --model gpt-4o-mini`

const runShortDesc string = "Run a benchmark dataset through an agent"

// runFlagKeys are the registry keys for flags this command binds to viper.
var runFlagKeys = []string{
	config.FlagKernelURL,
	config.FlagAgentName,
	config.FlagTimeout,
	config.FlagAgentType,
	config.FlagOutputFile,
	config.FlagProgramsDir,
	config.FlagMaxNum,
	config.FlagContinueOnError,
	config.FlagModel,
}

func newRunCmd() *cobra.Command {
	cmder := &runCommander{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: runShortDesc,
		Long:  runLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, runFlagKeys)

			cmder.kernelURL = v.GetString("kernel.base_url")
			cmder.agentName = v.GetString("kernel.agent_name")
			cmder.timeout = v.GetUint("kernel.timeout_seconds")
			cmder.agentType = v.GetString("bench.agent_type")
			cmder.outputFile = v.GetString("bench.output_file")
			cmder.programsDir = v.GetString("bench.programs_dir")
			cmder.maxNum = v.GetInt("bench.max_num")
			cmder.continueOnError = v.GetBool("bench.continue_on_error")
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

	cmd.Flags().StringVar(&cmder.dataset, "dataset", "", "Path to the JSONL benchmark dataset (required)")
	_ = cmd.MarkFlagRequired("dataset")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	config.AddStringFlag(cmd, config.Flags, config.FlagKernelURL, &cmder.kernelURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagAgentName, &cmder.agentName)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)
	config.AddStringFlag(cmd, config.Flags, config.FlagAgentType, &cmder.agentType)
	config.AddStringFlag(cmd, config.Flags, config.FlagOutputFile, &cmder.outputFile)
	config.AddStringFlag(cmd, config.Flags, config.FlagProgramsDir, &cmder.programsDir)
	config.AddIntFlag(cmd, config.Flags, config.FlagMaxNum, &cmder.maxNum)
	config.AddBoolFlag(cmd, config.Flags, config.FlagContinueOnError, &cmder.continueOnError)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)

	return cmd
}

func (c *runCommander) run(cmd *cobra.Command) error {
	log, closeLog, err := c.buildLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	records, err := bench.LoadRecords(c.dataset)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	client := aios.NewClient(aios.ClientConfig{
		BaseURL: c.kernelURL,
		Timeout: time.Duration(c.timeout) * time.Second,
	})

	var models []aios.ModelConfig
	if c.model != "" {
		models = append(models, aios.ModelConfig{Name: c.model})
	}

	ag, err := agent.New(c.agentType, agent.Config{
		Client:    client,
		AgentName: c.agentName,
		Models:    models,
	})
	if err != nil {
		return fmt.Errorf("building agent: %w", err)
	}

	invoker, err := humaneval.NewInvoker(humaneval.Config{
		Agent:       ag,
		ProgramsDir: c.programsDir,
	}, log)
	if err != nil {
		return fmt.Errorf("building invoker: %w", err)
	}

	policy := bench.FailFast
	if c.continueOnError {
		policy = bench.ContinueOnError
	}

	harness, err := bench.NewHarness(invoker.Process, bench.Options{
		Limit:     c.maxNum,
		OnFailure: policy,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("building harness: %w", err)
	}

	fmt.Printf("\n  %s %s %s\n",
		cliui.KeyStyle.Render("Dataset:"),
		cliui.ValueStyle.Render(c.dataset),
		cliui.DimStyle.Render(fmt.Sprintf("(%d records)", len(records))),
	)
	fmt.Printf("  %s %s %s %s\n\n",
		cliui.KeyStyle.Render("Agent:"),
		cliui.NameStyle.Render(c.agentName),
		cliui.DimStyle.Render("via"),
		cliui.ValueStyle.Render(c.kernelURL),
	)

	summary, runErr := harness.Run(cmd.Context(), records, c.outputFile)
	if summary != nil {
		fmt.Println()
		for _, line := range strings.Split(summary.String(), "\n") {
			fmt.Printf("  %s %s\n", cliui.Mark(runErr), line)
		}
		fmt.Printf("  %s %s %s\n\n",
			cliui.KeyStyle.Render("Results:"),
			cliui.ValueStyle.Render(c.outputFile),
			cliui.StepStyle.Render(fmt.Sprintf("(%s)", cliui.FormatDuration(summary.Duration))),
		)
	}

	return runErr
}

// buildLogger constructs the run logger: pretty output on stderr, plus a
// JSON stream to --log-file when set. The returned closer flushes the file.
func (c *runCommander) buildLogger() (*slog.Logger, func(), error) {
	pretty := logger.New(
		logger.WithPretty(true),
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
	)

	if c.logFile == "" {
		return pretty, func() {}, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	fileLog := logger.New(
		logger.WithJSON(true),
		logger.WithDebug(c.debug),
		logger.WithWriter(f),
	)

	return logger.Multi(pretty, fileLog), func() { _ = f.Close() }, nil
}
