package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/mailbridge/internal/dependency"
	"github.com/crystaldolphin/mailbridge/internal/dispatch"
	"github.com/crystaldolphin/mailbridge/internal/shared/cmdutils"
)

var (
	callArgs string
	callText bool
)

var callCmd = &cobra.Command{
	Use:   "call <operation>",
	Short: "Run one operation and print its response envelope",
	Args:  cobra.ExactArgs(1),
	RunE:  runCall,
}

var scriptCmd = &cobra.Command{
	Use:   "script <operation>",
	Short: "Print the script an operation would run, without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	callCmd.Flags().StringVarP(&callArgs, "args", "a", "", "Operation arguments as a JSON object")
	callCmd.Flags().BoolVarP(&callText, "text", "t", false, "Print the response text instead of the JSON envelope")
	scriptCmd.Flags().StringVarP(&callArgs, "args", "a", "", "Operation arguments as a JSON object")
}

func parseCallArgs() (map[string]any, error) {
	args := map[string]any{}
	if callArgs == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(callArgs), &args); err != nil {
		return nil, fmt.Errorf("parse --args: %w", err)
	}
	return args, nil
}

func runCall(_ *cobra.Command, argv []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	args, err := parseCallArgs()
	if err != nil {
		return err
	}
	container, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := container.Dispatcher().Dispatch(ctx, dispatch.Call{Name: argv[0], Arguments: args})

	if callText {
		cmdutils.PrintResponse(os.Stdout, argv[0], env.Text(), env.IsError)
	} else {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return err
		}
	}
	if env.IsError {
		os.Exit(1)
	}
	return nil
}
