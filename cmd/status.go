package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/mailbridge/internal/applescript"
	"github.com/crystaldolphin/mailbridge/internal/config"
	"github.com/crystaldolphin/mailbridge/internal/mail"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show mailbridge status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()

	fmt.Printf("%s mailbridge Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	fmt.Printf("Config:      %s %s\n", cfgPath, mark(statErr == nil))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	runner := applescript.NewRunner(applescript.Options{
		Interpreter: cfg.Mail.Interpreter,
		StagingDir:  cfg.Mail.StagingDir,
	})

	resolved, lookErr := exec.LookPath(runner.Interpreter())
	if lookErr != nil {
		fmt.Printf("Interpreter: %s %s\n", runner.Interpreter(), mark(false))
	} else {
		fmt.Printf("Interpreter: %s %s\n", resolved, mark(true))
	}

	_, dirErr := os.Stat(runner.StagingDir())
	fmt.Printf("Staging dir: %s %s\n", runner.StagingDir(), mark(dirErr == nil))

	if t := cfg.Mail.TimeoutDuration(); t > 0 {
		fmt.Printf("Timeout:     %v\n", t)
	} else {
		fmt.Println("Timeout:     none")
	}
	if cfg.Mail.CheckSchedule != "" {
		fmt.Printf("Mail check:  %s\n", cfg.Mail.CheckSchedule)
	}
	fmt.Printf("Operations:  %d\n", len(mail.Operations()))
	return nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
