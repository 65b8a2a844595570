package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/mailbridge/internal/mail"
)

func runScript(_ *cobra.Command, argv []string) error {
	args, err := parseCallArgs()
	if err != nil {
		return err
	}
	op, ok := mail.Find(argv[0])
	if !ok {
		return fmt.Errorf("unknown operation %q", argv[0])
	}
	src, err := op.Synthesize(mail.Args(args))
	if err != nil {
		return err
	}
	fmt.Print(src)
	return nil
}
