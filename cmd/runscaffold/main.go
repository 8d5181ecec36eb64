package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"runscaffold/internal/app"
	"runscaffold/internal/scaffold"
)

type ExitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ex, ok := err.(ExitCoder); ok {
			os.Exit(ex.ExitCode())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var logLevel string
	var jsonOutput bool

	newSvc := func() (*app.Service, error) {
		return app.New(app.Options{ConfigPath: configPath, LogLevel: logLevel})
	}

	cmd := &cobra.Command{
		Use:           "runscaffold",
		Short:         "Create the analysis directory tree of a sequencing run",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")

	cmd.AddCommand(newTopCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newProductsCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newAllCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newPlanCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newDoctorCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newVersionCmd(&jsonOutput))

	return cmd
}

func newTopCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "top <run-description>",
		Aliases: []string{"toplevel"},
		Short:   "Create run-level analysis directories",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			res, err := svc.TopLevel(args[0])
			if err != nil {
				return err
			}
			return printResult(*jsonOutput, res)
		},
	}
}

func newProductsCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "products <run-description>",
		Aliases: []string{"product-level"},
		Short:   "Create per-product directories, tileviz pages and stage1 links",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			res, err := svc.ProductLevel(args[0])
			if err != nil {
				return err
			}
			return printResult(*jsonOutput, res)
		},
	}
}

func newAllCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "all <run-description>",
		Short: "Create the top level and product level trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			res, err := svc.All(args[0])
			if err != nil {
				return err
			}
			return printResult(*jsonOutput, res)
		},
	}
}

func newPlanCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "plan <run-description>",
		Aliases: []string{"dry-run"},
		Short:   "Print the directories and links scaffolding would create",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			plan, err := svc.Plan(args[0])
			if err != nil {
				return err
			}
			if *jsonOutput {
				return print(true, plan, "")
			}
			fmt.Printf("run %d\n", plan.RunID)
			fmt.Println("top level:")
			for _, dir := range plan.TopLevel {
				fmt.Printf("  %s\n", dir)
			}
			fmt.Println("products:")
			for _, dir := range plan.Products {
				fmt.Printf("  %s\n", dir)
			}
			if len(plan.StageLinks) > 0 {
				fmt.Println("stage1 links:")
				for _, l := range plan.StageLinks {
					fmt.Printf("  %s -> %s\n", l.Link, l.Target)
				}
			}
			return nil
		},
	}
}

func newDoctorCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor <run-description>",
		Aliases: []string{"check"},
		Short:   "Check an existing analysis tree",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			report, err := svc.Check(args[0])
			if err != nil {
				return err
			}
			if *jsonOutput {
				if err := print(true, report, ""); err != nil {
					return err
				}
			} else if report.Healthy {
				fmt.Println("healthy")
			} else {
				fmt.Println("issues found:")
				for _, f := range report.Findings {
					fmt.Printf("- [%s] %s\n", f.Code, f.Message)
				}
			}
			if !report.Healthy {
				return &exitError{code: 2, msg: fmt.Sprintf("DOC_UNHEALTHY: %d findings", len(report.Findings))}
			}
			return nil
		},
	}
}

// printResult reports a scaffolding pass. Collected directory errors turn
// into exit code 2 after the output is written.
func printResult(jsonOutput bool, res scaffold.Result) error {
	if jsonOutput {
		if err := print(true, res, ""); err != nil {
			return err
		}
	} else {
		for _, line := range res.Info {
			fmt.Println(line)
		}
		for _, line := range res.Errors {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	if !res.OK() {
		return &exitError{code: 2, msg: fmt.Sprintf("SCF_DIRS: %d directories not created", len(res.Errors))}
	}
	return nil
}

func print(jsonOutput bool, payload any, message string) error {
	if jsonOutput {
		blob, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(blob))
		return nil
	}
	if message != "" {
		fmt.Println(message)
	}
	return nil
}
