package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlag = "config"
	TraceFlag  = "trace"
)

// PrepareBaseCmd wires a root command to viper: every flag can be set through
// an environment variable (envPrefix plus the flag name, dashes and dots
// becoming underscores) or through an optional config file.
func PrepareBaseCmd(cmd *cobra.Command, envPrefix string) Executor {
	cobra.OnInitialize(func() { initEnv(envPrefix) })
	cmd.PersistentFlags().String(ConfigFlag, "", "path to an optional config file")
	cmd.PersistentFlags().Bool(TraceFlag, false, "print out full stack trace on errors")
	cmd.PersistentPreRunE = concatCobraCmdFuncs(bindFlagsLoadViper, cmd.PersistentPreRunE)
	return Executor{cmd, os.Exit}
}

// Executor wraps a prepared command so Execute can exit with a status code.
// Exit is a field so tests can intercept it.
type Executor struct {
	*cobra.Command
	Exit func(int)
}

// Execute runs the command, reporting errors on the command's error stream
// (stderr unless overridden). When --trace is set, errors are rendered with
// %+v for the benefit of error types that carry stack traces. A failed run
// exits with status 1.
func (e Executor) Execute() error {
	e.SilenceUsage = true
	e.SilenceErrors = true
	err := e.Command.Execute()
	if err != nil {
		if viper.GetBool(TraceFlag) {
			fmt.Fprintf(e.ErrOrStderr(), "ERROR: %+v\n", err)
		} else {
			fmt.Fprintf(e.ErrOrStderr(), "ERROR: %v\n", err)
		}
		e.Exit(1)
	}
	return err
}

func initEnv(prefix string) {
	viper.SetEnvPrefix(strings.ToUpper(prefix))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

type cobraCmdFunc func(cmd *cobra.Command, args []string) error

// RunE, PreRunE, PersistentPreRunE all share this signature, so they can be
// chained with concatCobraCmdFuncs.
func concatCobraCmdFuncs(fs ...cobraCmdFunc) cobraCmdFunc {
	return func(cmd *cobra.Command, args []string) error {
		for _, f := range fs {
			if f != nil {
				if err := f(cmd, args); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func bindFlagsLoadViper(cmd *cobra.Command, args []string) error {
	// cmd.Flags() includes flags from this command and all persistent flags
	// from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cfgFile := viper.GetString(ConfigFlag); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	return nil
}
