package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/leighmcculloch/codesync/internal/logging"
	"github.com/leighmcculloch/codesync/internal/repository"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every subcommand needs.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	fs       afero.Fs
	settings *viper.Viper
	log      *zap.Logger
}

func (a *app) repoOptions() []repository.Option {
	return []repository.Option{
		repository.WithFs(a.fs),
		repository.WithLogger(a.log),
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		fs:       afero.NewOsFs(),
		settings: newSettings(),
		log:      zap.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:   "codesync",
		Short: "Create and locate codesync repositories",
		Long:  "A version control tool that keeps its state in a .codesync directory at the root of the work tree.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := a.settings.GetString("log-level")
			if a.settings.GetBool("verbose") {
				level = logging.LevelDebug
			}
			l, err := logging.New(stderr, level)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", logging.LevelWarn, "log level: debug, info, warn, error or none")
	if err := a.settings.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return 1
	}

	rootCmd.AddCommand(
		newInitCmd(a),
		newInfoCmd(a),
		newListCmd(a),
	)
	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	_ = a.log.Sync()
	if err != nil {
		return 1
	}
	return 0
}

// newSettings returns the CLI settings, read from CODESYNC_* environment
// variables and overridden by flags once they are bound.
func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("codesync")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("log-level", logging.LevelWarn)
	return v
}
