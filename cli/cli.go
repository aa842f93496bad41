package cli

import (
	"context"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/critfail/cli/cmd"
	"github.com/ardnew/critfail/pkg"
)

// CLI is the top-level command-line interface for critfail.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Source []string `help:"Read roll expressions from file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`

	Roll     cmd.Roll     `cmd:"" default:"withargs" help:"Roll dice expressions"`
	Parse    cmd.Parse    `cmd:""                    help:"Print the parsed form of an expression"`
	Examples cmd.Examples `cmd:""                    help:"List example expressions"`
	Repl     cmd.Repl     `cmd:""                    help:"Roll dice interactively"`
	Init     cmd.Init     `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the critfail CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.VersionString(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Groups are only declared for flag sets present in this build.
	groups := slices.DeleteFunc(
		[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		func(g kong.Group) bool { return g.Key == "" },
	)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(load, configPaths()...),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
