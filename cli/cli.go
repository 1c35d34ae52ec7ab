package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ffins/cli/cmd"
	"github.com/ardnew/ffins/ffi/debuginfo"
	"github.com/ardnew/ffins/pkg"
)

// CLI is the top-level command-line interface for ffins.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`

	LibPath      []string `help:"Directories searched for shared objects before ${libPathEnv}." name:"lib-path" placeholder:"DIR" short:"L"`
	Name         string   `help:"Namespace name used in diagnostics (default: source base name)."                                                   short:"n"`
	AllLanguages bool     `help:"Extract symbols from compile units of any language, not only Rust."`

	Init  cmd.Init  `cmd:"" help:"Write the current flags to the configuration file."`
	Dump  cmd.Dump  `cmd:"" help:"Write the ffi_values document of a source."`
	Tree  cmd.Tree  `cmd:"" help:"Print the namespace tree of a source."`
	Get   cmd.Get   `cmd:"" help:"Resolve a dotted path in the namespace of a source."`
	Query cmd.Query `cmd:"" help:"Select the symbols of a source matching an expression."`
	Fmt   cmd.Fmt   `cmd:"" help:"Serialize the namespace of a source."`
	Repl  cmd.Repl  `cmd:"" help:"Browse the namespace of a source interactively."`
}

// Run executes the ffins CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version(),
		"libPathEnv":         debuginfo.EnvLibraryPath,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolveTOML(ctx), configPath(baseConfig+".toml")),
		kong.Configuration(resolveYAML(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithLoader(ctx, cmd.Loader{
		LibPath:      cli.LibPath,
		Name:         cli.Name,
		AllLanguages: cli.AllLanguages,
	})

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
