package cli

import (
	"context"

	"github.com/alecthomas/kong"
)

// Context wraps context.Context to work around reflection issues in Kong's Bind().
// Use this as the parameter type for Kong command Run methods and pass it to Run.
type Context struct {
	context.Context
}

// NewKongContext creates a Kong parser for cli and parses args.
// The BuildInfo is bound for command Run methods and feeds the --version flag.
// Pass os.Args[1:] in production or explicit args in tests; extra options are applied last.
func NewKongContext(name string, build BuildInfo, cli any, args []string, opts ...kong.Option) (*kong.Context, error) {
	options := append([]kong.Option{
		kong.Name(name),
		kong.UsageOnError(),
		kong.Vars{"version": name + " " + build.String()},
		kong.Bind(build),
	}, opts...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		return nil, err
	}
	return parser.Parse(args)
}
