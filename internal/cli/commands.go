package cli

import (
	"github.com/alecthomas/kong"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Lang string `help:"Notification language (en or tr), overrides the settings file." short:"l"`
}

type Commands struct {
	Globals

	Account      AccountCmd      `cmd:"" help:"Manage accounts."`
	Outcome      OutcomeCmd      `cmd:"" help:"Manage credit card outcomes."`
	Asset        AssetCmd        `cmd:"" help:"Manage assets."`
	Summary      SummaryCmd      `cmd:"" help:"Show totals and money over time."`
	Distribution DistributionCmd `cmd:"" help:"Show the money distribution list."`
	Lang         LangCmd         `cmd:"" help:"Show or change the notification language."`
	Export       ExportCmd       `cmd:"" help:"Export a snapshot of the ledger through the configured backend."`
	Serve        ServeCmd        `cmd:"" help:"Run the JSON API server."`
}

// NewParser builds the kong parser for grammar, a *Commands or a struct
// embedding Commands.
func NewParser(grammar any, options ...kong.Option) (*kong.Kong, error) {
	opts := append([]kong.Option{
		kong.Name("bankfolio"),
		kong.Description("Personal finance ledger: accounts, credit card outcomes and assets."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(grammar, opts...)
}

// Run parses args and runs the selected command against env.
func Run(args []string, env *Env, options ...kong.Option) error {
	var cmds Commands
	parser, err := NewParser(&cmds, options...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if cmds.Lang != "" {
		env.Lang = cmds.Lang
	}
	return kctx.Run(env)
}
