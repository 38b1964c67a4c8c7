package cli

import (
	"fmt"
	"strconv"
	"strings"

	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
)

type OutcomeCmd struct {
	Add    OutcomeAddCmd    `cmd:"" help:"Add a credit card outcome."`
	List   OutcomeListCmd   `cmd:"" help:"List credit card outcomes." default:"1"`
	Update OutcomeUpdateCmd `cmd:"" help:"Update an outcome. Balances are not changed."`
	Delete OutcomeDeleteCmd `cmd:"" help:"Delete an outcome, crediting its distributions back."`
}

type OutcomeAddCmd struct {
	AccountID   int64    `arg:"" name:"account-id" help:"Credit card account ID."`
	Amount      string   `arg:"" help:"Outcome amount."`
	Description string   `arg:"" help:"What the money was spent on."`
	Split       []string `help:"Paying account and share as ACCOUNT_ID=AMOUNT, repeatable." sep:"none"`
}

func (cmd *OutcomeAddCmd) Run(env *Env) error {
	in, err := outcomeInput(cmd.AccountID, cmd.Amount, cmd.Description, cmd.Split)
	if err != nil {
		return err
	}
	outcome, err := env.Ledger.CreateOutcome(env.ctx(), in)
	if err != nil {
		return err
	}
	env.success(i18n.OutcomeAdded)
	printInfof(env.stdout(), "#%d %s", outcome.ID, outcome.Amount.StringFixed(2))
	return nil
}

func outcomeInput(accountID int64, amount, description string, split []string) (core.OutcomeInput, error) {
	value, err := core.ParsePositive("amount", amount)
	if err != nil {
		return core.OutcomeInput{}, err
	}
	var dist core.Distributions
	if len(split) > 0 {
		if dist, err = core.ParseDistribution(split); err != nil {
			return core.OutcomeInput{}, err
		}
	}
	return core.OutcomeInput{
		AccountID:     accountID,
		Amount:        value,
		Description:   description,
		Distributions: dist,
	}, nil
}

type OutcomeListCmd struct{}

func (cmd *OutcomeListCmd) Run(env *Env) error {
	outcomes, err := env.Ledger.ListOutcomes(env.ctx())
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		printInfof(env.stdout(), "%s", env.t(i18n.NoData))
		return nil
	}

	t := newTable("ID", "ACCOUNT", "AMOUNT", "DESCRIPTION", "DISTRIBUTIONS").alignRight(0, 1, 2)
	for _, o := range outcomes {
		t.add(
			strconv.FormatInt(o.ID, 10),
			strconv.FormatInt(o.AccountID, 10),
			o.Amount.StringFixed(2),
			o.Description,
			formatDistributions(o.Distributions),
		)
	}
	t.render(env.stdout())
	return nil
}

func formatDistributions(d core.Distributions) string {
	if len(d) == 0 {
		return mutedStyle.Render("-")
	}
	parts := make([]string, 0, len(d))
	for _, id := range d.AccountIDs() {
		parts = append(parts, fmt.Sprintf("%d=%s", id, d[id].String()))
	}
	return strings.Join(parts, ", ")
}

type OutcomeUpdateCmd struct {
	ID          int64    `arg:"" help:"Outcome ID."`
	AccountID   int64    `name:"account-id" help:"New credit card account ID."`
	Amount      string   `help:"New amount."`
	Description string   `help:"New description."`
	Split       []string `help:"Replace the distributions, ACCOUNT_ID=AMOUNT, repeatable." sep:"none"`
	NoSplit     bool     `help:"Remove all distributions."`
}

func (cmd *OutcomeUpdateCmd) Run(env *Env) error {
	current, err := env.Ledger.GetOutcome(env.ctx(), cmd.ID)
	if err != nil {
		return err
	}

	in := core.OutcomeInput{
		AccountID:     current.AccountID,
		Amount:        current.Amount,
		Description:   current.Description,
		Distributions: current.Distributions,
	}
	if cmd.AccountID != 0 {
		in.AccountID = cmd.AccountID
	}
	if cmd.Amount != "" {
		if in.Amount, err = core.ParsePositive("amount", cmd.Amount); err != nil {
			return err
		}
	}
	if cmd.Description != "" {
		in.Description = cmd.Description
	}
	switch {
	case cmd.NoSplit:
		in.Distributions = nil
	case len(cmd.Split) > 0:
		if in.Distributions, err = core.ParseDistribution(cmd.Split); err != nil {
			return err
		}
	}

	if err := env.Ledger.UpdateOutcome(env.ctx(), cmd.ID, in); err != nil {
		return err
	}
	env.success(i18n.OutcomeUpdated)
	return nil
}

type OutcomeDeleteCmd struct {
	ID  int64 `arg:"" help:"Outcome ID."`
	Yes bool  `help:"Do not ask for confirmation." short:"y"`
}

func (cmd *OutcomeDeleteCmd) Run(env *Env) error {
	ok, err := env.confirm(cmd.Yes, fmt.Sprintf("outcome #%d?", cmd.ID))
	if err != nil || !ok {
		return err
	}
	if err := env.Ledger.DeleteOutcome(env.ctx(), cmd.ID); err != nil {
		return err
	}
	env.success(i18n.OutcomeDeleted)
	return nil
}
