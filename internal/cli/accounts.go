package cli

import (
	"fmt"
	"strconv"

	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
)

type AccountCmd struct {
	Add    AccountAddCmd    `cmd:"" help:"Add an account."`
	List   AccountListCmd   `cmd:"" help:"List accounts." default:"1"`
	Update AccountUpdateCmd `cmd:"" help:"Update an account; omitted flags keep their value."`
	Adjust AccountAdjustCmd `cmd:"" help:"Add a signed amount to an account balance."`
	Delete AccountDeleteCmd `cmd:"" help:"Delete an account."`
}

type AccountAddCmd struct {
	Type     string `arg:"" help:"Account type, e.g. Savings."`
	Currency string `arg:"" help:"Currency code, e.g. USD."`
	Rate     string `help:"Exchange rate to the local currency." required:""`
	Income   string `help:"Monthly income percentage."`
	Balance  string `help:"Opening balance." default:"0"`
}

func (cmd *AccountAddCmd) Run(env *Env) error {
	rate, err := core.ParsePositive("exchange_rate", cmd.Rate)
	if err != nil {
		return err
	}
	income, err := core.ParseOptional("income_percentage", cmd.Income)
	if err != nil {
		return err
	}
	balance, err := core.ParseOptional("balance", cmd.Balance)
	if err != nil {
		return err
	}

	account, err := env.Ledger.CreateAccount(env.ctx(), core.AccountInput{
		Type:             cmd.Type,
		Currency:         cmd.Currency,
		ExchangeRate:     rate,
		IncomePercentage: income,
		Balance:          balance.Decimal,
	})
	if err != nil {
		return err
	}
	env.success(i18n.AccountAdded)
	printInfof(env.stdout(), "#%d %s %s", account.ID, account.Type, core.FormatMoney(account.Balance, account.Currency))
	return nil
}

type AccountListCmd struct{}

func (cmd *AccountListCmd) Run(env *Env) error {
	accounts, err := env.Ledger.ListAccounts(env.ctx())
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		printInfof(env.stdout(), "%s", env.t(i18n.NoData))
		return nil
	}

	t := newTable("ID", "TYPE", "CURRENCY", "RATE", "INCOME %", "BALANCE", "MONTHLY INCOME", "DATE").alignRight(0, 3, 4, 5, 6)
	for _, a := range accounts {
		income := "-"
		if a.IncomePercentage.Valid {
			income = a.IncomePercentage.Decimal.String()
		}
		t.add(
			strconv.FormatInt(a.ID, 10),
			a.Type,
			a.Currency,
			a.ExchangeRate.String(),
			income,
			core.FormatMoney(a.Balance, a.Currency),
			core.FormatMoney(a.MonthlyIncome(a.Balance), a.Currency),
			a.CreatedOn.String(),
		)
	}
	t.render(env.stdout())
	return nil
}

type AccountUpdateCmd struct {
	ID       int64  `arg:"" help:"Account ID."`
	Type     string `help:"New account type."`
	Currency string `help:"New currency code."`
	Rate     string `help:"New exchange rate."`
	Income   string `help:"New monthly income percentage."`
	NoIncome bool   `help:"Remove the income percentage."`
	Balance  string `help:"New balance."`
}

func (cmd *AccountUpdateCmd) Run(env *Env) error {
	account, err := env.Ledger.GetAccount(env.ctx(), cmd.ID)
	if err != nil {
		return err
	}
	in := account.Input()

	if cmd.Type != "" {
		in.Type = cmd.Type
	}
	if cmd.Currency != "" {
		in.Currency = cmd.Currency
	}
	if cmd.Rate != "" {
		if in.ExchangeRate, err = core.ParsePositive("exchange_rate", cmd.Rate); err != nil {
			return err
		}
	}
	if cmd.Income != "" {
		if in.IncomePercentage, err = core.ParseOptional("income_percentage", cmd.Income); err != nil {
			return err
		}
	}
	if cmd.NoIncome {
		in.IncomePercentage.Valid = false
	}
	if cmd.Balance != "" {
		balance, err := core.ParseAmount(cmd.Balance)
		if err != nil {
			return &core.ValidationError{Field: "balance", Reason: err.(*core.ValidationError).Reason}
		}
		in.Balance = balance
	}

	if err := env.Ledger.UpdateAccount(env.ctx(), cmd.ID, in); err != nil {
		return err
	}
	env.success(i18n.AccountUpdated)
	return nil
}

type AccountAdjustCmd struct {
	ID     int64  `arg:"" help:"Account ID."`
	Amount string `arg:"" help:"Signed amount; use -- before a negative value."`
}

func (cmd *AccountAdjustCmd) Run(env *Env) error {
	delta, err := core.ParseAmount(cmd.Amount)
	if err != nil {
		return err
	}
	account, err := env.Ledger.AdjustBalance(env.ctx(), cmd.ID, delta)
	if err != nil {
		return err
	}
	env.success(i18n.BalanceAdjusted)
	printInfof(env.stdout(), "#%d %s", account.ID, core.FormatMoney(account.Balance, account.Currency))
	return nil
}

type AccountDeleteCmd struct {
	ID  int64 `arg:"" help:"Account ID."`
	Yes bool  `help:"Do not ask for confirmation." short:"y"`
}

func (cmd *AccountDeleteCmd) Run(env *Env) error {
	ok, err := env.confirm(cmd.Yes, fmt.Sprintf("account #%d?", cmd.ID))
	if err != nil || !ok {
		return err
	}
	if err := env.Ledger.DeleteAccount(env.ctx(), cmd.ID); err != nil {
		return err
	}
	env.success(i18n.AccountDeleted)
	return nil
}
