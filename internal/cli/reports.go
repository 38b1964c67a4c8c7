package cli

import (
	"fmt"
	"strconv"

	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
)

type SummaryCmd struct{}

func (cmd *SummaryCmd) Run(env *Env) error {
	summary, err := env.Ledger.Summary(env.ctx())
	if err != nil {
		return err
	}
	out := env.stdout()

	t := newTable("", "").alignRight(1)
	t.add(env.t(i18n.TotalMoney), summary.TotalMoney.StringFixed(2))
	t.add(env.t(i18n.TotalOutcome), summary.TotalOutcome.StringFixed(2))
	t.add(env.t(i18n.TotalAssets), summary.TotalAssets.StringFixed(2))
	t.render(out)

	if len(summary.MoneyOverTime) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(out)
	series := newTable("DATE", "TOTAL").alignRight(1)
	for _, p := range summary.MoneyOverTime {
		series.add(p.Date.String(), p.Total.StringFixed(2))
	}
	series.render(out)
	return nil
}

type DistributionCmd struct{}

func (cmd *DistributionCmd) Run(env *Env) error {
	holdings, err := env.Ledger.Distribution(env.ctx())
	if err != nil {
		return err
	}
	if len(holdings) == 0 {
		printInfof(env.stdout(), "%s", env.t(i18n.NoData))
		return nil
	}

	_, _ = fmt.Fprintln(env.stdout(), headerStyle.Render(env.t(i18n.MoneyDistributionList)))
	t := newTable("KIND", "ID", "NAME", "VALUE").alignRight(1, 3)
	for _, h := range holdings {
		value := h.Value.StringFixed(2)
		if h.Currency != "" {
			value = core.FormatMoney(h.Value, h.Currency)
		}
		t.add(h.Kind, strconv.FormatInt(h.ID, 10), h.Label, value)
	}
	t.render(env.stdout())
	return nil
}
