package cli

import (
	"fmt"
	"strconv"

	"bankfolio/internal/core"
	"bankfolio/internal/i18n"

	"github.com/shopspring/decimal"
)

type AssetCmd struct {
	Add    AssetAddCmd    `cmd:"" help:"Add an asset."`
	List   AssetListCmd   `cmd:"" help:"List assets." default:"1"`
	Update AssetUpdateCmd `cmd:"" help:"Update an asset; omitted flags keep their value."`
	Delete AssetDeleteCmd `cmd:"" help:"Delete an asset."`
}

type AssetAddCmd struct {
	Name     string `arg:"" help:"Asset name, e.g. Gold."`
	Quantity string `arg:"" help:"Units held."`
	Price    string `arg:"" help:"Price per unit."`
}

func (cmd *AssetAddCmd) Run(env *Env) error {
	quantity, err := amountField("quantity", cmd.Quantity)
	if err != nil {
		return err
	}
	price, err := amountField("price_per_unit", cmd.Price)
	if err != nil {
		return err
	}
	asset, err := env.Ledger.CreateAsset(env.ctx(), core.AssetInput{
		Name:         cmd.Name,
		Quantity:     quantity,
		PricePerUnit: price,
	})
	if err != nil {
		return err
	}
	env.success(i18n.AssetAdded)
	printInfof(env.stdout(), "#%d %s %s", asset.ID, asset.Name, asset.Value().StringFixed(2))
	return nil
}

// amountField parses a required amount, reporting failures against field.
func amountField(field, s string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(s)
	if err != nil {
		return decimal.Zero, &core.ValidationError{Field: field, Reason: err.(*core.ValidationError).Reason}
	}
	return d, nil
}

type AssetListCmd struct{}

func (cmd *AssetListCmd) Run(env *Env) error {
	assets, err := env.Ledger.ListAssets(env.ctx())
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		printInfof(env.stdout(), "%s", env.t(i18n.NoData))
		return nil
	}

	t := newTable("ID", "NAME", "QUANTITY", "PRICE", "VALUE").alignRight(0, 2, 3, 4)
	for _, a := range assets {
		t.add(
			strconv.FormatInt(a.ID, 10),
			a.Name,
			a.Quantity.String(),
			a.PricePerUnit.StringFixed(2),
			a.Value().StringFixed(2),
		)
	}
	t.render(env.stdout())
	return nil
}

type AssetUpdateCmd struct {
	ID       int64  `arg:"" help:"Asset ID."`
	Name     string `help:"New name."`
	Quantity string `help:"New quantity."`
	Price    string `help:"New price per unit."`
}

func (cmd *AssetUpdateCmd) Run(env *Env) error {
	asset, err := env.Ledger.GetAsset(env.ctx(), cmd.ID)
	if err != nil {
		return err
	}
	in := core.AssetInput{Name: asset.Name, Quantity: asset.Quantity, PricePerUnit: asset.PricePerUnit}

	if cmd.Name != "" {
		in.Name = cmd.Name
	}
	if cmd.Quantity != "" {
		if in.Quantity, err = amountField("quantity", cmd.Quantity); err != nil {
			return err
		}
	}
	if cmd.Price != "" {
		if in.PricePerUnit, err = amountField("price_per_unit", cmd.Price); err != nil {
			return err
		}
	}

	if err := env.Ledger.UpdateAsset(env.ctx(), cmd.ID, in); err != nil {
		return err
	}
	env.success(i18n.AssetUpdated)
	return nil
}

type AssetDeleteCmd struct {
	ID  int64 `arg:"" help:"Asset ID."`
	Yes bool  `help:"Do not ask for confirmation." short:"y"`
}

func (cmd *AssetDeleteCmd) Run(env *Env) error {
	ok, err := env.confirm(cmd.Yes, fmt.Sprintf("asset #%d?", cmd.ID))
	if err != nil || !ok {
		return err
	}
	if err := env.Ledger.DeleteAsset(env.ctx(), cmd.ID); err != nil {
		return err
	}
	env.success(i18n.AssetDeleted)
	return nil
}
