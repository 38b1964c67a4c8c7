package cli

import (
	"fmt"
	"strings"

	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
)

type LangCmd struct {
	Show   LangShowCmd   `cmd:"" help:"Print the configured language." default:"1"`
	Switch LangSwitchCmd `cmd:"" help:"Toggle between English and Turkish."`
	Set    LangSetCmd    `cmd:"" help:"Set the language."`
}

type LangShowCmd struct{}

func (cmd *LangShowCmd) Run(env *Env) error {
	current := i18n.English
	if env.Settings != nil {
		current = i18n.Normalize(env.Settings.Language())
	}
	_, _ = fmt.Fprintf(env.stdout(), "%s (%s)\n", current, strings.Join(i18n.Supported(), ", "))
	return nil
}

type LangSwitchCmd struct{}

func (cmd *LangSwitchCmd) Run(env *Env) error {
	if env.Settings == nil {
		return fmt.Errorf("settings are not configured")
	}
	return storeLanguage(env, i18n.Next(env.Settings.Language()))
}

type LangSetCmd struct {
	Language string `arg:"" help:"Language code."`
}

func (cmd *LangSetCmd) Run(env *Env) error {
	if !i18n.IsSupported(cmd.Language) {
		return &core.ValidationError{
			Field:  "language",
			Reason: fmt.Sprintf("%q is not one of %v", cmd.Language, i18n.Supported()),
		}
	}
	if env.Settings == nil {
		return fmt.Errorf("settings are not configured")
	}
	return storeLanguage(env, i18n.Normalize(cmd.Language))
}

func storeLanguage(env *Env, lang string) error {
	if err := env.Settings.SetLanguage(lang); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	// The confirmation is shown in the new language.
	env.Lang = lang
	env.success(i18n.LanguageChanged)
	return nil
}
