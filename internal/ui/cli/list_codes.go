package cli

import (
	"fmt"
	"io"

	"pydoclint/internal/core/config"
	"pydoclint/internal/engine/checker"
)

// listCodes prints every code grouped by family. Codes enabled by cfg are
// marked with "*".
func listCodes(w io.Writer, cfg *config.Config) error {
	engineCfg, err := cfg.Checker()
	if err != nil {
		return err
	}
	engine, err := checker.NewEngine(engineCfg)
	if err != nil {
		return err
	}
	enabled := engine.Codes()

	byGroup := make(map[string][]string)
	for _, code := range checker.DefaultRuleSet().Codes() {
		group, ok := checker.GroupFor(code)
		if !ok {
			continue
		}
		byGroup[group.Prefix] = append(byGroup[group.Prefix], code)
	}

	for i, group := range checker.Groups() {
		codes := byGroup[group.Prefix]
		if len(codes) == 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%sxx)\n", group.Name, group.Prefix)
		for _, code := range codes {
			mark := " "
			if enabled[code] {
				mark = "*"
			}
			msg, _ := checker.MessageFor(code)
			fmt.Fprintf(w, "  %s %s  %s\n", mark, code, msg.Short)
		}
	}
	fmt.Fprintf(w, "\n%d of %d codes enabled (convention %s)\n", len(enabled), len(checker.DefaultRuleSet().Codes()), cfg.Convention)
	return nil
}
