package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/coffeemaker/internal/config"
	"github.com/hammamikhairi/coffeemaker/internal/conversation"
	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/recipe"
)

var (
	makeSlot  int
	makePaid  string
	initForce bool
)

// makeCmd runs a single purchase against the configured seed state.
var makeCmd = &cobra.Command{
	Use:   "make",
	Short: "Buy one drink and print the change",
	Long: `Purchases the recipe in --slot (1-based) paying --paid, then prints
the change and the remaining inventory. A refund prints the full amount
paid. A payment that is not a whole number is rejected before any
purchase is attempted.

Example:
  coffeemaker make --slot 1 --paid 75`,
	Args: cobra.NoArgs,
	RunE: runMake,
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Print the configured starting inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := setup(printNotifier(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		defer m.Close()

		fmt.Fprint(cmd.OutOrStdout(), m.engine.CheckInventory(cmd.Context()))
		return nil
	},
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Print the configured recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := setup(printNotifier(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		defer m.Close()

		writeMenu(cmd.OutOrStdout(), m.engine.Recipes(cmd.Context()))
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Writes the default settings to the --config path: full stock, an
empty recipe book, and low-stock alerts on. An existing file is left
alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	makeCmd.Flags().IntVar(&makeSlot, "slot", 1, "recipe slot to buy (1-based)")
	makeCmd.Flags().StringVar(&makePaid, "paid", "", "amount paid, a whole number")
	_ = makeCmd.MarkFlagRequired("paid")
}

func runMake(cmd *cobra.Command, args []string) error {
	paid, err := conversation.ParsePayment(makePaid)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	m, err := setup(printNotifier(out))
	if err != nil {
		return err
	}
	defer m.Close()

	receipt := m.engine.Purchase(cmd.Context(), makeSlot-1, paid)
	fmt.Fprintf(out, "Change: %d\n", receipt.Change)
	fmt.Fprint(out, m.engine.CheckInventory(cmd.Context()))
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfgPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	if err := config.DefaultConfig().Save(cfgPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgPath)
	return nil
}

// writeMenu prints one line per slot, 1-based.
func writeMenu(w io.Writer, slots []recipe.Slot) {
	for _, s := range slots {
		if s.Recipe == nil {
			fmt.Fprintf(w, "[%d] (empty)\n", s.Index+1)
			continue
		}
		fmt.Fprintf(w, "[%d] %s\n", s.Index+1, describe(*s.Recipe))
	}
}

// describe renders a recipe on one line.
func describe(r domain.Recipe) string {
	return fmt.Sprintf("%s  price %d  (coffee %d, milk %d, sugar %d, chocolate %d)",
		r.Name, r.Price,
		r.Amounts[domain.Coffee], r.Amounts[domain.Milk], r.Amounts[domain.Sugar], r.Amounts[domain.Chocolate])
}
