package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/coffeemaker/internal/config"
	"github.com/hammamikhairi/coffeemaker/internal/conversation"
	"github.com/hammamikhairi/coffeemaker/internal/display"
	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/engine"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
	"github.com/hammamikhairi/coffeemaker/internal/recipe"
)

// output is the subset of display.UI the console handlers write to.
type output interface {
	PrintChat(text string)
	PrintHeader(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintUrgent(text string)
}

var _ output = (*display.UI)(nil)

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var ui *display.UI
	m, err := setup(func(cfg *config.Config) domain.Notifier {
		ui = display.NewUI(cfg.Monitor.Threshold)
		return ui
	})
	if err != nil {
		return err
	}
	defer m.Close()

	app := &cliApp{
		engine: m.engine,
		parser: conversation.NewKeywordParser(m.log),
		log:    m.log,
		out:    ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		if m.stock != nil {
			m.stock.Start(ctx)
		}
		app.showMenu(ctx)
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; Run blocks until quit.
	if err := ui.Run(m.engine.Inventory()); err != nil {
		m.log.Error("display: %v", err)
		return err
	}
	return nil
}

type cliApp struct {
	engine *engine.Engine
	parser domain.CommandParser
	log    *logger.Logger
	out    output
}

// run reads operator lines until quit, the channel closes, or ctx ends.
func (a *cliApp) run(ctx context.Context, input <-chan string) {
	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		intent, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}
		if intent.Type == domain.IntentUnknown && intent.Raw == "" {
			continue
		}

		a.log.Debug("intent: %s (args=%q)", intent.Type, intent.Args)
		if !a.handleIntent(ctx, intent) {
			return
		}
	}
}

// handleIntent dispatches one intent. It returns false when the operator quits.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentMenu:
		a.showMenu(ctx)
	case domain.IntentAddRecipe:
		a.addRecipe(ctx, intent.Args)
	case domain.IntentEditRecipe:
		a.editRecipe(ctx, intent.Args)
	case domain.IntentDeleteRecipe:
		a.deleteRecipe(ctx, intent.Args)
	case domain.IntentRestock:
		a.restock(ctx, intent.Args)
	case domain.IntentPurchase:
		a.purchase(ctx, intent.Args)
	case domain.IntentInventory:
		a.showInventory(ctx)
	case domain.IntentSales:
		a.showSales(ctx)
	case domain.IntentQuit:
		a.out.PrintChat("Goodbye!")
		return false
	default:
		a.out.PrintHint(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", intent.Raw))
	}
	return true
}

func (a *cliApp) showHelp() {
	a.out.PrintHeader("Commands:")
	for _, line := range []string{
		"menu                                   list recipe slots",
		"add <name> <price> <cof> <milk> <sug> <choc>",
		"edit <slot> <name> <price> <cof> <milk> <sug> <choc>",
		"delete <slot>                          free a recipe slot",
		"restock <cof> <milk> <sug> <choc>      add stock",
		"restock <ingredient> <amount>          add one ingredient",
		"buy <slot> <amount>   (or <slot> <amount>)",
		"inventory                              show stock",
		"sales                                  show totals",
		"quit",
	} {
		a.out.PrintLine(line)
	}
	a.out.PrintHint(`Quote names with spaces, e.g. add "Hot Chocolate" 65 0 1 1 4. Slots are numbered from 1.`)
}

func (a *cliApp) showMenu(ctx context.Context) {
	a.out.PrintHeader("Menu:")
	for _, s := range a.engine.Recipes(ctx) {
		if s.Recipe == nil {
			a.out.PrintHint(fmt.Sprintf("[%d] (empty)", s.Index+1))
			continue
		}
		a.out.PrintLine(fmt.Sprintf("[%d] %s", s.Index+1, describe(*s.Recipe)))
	}
}

func (a *cliApp) addRecipe(ctx context.Context, args []string) {
	if len(args) != 6 {
		a.out.PrintUrgent("usage: add <name> <price> <coffee> <milk> <sugar> <chocolate>")
		return
	}
	r, err := recipe.Parse(args[0], args[1], args[2], args[3], args[4], args[5])
	if err != nil {
		a.out.PrintUrgent(fmt.Sprintf("Recipe not added: %v", err))
		return
	}
	if err := a.engine.AddRecipeErr(ctx, r); err != nil {
		a.out.PrintUrgent(fmt.Sprintf("Recipe not added: %v", err))
		return
	}
	a.out.PrintChat(fmt.Sprintf("%s added.", r.Name))
}

func (a *cliApp) editRecipe(ctx context.Context, args []string) {
	if len(args) != 7 {
		a.out.PrintUrgent("usage: edit <slot> <name> <price> <coffee> <milk> <sugar> <chocolate>")
		return
	}
	idx, err := conversation.ParseSlot(args[0])
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	r, err := recipe.Parse(args[1], args[2], args[3], args[4], args[5], args[6])
	if err != nil {
		a.out.PrintUrgent(fmt.Sprintf("Recipe not edited: %v", err))
		return
	}
	prev, ok := a.engine.EditRecipe(ctx, idx, r)
	if !ok {
		a.out.PrintUrgent(fmt.Sprintf("Recipe not edited: nothing editable in slot %s.", args[0]))
		return
	}
	a.out.PrintChat(fmt.Sprintf("%s replaced by %s.", prev, r.Name))
}

func (a *cliApp) deleteRecipe(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.out.PrintUrgent("usage: delete <slot>")
		return
	}
	idx, err := conversation.ParseSlot(args[0])
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	name, ok := a.engine.DeleteRecipe(ctx, idx)
	if !ok {
		a.out.PrintUrgent(fmt.Sprintf("No recipe in slot %s.", args[0]))
		return
	}
	a.out.PrintChat(fmt.Sprintf("%s deleted.", name))
}

func (a *cliApp) restock(ctx context.Context, args []string) {
	var amounts [domain.NumIngredients]string
	switch len(args) {
	case domain.NumIngredients:
		copy(amounts[:], args)
	case 2:
		ing, err := domain.ParseIngredient(args[0])
		if err != nil {
			a.out.PrintUrgent(fmt.Sprintf("Restock rejected: %v", err))
			return
		}
		for i := range amounts {
			amounts[i] = "0"
		}
		amounts[ing] = args[1]
	default:
		a.out.PrintUrgent("usage: restock <coffee> <milk> <sugar> <chocolate>  or  restock <ingredient> <amount>")
		return
	}

	err := a.engine.AddInventory(ctx,
		amounts[domain.Coffee], amounts[domain.Milk], amounts[domain.Sugar], amounts[domain.Chocolate])
	if err != nil {
		a.out.PrintUrgent(fmt.Sprintf("Restock rejected: %v", err))
		return
	}
	a.out.PrintChat("Inventory restocked.")
	a.showInventory(ctx)
}

func (a *cliApp) purchase(ctx context.Context, args []string) {
	if len(args) != 2 {
		a.out.PrintUrgent("usage: buy <slot> <amount>")
		return
	}
	idx, err := conversation.ParseSlot(args[0])
	if err != nil {
		a.out.PrintUrgent(err.Error())
		return
	}
	paid, err := conversation.ParsePayment(args[1])
	if err != nil {
		// Rejected at the boundary: nothing was taken, so nothing is refunded.
		a.out.PrintUrgent(fmt.Sprintf("Payment rejected: %v", err))
		return
	}
	// The engine's notifier reports the outcome; this line is the receipt.
	receipt := a.engine.Purchase(ctx, idx, paid)
	a.out.PrintHint(fmt.Sprintf("receipt %s: %s, change %d", receipt.ID, receipt.Outcome, receipt.Change))
}

func (a *cliApp) showInventory(ctx context.Context) {
	a.out.PrintHeader("Inventory:")
	for _, line := range strings.Split(strings.TrimRight(a.engine.CheckInventory(ctx), "\n"), "\n") {
		a.out.PrintLine(line)
	}
}

func (a *cliApp) showSales(ctx context.Context) {
	s := a.engine.Sales(ctx)
	a.out.PrintHeader("Sales:")
	a.out.PrintLine(fmt.Sprintf("completed %d, refunded %d, revenue %d", s.Completed, s.Refunded, s.Revenue))
}
