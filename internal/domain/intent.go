package domain

// IntentType classifies what the operator wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentMenu
	IntentAddRecipe
	IntentEditRecipe
	IntentDeleteRecipe
	IntentRestock
	IntentPurchase
	IntentInventory
	IntentSales
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentMenu:
		return "menu"
	case IntentAddRecipe:
		return "add_recipe"
	case IntentEditRecipe:
		return "edit_recipe"
	case IntentDeleteRecipe:
		return "delete_recipe"
	case IntentRestock:
		return "restock"
	case IntentPurchase:
		return "purchase"
	case IntentInventory:
		return "inventory"
	case IntentSales:
		return "sales"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed operator command. Args holds the raw
// whitespace-separated arguments; they are validated by the handler,
// not the parser.
type Intent struct {
	Type IntentType
	Args []string
	Raw  string
}
