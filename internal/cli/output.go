package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case RegisterResult:
		o.printRegisterResult(v)
	case []ClothingItem:
		o.printClothingItems(v)
	case []FurnitureItem:
		o.printFurnitureItems(v)
	case PurchaseResult:
		o.printPurchaseResult(v)
	case Wardrobe:
		o.printWardrobe(v)
	case Room:
		o.printRoom(v)
	case PlacedInstance:
		o.printPlacedInstance(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	UUID     int64  `json:"uuid"`
	Username string `json:"username"`
	Currency int    `json:"currency"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// RegisterResult response type
type RegisterResult struct {
	UUID int64 `json:"uuid"`
}

// ClothingItem response type
type ClothingItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
}

// FurnitureItem response type
type FurnitureItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Variants int    `json:"variants"`
}

// PurchaseResult response type
type PurchaseResult struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Currency int    `json:"currency"`
}

// Wardrobe response type
type Wardrobe struct {
	Currency  int               `json:"currency"`
	Inventory []string          `json:"inventory"`
	Worn      map[string]string `json:"worn"`
	Equipped  map[string]string `json:"equipped"`
}

// PlacedInstance response type
type PlacedInstance struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	OrientationIndex int     `json:"orientation_index"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                int     `json:"z"`
	Fixture          bool    `json:"fixture"`
}

// Room response type
type Room struct {
	Currency  int              `json:"currency"`
	Inventory []string         `json:"inventory"`
	Instances []PlacedInstance `json:"instances"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (uuid %d)\n", p.Username, p.UUID)
	fmt.Printf("Currency: %d\n", p.Currency)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Printf("Account created (uuid %d)\n", r.UUID)
}

func (o *Output) printClothingItems(items []ClothingItem) {
	for _, item := range items {
		fmt.Printf("%-14s %4d  [%s]\n", item.Name, item.Price, item.Category)
	}
}

func (o *Output) printFurnitureItems(items []FurnitureItem) {
	for _, item := range items {
		fmt.Printf("%-18s %5d  [%s]", item.Name, item.Price, item.Category)
		if item.Variants > 1 {
			fmt.Printf("  (%d orientations)", item.Variants)
		}
		fmt.Println()
	}
}

func (o *Output) printPurchaseResult(p PurchaseResult) {
	fmt.Printf("Bought %s (%s)\n", p.Name, p.Kind)
	fmt.Printf("Currency: %d\n", p.Currency)
}

func (o *Output) printWardrobe(wd Wardrobe) {
	fmt.Printf("Currency: %d\n", wd.Currency)
	fmt.Printf("Inventory (%d):\n", len(wd.Inventory))
	for _, name := range wd.Inventory {
		fmt.Printf("  - %s\n", name)
	}

	fmt.Println("Worn:")
	o.printOutfit(wd.Worn)
	fmt.Println("Equipped:")
	o.printOutfit(wd.Equipped)
}

func (o *Output) printOutfit(outfit map[string]string) {
	categories := make([]string, 0, len(outfit))
	for cat := range outfit {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		name := outfit[cat]
		if name == "" {
			name = "(empty)"
		}
		fmt.Printf("  %-8s %s\n", cat+":", name)
	}
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Currency: %d\n", r.Currency)
	fmt.Printf("Inventory (%d):\n", len(r.Inventory))
	for _, name := range r.Inventory {
		fmt.Printf("  - %s\n", name)
	}

	fmt.Printf("Placed (%d):\n", len(r.Instances))
	for _, inst := range r.Instances {
		o.printPlacedInstanceLine(inst)
	}
}

func (o *Output) printPlacedInstance(inst PlacedInstance) {
	o.printPlacedInstanceLine(inst)
}

func (o *Output) printPlacedInstanceLine(inst PlacedInstance) {
	fixtureStr := ""
	if inst.Fixture {
		fixtureStr = " [fixture]"
	}
	fmt.Printf("  %s %s at (%.0f, %.0f) z=%d rot=%d%s\n",
		inst.ID, inst.Name, inst.X, inst.Y, inst.Z, inst.OrientationIndex, fixtureStr)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
