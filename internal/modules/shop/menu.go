// Package shop is the interactive console front end for the store.
package shop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/georgemunganga/printa-stock/internal/modules/inventory"
	"go.uber.org/zap"
)

const menu = `
Store Menu
----------
1. List all products in store
2. Show total amount in store
3. Make an order
4. Quit`

// Menu runs the console loop against an inventory service.
type Menu struct {
	service inventory.Service
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger
}

func NewMenu(service inventory.Service, in io.Reader, out io.Writer, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{service: service, in: bufio.NewScanner(in), out: out, logger: logger}
}

// Run shows the menu until the user quits or the input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.println(menu)
		line, ok := m.prompt("\nPlease choose a number (1-4): ")
		if !ok {
			return m.in.Err()
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			m.println("Invalid input: please enter a number between 1 and 4.")
			continue
		}

		switch choice {
		case 1:
			if err := m.listProducts(ctx); err != nil {
				return err
			}
		case 2:
			total, err := m.service.TotalQuantity(ctx)
			if err != nil {
				return err
			}
			m.printf("Total items in store: %d\n", total)
		case 3:
			if err := m.makeOrder(ctx); err != nil {
				return err
			}
		case 4:
			m.println("Exiting... Goodbye!")
			return nil
		default:
			m.println("Choice must be between 1 and 4. Please try again.")
		}
	}
}

func (m *Menu) listProducts(ctx context.Context) error {
	products, err := m.service.ListProducts(ctx, true)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		m.println("No active products in the store.")
		return nil
	}
	m.println("\nActive Products:")
	for _, p := range products {
		m.printf("- %s | Price: %s | Quantity: %d\n", p.Name, inventory.FormatPrice(p.Price), p.Quantity)
	}
	return nil
}

func (m *Menu) makeOrder(ctx context.Context) error {
	products, err := m.service.ListProducts(ctx, true)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		m.println("No active products available for ordering.")
		return nil
	}
	m.println("\nAvailable for Order:")
	for i, p := range products {
		m.printf("%d. %s (Price: %s, Quantity: %d)\n", i+1, p.Name, inventory.FormatPrice(p.Price), p.Quantity)
	}

	var items []inventory.OrderItemRequest
	for {
		selection, ok := m.prompt("\nEnter product number to add (or press Enter to finish): ")
		selection = strings.TrimSpace(selection)
		if !ok || selection == "" {
			break
		}
		idx, err := strconv.Atoi(selection)
		if err != nil || idx < 1 || idx > len(products) {
			m.println("Invalid product number. Please try again.")
			continue
		}
		chosen := products[idx-1]

		qtyStr, ok := m.prompt(fmt.Sprintf("Enter quantity of '%s' to purchase: ", chosen.Name))
		if !ok {
			break
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil {
			m.println("Quantity must be a positive integer.")
			continue
		}
		if qty <= 0 {
			m.println("Quantity must be greater than zero.")
			continue
		}
		if qty > chosen.Quantity {
			m.printf("Only %d units available. Please enter a smaller amount.\n", chosen.Quantity)
			continue
		}

		items = append(items, inventory.OrderItemRequest{ProductID: chosen.ID.String(), Quantity: qty})
		m.printf("Added %d x %s to your cart.\n", qty, chosen.Name)
	}

	if len(items) == 0 {
		m.println("No items were selected for the order.")
		return nil
	}
	result, err := m.service.PlaceOrder(ctx, inventory.PlaceOrderRequest{Items: items})
	if err != nil {
		m.logger.Debug("console order rejected", zap.Error(err))
		m.printf("Error processing order: %v\n", err)
		return nil
	}
	m.printf("\nOrder complete! Total cost: $%.2f\n", result.Total)
	return nil
}

func (m *Menu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) println(text string) { fmt.Fprintln(m.out, text) }

func (m *Menu) printf(format string, args ...interface{}) { fmt.Fprintf(m.out, format, args...) }
