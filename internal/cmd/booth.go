package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var boothCmd = &cobra.Command{
	Use:   "booth <number>",
	Short: "Print the orders and checklist of one booth",
	Args:  cobra.ExactArgs(1),
	RunE:  showBooth,
}

func init() {
	rootCmd.AddCommand(boothCmd)
}

func showBooth(cmd *cobra.Command, args []string) error {
	boothNumber := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.Close()

	orders, err := a.inventory.BoothOrders(boothNumber, false)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	checklist, err := a.inventory.BoothChecklist(boothNumber, false)
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}

	fmt.Printf("🏷️  Booth %s - %s (%s)\n\n", boothNumber, checklist.ExhibitorName, checklist.Section)

	fmt.Printf("📦 Orders: %d total, %d delivered\n", orders.TotalOrders, orders.DeliveredOrders)
	for _, o := range orders.Orders {
		fmt.Printf("   %-16s %-18s x%d  %s\n", o.ID, o.Status, o.Quantity, o.Item)
	}

	fmt.Printf("\n📋 Checklist: %d/%d complete (%d%%)\n", checklist.CompletedItems, checklist.TotalItems, checklist.ProgressPercentage)
	for _, item := range checklist.Items {
		mark := "⬜"
		if item.Status {
			mark = "✅"
		}
		fmt.Printf("   %s x%d  %s\n", mark, item.Quantity, item.Name)
	}

	return nil
}
