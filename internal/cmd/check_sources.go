package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var checkSourcesCmd = &cobra.Command{
	Use:   "check-sources",
	Short: "Test every configured upstream",
	Long: `Run each registered strategy once, for orders and for the checklist, and
report how many records it produced. This helps verify API keys and
connectivity before starting the server.`,
	RunE: checkSources,
}

func init() {
	rootCmd.AddCommand(checkSourcesCmd)
}

func checkSources(cmd *cobra.Command, args []string) error {
	fmt.Println("🧪 Testing upstream connections...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.Close()

	if a.upstreams.Chat != nil {
		fmt.Printf("🤖 Chat provider: %s/%s\n", cfg.Chat.Provider, a.upstreams.Chat.Model())
	}
	if a.upstreams.Sheets != nil {
		fmt.Printf("📊 Spreadsheet: %s\n", a.upstreams.Sheets.SpreadsheetID())
	}

	failures := 0

	fmt.Println("\n📦 Orders")
	for _, name := range a.sources.Orders.Strategies() {
		records, err := a.sources.Orders.Try(name)
		if !report(name, len(records), err) {
			failures++
		}
	}

	fmt.Println("\n📋 Checklist")
	for _, name := range a.sources.Checklist.Strategies() {
		records, err := a.sources.Checklist.Try(name)
		if !report(name, len(records), err) {
			failures++
		}
	}

	if failures > 0 {
		fmt.Printf("\n⚠️  %d %s failed; requests will fall back to the next source\n", failures, pluralize(failures, "strategy", "strategies"))
		return nil
	}

	fmt.Println("\n🎉 All sources are working correctly!")
	return nil
}

func report(name string, count int, err error) bool {
	if err != nil {
		fmt.Printf("   ❌ %-9s %v\n", name, err)
		return false
	}
	fmt.Printf("   ✅ %-9s %d %s\n", name, count, pluralize(count, "record", "records"))
	return true
}

func pluralize(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}
