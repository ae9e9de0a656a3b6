package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/cmd/storefront/shop"
	"storefront/cmd/storefront/ui"
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/storage"
)

var (
	// Global flags
	workspace string
	debugLog  bool

	// Wired in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	store  *storage.Store
)

// rootCmd launches the interactive storefront when run without arguments.
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal storefront client",
	Long: `storefront is a terminal client for the shop backend: browse the
catalog, manage products, fill a cart and check out.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(workspace)
		if err != nil {
			return err
		}
		if debugLog {
			cfg.Logging.Debug = true
		}
		logger, err = logging.New(workspace, cfg.Logging)
		if err != nil {
			return err
		}

		store = storage.New(workspace)
		if err := store.Load(); err != nil {
			return err
		}
		client = api.NewClient(cfg.APIURL, cfg.Timeout(), logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		program := tea.NewProgram(shop.New(client, store, logger), tea.WithAltScreen())
		_, err := program.Run()
		return err
	},
}

// productsCmd prints the catalog for scripting.
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := client.ListProducts(cmd.Context())
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("no products")
			return nil
		}
		table := ui.NewTable("", []string{"ID", "Name", "Price", "Stock"})
		for _, p := range products {
			table.AddRow(strconv.Itoa(p.ID), p.Name, p.Price.StringFixed(2), strconv.Itoa(p.StockQty))
		}
		fmt.Print(table.View(ui.DefaultStyles()))
		return nil
	},
}

// productCmd prints one product.
var productCmd = &cobra.Command{
	Use:   "product [id]",
	Short: "Show a product by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		p, err := client.GetProduct(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("#%d %s\n", p.ID, p.Name)
		fmt.Printf("price: %s  stock: %d\n", p.Price.StringFixed(2), p.StockQty)
		if p.Description != "" {
			if out, rerr := glamour.Render(p.Description, "auto"); rerr == nil {
				fmt.Print(out)
			} else {
				fmt.Println(p.Description)
			}
		}
		if p.Image != "" {
			fmt.Printf("image: %s\n", client.ImageURL(p.Image))
		}
		return nil
	},
}

// cartCmd prints the cart for the stored token.
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		view := cart.NewView(client, store, logger)
		if view.CartID() == "" {
			fmt.Println("no open cart")
			return nil
		}
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}
		table := ui.NewTable("", []string{"Item", "Unit", "Qty", "Max", "Subtotal"})
		for _, it := range view.Items() {
			table.AddRow(it.ProductName, it.UnitPrice.StringFixed(2),
				strconv.Itoa(it.Qty), strconv.Itoa(it.MaxQty), it.Subtotal.StringFixed(2))
		}
		fmt.Print(table.View(ui.DefaultStyles()))
		fmt.Printf("products: %s\n", view.ProductsTotal().StringFixed(2))
		fmt.Printf("shipping: %s (%s)\n", cart.ShippingCost(view.Shipping()).StringFixed(2), view.Shipping())
		fmt.Printf("total:    %s\n", view.Total().StringFixed(2))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "workspace directory holding .storefront state")
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "verbose", "v", false, "enable debug logging to .storefront/logs")
	rootCmd.AddCommand(productsCmd, productCmd, cartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
