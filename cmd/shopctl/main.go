// shopctl is a CLI for the storefront backend and the stylist proxy.
// Each command performs a single operation, making it composable for scripts.
//
// Commands:
//
//	shopctl login -email ADDR -password PASS
//	shopctl logout
//	shopctl status
//	shopctl products [-page N] [-limit N] [-category C] [-search Q]
//	shopctl product -id ID
//	shopctl cart ls
//	shopctl cart add -product ID [-variant ID] [-qty N]
//	shopctl cart update -line ID -qty N
//	shopctl cart rm -line ID
//	shopctl order -address ID [-voucher CODE]
//	shopctl orders [-status S]
//	shopctl shipping provinces|districts|wards|fee [options]
//	shopctl chat -message TEXT [-stylist URL]
//
// Examples:
//
//	shopctl login -email me@example.com -password secret
//	LINE=$(shopctl cart add -product 42 -qty 2 -q)
//	shopctl order -address 1 -voucher SUMMER10
//	shopctl chat -message "cần áo sơ mi đi làm"
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"shopfront/internal/apiclient"
	"shopfront/internal/credential"
	"shopfront/internal/model"
	"shopfront/internal/shipping"
)

// Global flags (apply to all commands)
var (
	apiURL  string
	quiet   bool
	noColor bool
)

// ANSI color codes
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		disableColors()
	}
}

func disableColors() {
	colorReset, colorRed, colorGreen = "", "", ""
	colorYellow, colorCyan, colorGray, colorBold = "", "", "", ""
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "login":
		runLogin(args)
	case "logout":
		runLogout(args)
	case "status":
		runStatus(args)
	case "products":
		runProducts(args)
	case "product":
		runProduct(args)
	case "cart":
		runCart(args)
	case "order":
		runOrder(args)
	case "orders":
		runOrders(args)
	case "shipping":
		runShipping(args)
	case "chat":
		runChat(args)
	case "-h", "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `shopctl - storefront command line client

Usage:
  shopctl <command> [options]

Commands:
  login     Sign in and store the session credential
  logout    Sign out and clear the stored credential
  status    Show the current session
  products  List catalog products
  product   Show one product with variants
  cart      Manage the cart (ls, add, update, rm)
  order     Place an order from the cart
  orders    List your orders
  shipping  Delivery lookups and fee quotes (provinces, districts, wards, fee)
  chat      Ask the AI stylist for recommendations

Examples:
  shopctl login -email me@example.com -password secret
  shopctl products -category shirts -limit 10
  shopctl cart add -product 42 -qty 2
  shopctl order -address 1 -voucher SUMMER10

Run 'shopctl <command> -h' for command-specific options.
`)
}

// commonFlags registers the flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) {
	fs.StringVar(&apiURL, "api", envOr("SHOPCTL_API", "http://localhost:8080/api/v1"), "Storefront API base URL")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - minimal, script-friendly output")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newClient builds the API client over the on-disk credential store, so the
// session survives between invocations.
func newClient() *apiclient.Client {
	if noColor {
		disableColors()
	}

	path := os.Getenv("SHOPCTL_CREDENTIALS")
	if path == "" {
		var err error
		path, err = credential.DefaultPath()
		if err != nil {
			fatal("Resolving credential path: %v", err)
		}
	}

	creds, err := credential.NewFileStore(path)
	if err != nil {
		fatal("Opening credential store: %v", err)
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL:     apiURL,
		Credentials: creds,
		Timeout:     30 * time.Second,
	})
	if err != nil {
		fatal("Creating API client: %v", err)
	}
	return client
}

// =============================================================================
// AUTH COMMANDS
// =============================================================================

func runLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	commonFlags(fs)
	var email, password string
	fs.StringVar(&email, "email", "", "Account email (required)")
	fs.StringVar(&password, "password", "", "Account password (required)")
	fs.Parse(args)

	if email == "" || password == "" {
		fs.Usage()
		os.Exit(1)
	}

	client := newClient()
	result, err := client.Login(context.Background(), email, password)
	if err != nil {
		fatal("Login failed: %v", err)
	}

	if result.RequiresVerification {
		printWarning("Account not verified - run OTP verification first")
		os.Exit(1)
	}

	if quiet {
		fmt.Println(result.User.Email)
		return
	}
	printSuccess("Signed in as %s%s%s", colorCyan, result.User.Email, colorReset)
	if exp := credential.ExpiresAt(result.Token); !exp.IsZero() {
		printInfo("Session expires around %s", exp.Local().Format(time.RFC1123))
	}
}

func runLogout(args []string) {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	commonFlags(fs)
	fs.Parse(args)

	client := newClient()

	// Best effort server-side logout; the local credential is cleared
	// either way.
	if err := client.Logout(context.Background()); err != nil {
		printInfo("Server logout failed (%v), clearing local session anyway", err)
	}
	if err := client.Credentials().Clear(); err != nil {
		fatal("Clearing credential: %v", err)
	}

	printSuccess("Signed out")
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	commonFlags(fs)
	fs.Parse(args)

	client := newClient()

	token := client.Credentials().Token()
	if token == "" {
		if quiet {
			fmt.Println("signed-out")
			return
		}
		printInfo("Not signed in")
		return
	}

	user, err := client.Me(context.Background())
	if err != nil {
		fatal("Session check failed: %v", err)
	}

	if quiet {
		fmt.Println(user.Email)
		return
	}
	printSuccess("Signed in as %s%s%s", colorCyan, user.Email, colorReset)
	fmt.Printf("  Name:  %s\n", user.FullName)
	if exp := credential.ExpiresAt(token); !exp.IsZero() {
		fmt.Printf("  Token: expires around %s\n", exp.Local().Format(time.RFC1123))
	}
}

// =============================================================================
// CATALOG COMMANDS
// =============================================================================

func runProducts(args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	commonFlags(fs)
	var page, limit int
	var category, search string
	fs.IntVar(&page, "page", 1, "Page number")
	fs.IntVar(&limit, "limit", 20, "Items per page")
	fs.StringVar(&category, "category", "", "Filter by category")
	fs.StringVar(&search, "search", "", "Search query")
	fs.Parse(args)

	client := newClient()
	result, err := client.ListProducts(context.Background(), apiclient.ListProductsParams{
		Page:     page,
		Limit:    limit,
		Category: category,
		Query:    search,
	})
	if err != nil {
		fatal("Listing products: %v", err)
	}

	if quiet {
		for _, p := range result.Items {
			fmt.Println(p.ID)
		}
		return
	}

	printSuccess("%d products (page %d, %d total)", len(result.Items), result.Page, result.Total)
	for _, p := range result.Items {
		fmt.Printf("  %s%5d%s  %-40s %s%s%s\n",
			colorGray, p.ID, colorReset,
			truncate(p.Name, 40),
			colorGreen, model.FormatVND(p.Price), colorReset)
	}
}

func runProduct(args []string) {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	commonFlags(fs)
	var id int64
	fs.Int64Var(&id, "id", 0, "Product ID (required)")
	fs.Parse(args)

	if id == 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newClient()
	p, err := client.ProductDetail(context.Background(), id)
	if err != nil {
		fatal("Fetching product: %v", err)
	}

	if quiet {
		out, _ := json.Marshal(p)
		fmt.Println(string(out))
		return
	}

	fmt.Printf("%s%s%s\n", colorBold, p.Name, colorReset)
	fmt.Printf("  Price:    %s%s%s\n", colorGreen, model.FormatVND(p.Price), colorReset)
	if p.Category != "" {
		fmt.Printf("  Category: %s\n", p.Category)
	}
	if p.Brand != "" {
		fmt.Printf("  Brand:    %s\n", p.Brand)
	}
	if p.Description != "" {
		fmt.Printf("  %s\n", truncate(p.Description, 200))
	}
	if len(p.Variants) > 0 {
		fmt.Printf("  %sVariants:%s\n", colorYellow, colorReset)
		for _, v := range p.Variants {
			attrs := make([]string, 0, len(v.Attributes))
			for k, val := range v.Attributes {
				attrs = append(attrs, k+"="+val)
			}
			fmt.Printf("    %s%d%s  %-30s %s  stock %d\n",
				colorGray, v.ID, colorReset,
				strings.Join(attrs, " "),
				model.FormatVND(v.Price), v.Stock)
		}
	}
}

// =============================================================================
// CART COMMANDS
// =============================================================================

func runCart(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: shopctl cart <ls|add|update|rm> [options]\n")
		os.Exit(1)
	}

	sub := args[0]
	rest := args[1:]

	switch sub {
	case "ls":
		runCartLs(rest)
	case "add":
		runCartAdd(rest)
	case "update":
		runCartUpdate(rest)
	case "rm":
		runCartRm(rest)
	default:
		fmt.Fprintf(os.Stderr, "Unknown cart subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func runCartLs(args []string) {
	fs := flag.NewFlagSet("cart ls", flag.ExitOnError)
	commonFlags(fs)
	fs.Parse(args)

	client := newClient()
	lines, err := client.ListCart(context.Background())
	if err != nil {
		fatal("Listing cart: %v", err)
	}

	if quiet {
		for _, l := range lines {
			fmt.Println(l.ID)
		}
		return
	}

	if len(lines) == 0 {
		printInfo("Cart is empty")
		return
	}

	var total int64
	for _, l := range lines {
		lineTotal := model.LineTotal(l.UnitPrice, l.Quantity)
		total += lineTotal
		fmt.Printf("  %s%5d%s  %-30s x%-3d %s%s%s\n",
			colorGray, l.ID, colorReset,
			truncate(l.Name, 30), l.Quantity,
			colorGreen, model.FormatVND(lineTotal), colorReset)
	}
	fmt.Printf("  %sTotal: %s%s\n", colorBold, model.FormatVND(total), colorReset)
}

func runCartAdd(args []string) {
	fs := flag.NewFlagSet("cart add", flag.ExitOnError)
	commonFlags(fs)
	var productID, variantID int64
	var qty int
	fs.Int64Var(&productID, "product", 0, "Product ID (required)")
	fs.Int64Var(&variantID, "variant", 0, "Variant ID")
	fs.IntVar(&qty, "qty", 1, "Quantity")
	fs.Parse(args)

	if productID == 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newClient()
	line, err := client.AddToCart(context.Background(), apiclient.AddToCartRequest{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  qty,
	})
	if err != nil {
		fatal("Adding to cart: %v", err)
	}

	if quiet {
		fmt.Println(line.ID)
		return
	}
	printSuccess("Added %s x%d", line.Name, line.Quantity)
	fmt.Printf("  Line ID: %s%d%s\n", colorCyan, line.ID, colorReset)
}

func runCartUpdate(args []string) {
	fs := flag.NewFlagSet("cart update", flag.ExitOnError)
	commonFlags(fs)
	var lineID int64
	var qty int
	fs.Int64Var(&lineID, "line", 0, "Cart line ID (required)")
	fs.IntVar(&qty, "qty", 0, "New quantity (required)")
	fs.Parse(args)

	if lineID == 0 || qty <= 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newClient()
	line, err := client.UpdateCartItem(context.Background(), lineID, qty)
	if err != nil {
		fatal("Updating cart: %v", err)
	}

	printSuccess("Updated %s to x%d", line.Name, line.Quantity)
}

func runCartRm(args []string) {
	fs := flag.NewFlagSet("cart rm", flag.ExitOnError)
	commonFlags(fs)
	var lineID int64
	fs.Int64Var(&lineID, "line", 0, "Cart line ID (required)")
	fs.Parse(args)

	if lineID == 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newClient()
	if err := client.DeleteCartItem(context.Background(), lineID); err != nil {
		fatal("Removing cart line: %v", err)
	}

	printSuccess("Removed line %d", lineID)
}

// =============================================================================
// ORDER COMMANDS
// =============================================================================

func runOrder(args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	commonFlags(fs)
	var addressID int64
	var voucher, note string
	fs.Int64Var(&addressID, "address", 0, "Delivery address ID (required)")
	fs.StringVar(&voucher, "voucher", "", "Voucher code")
	fs.StringVar(&note, "note", "", "Order note")
	fs.Parse(args)

	if addressID == 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newClient()
	ctx := context.Background()

	// The backend orders whole cart lines; send everything currently in
	// the cart.
	lines, err := client.ListCart(ctx)
	if err != nil {
		fatal("Listing cart: %v", err)
	}
	if len(lines) == 0 {
		fatal("Cart is empty")
	}

	lineIDs := make([]int64, len(lines))
	for i, l := range lines {
		lineIDs[i] = l.ID
	}

	order, err := client.CreateOrder(ctx, apiclient.CreateOrderRequest{
		CartLineIDs: lineIDs,
		AddressID:   addressID,
		VoucherCode: voucher,
		Note:        note,
	})
	if err != nil {
		fatal("Placing order: %v", err)
	}

	if quiet {
		fmt.Println(order.ID)
		return
	}
	printSuccess("Order placed")
	fmt.Printf("  ID:     %s%d%s\n", colorCyan, order.ID, colorReset)
	fmt.Printf("  Status: %s\n", order.Status)
	if order.Discount > 0 {
		fmt.Printf("  Discount: -%s\n", model.FormatVND(order.Discount))
	}
	fmt.Printf("  Total:  %s%s%s\n", colorGreen, model.FormatVND(order.Total), colorReset)
}

func runOrders(args []string) {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	commonFlags(fs)
	var status string
	fs.StringVar(&status, "status", "", "Filter by status (PENDING, CONFIRMED, SHIPPING, COMPLETED, CANCELLED, RETURNED)")
	fs.Parse(args)

	client := newClient()
	orders, err := client.MyOrders(context.Background(), model.OrderStatus(status))
	if err != nil {
		fatal("Listing orders: %v", err)
	}

	if quiet {
		for _, o := range orders {
			fmt.Println(o.ID)
		}
		return
	}

	if len(orders) == 0 {
		printInfo("No orders")
		return
	}

	for _, o := range orders {
		fmt.Printf("  %s%5d%s  %-10s %s%s%s  %s\n",
			colorGray, o.ID, colorReset,
			o.Status,
			colorGreen, model.FormatVND(o.Total), colorReset,
			o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// =============================================================================
// SHIPPING COMMANDS
// =============================================================================

// newShippingClient builds the GHN client with retry on the lookup calls.
// The provider token comes from the environment, not from login state.
func newShippingClient() shipping.API {
	if noColor {
		disableColors()
	}

	token := os.Getenv("SHOPCTL_GHN_TOKEN")
	if token == "" {
		fatal("SHOPCTL_GHN_TOKEN is required for shipping commands")
	}

	shopID := 0
	if v := os.Getenv("SHOPCTL_GHN_SHOP_ID"); v != "" {
		fmt.Sscanf(v, "%d", &shopID)
	}

	client, err := shipping.New(shipping.Config{Token: token, ShopID: shopID})
	if err != nil {
		fatal("Creating shipping client: %v", err)
	}
	return shipping.NewRetryClient(client, time.Second, 3)
}

func runShipping(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: shopctl shipping <provinces|districts|wards|fee> [options]\n")
		os.Exit(1)
	}

	sub := args[0]
	rest := args[1:]

	switch sub {
	case "provinces":
		runShippingProvinces(rest)
	case "districts":
		runShippingDistricts(rest)
	case "wards":
		runShippingWards(rest)
	case "fee":
		runShippingFee(rest)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shipping subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func runShippingProvinces(args []string) {
	fs := flag.NewFlagSet("shipping provinces", flag.ExitOnError)
	commonFlags(fs)
	fs.Parse(args)

	client := newShippingClient()
	provinces, err := client.Provinces(context.Background())
	if err != nil {
		fatal("Listing provinces: %v", err)
	}

	for _, p := range provinces {
		if quiet {
			fmt.Println(p.ProvinceID)
			continue
		}
		fmt.Printf("  %s%4d%s  %s\n", colorGray, p.ProvinceID, colorReset, p.Name)
	}
}

func runShippingDistricts(args []string) {
	fs := flag.NewFlagSet("shipping districts", flag.ExitOnError)
	commonFlags(fs)
	var provinceID int
	fs.IntVar(&provinceID, "province", 0, "Province ID (required)")
	fs.Parse(args)

	if provinceID == 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newShippingClient()
	districts, err := client.Districts(context.Background(), provinceID)
	if err != nil {
		fatal("Listing districts: %v", err)
	}

	for _, d := range districts {
		if quiet {
			fmt.Println(d.DistrictID)
			continue
		}
		fmt.Printf("  %s%4d%s  %s\n", colorGray, d.DistrictID, colorReset, d.Name)
	}
}

func runShippingWards(args []string) {
	fs := flag.NewFlagSet("shipping wards", flag.ExitOnError)
	commonFlags(fs)
	var districtID int
	fs.IntVar(&districtID, "district", 0, "District ID (required)")
	fs.Parse(args)

	if districtID == 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newShippingClient()
	wards, err := client.Wards(context.Background(), districtID)
	if err != nil {
		fatal("Listing wards: %v", err)
	}

	for _, w := range wards {
		if quiet {
			fmt.Println(w.WardCode)
			continue
		}
		fmt.Printf("  %s%6s%s  %s\n", colorGray, w.WardCode, colorReset, w.Name)
	}
}

func runShippingFee(args []string) {
	fs := flag.NewFlagSet("shipping fee", flag.ExitOnError)
	commonFlags(fs)
	var fromDistrict, toDistrict, weight, serviceType int
	var toWard string
	fs.IntVar(&fromDistrict, "from", 0, "Origin district ID")
	fs.IntVar(&toDistrict, "to", 0, "Destination district ID (required)")
	fs.StringVar(&toWard, "ward", "", "Destination ward code")
	fs.IntVar(&weight, "weight", 500, "Parcel weight in grams")
	fs.IntVar(&serviceType, "service-type", 2, "Service type ID")
	fs.Parse(args)

	if toDistrict == 0 {
		fs.Usage()
		os.Exit(1)
	}

	client := newShippingClient()
	fee, err := client.CalculateFee(context.Background(), shipping.FeeRequest{
		ServiceTypeID:  serviceType,
		FromDistrictID: fromDistrict,
		ToDistrictID:   toDistrict,
		ToWardCode:     toWard,
		Weight:         weight,
	})
	if err != nil {
		fatal("Calculating fee: %v", err)
	}

	if quiet {
		fmt.Println(fee.Total)
		return
	}
	printSuccess("Delivery quote")
	fmt.Printf("  Service fee: %s\n", model.FormatVND(fee.ServiceFee))
	if fee.InsuranceFee > 0 {
		fmt.Printf("  Insurance:   %s\n", model.FormatVND(fee.InsuranceFee))
	}
	fmt.Printf("  Total:       %s%s%s\n", colorGreen, model.FormatVND(fee.Total), colorReset)
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func runChat(args []string) {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	commonFlags(fs)
	var message, stylistURL string
	fs.StringVar(&message, "message", "", "Message for the stylist (required)")
	fs.StringVar(&stylistURL, "stylist", envOr("SHOPCTL_STYLIST", "http://localhost:8090"), "Stylist proxy base URL")
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	if message == "" {
		fs.Usage()
		os.Exit(1)
	}

	reqBody, _ := json.Marshal(map[string]string{"message": message})
	req, err := http.NewRequest(http.MethodPost, strings.TrimSuffix(stylistURL, "/")+"/chat", bytes.NewReader(reqBody))
	if err != nil {
		fatal("Creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stylist-Client", `app="shopctl";version="1.0"`)

	httpClient := &http.Client{Timeout: 2 * time.Minute}
	resp, err := httpClient.Do(req)
	if err != nil {
		fatal("Stylist unreachable: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fatal("Reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		fatal("Stylist error HTTP %d: %s", resp.StatusCode, string(body))
	}

	var chat struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &chat); err != nil {
		fatal("Parsing response: %v", err)
	}

	if quiet {
		fmt.Println(chat.Reply)
		return
	}
	fmt.Printf("%s✨ Stylist:%s %s\n", colorYellow, colorReset, chat.Reply)
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printSuccess(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf("%s✓ %s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
	}
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s⚠ %s%s\n", colorYellow, fmt.Sprintf(format, args...), colorReset)
}

func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf("%s→ %s%s\n", colorGray, fmt.Sprintf(format, args...), colorReset)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
	os.Exit(1)
}
