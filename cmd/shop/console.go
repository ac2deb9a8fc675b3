package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	cartapp "github.com/ankalaev/animanga-shop/internal/cart/app"
	cartdomain "github.com/ankalaev/animanga-shop/internal/cart/domain"
	catalogapp "github.com/ankalaev/animanga-shop/internal/catalog/app"
	catalogdomain "github.com/ankalaev/animanga-shop/internal/catalog/domain"
	checkoutapp "github.com/ankalaev/animanga-shop/internal/checkout/app"
	checkoutdomain "github.com/ankalaev/animanga-shop/internal/checkout/domain"
	orderapp "github.com/ankalaev/animanga-shop/internal/order/app"
	orderdomain "github.com/ankalaev/animanga-shop/internal/order/domain"
	"github.com/ankalaev/animanga-shop/internal/session"
	"github.com/ankalaev/animanga-shop/pkg/config"
	"github.com/ankalaev/animanga-shop/pkg/validate"
)

// console is the line-oriented storefront UI. Customer commands are always
// available; order management commands unlock after the secret word.
type console struct {
	cfg      config.Config
	log      *slog.Logger
	catalog  *catalogapp.Service
	cart     *cartapp.Service
	orders   *orderapp.Service
	checkout *checkoutapp.Service
	sessions *session.Manager
	out      io.Writer

	lines <-chan string
}

func (c *console) run(ctx context.Context, in io.Reader) error {
	c.lines = readLines(ctx, in)

	c.printf("AniManga Paradise. Type 'help' for commands.\n")
	for {
		c.printf("> ")
		input, ok := c.readLine(ctx)
		if !ok {
			return ctx.Err()
		}

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		if cmd == "exit" || cmd == "quit" {
			return nil
		}
		if err := c.dispatch(ctx, cmd, args); err != nil {
			c.printf("error: %v\n", err)
		}
	}
}

// readLines pumps input lines into a channel, closed when the reader drains
// or ctx ends. The ctx check keeps the goroutine from blocking on a send
// nobody will receive after run returns.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case <-ctx.Done():
				return
			case lines <- sc.Text():
			}
		}
	}()
	return lines
}

// readLine blocks for the next input line, bailing out when ctx ends.
func (c *console) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-c.lines:
		if !ok {
			return "", false
		}
		return line, true
	}
}

func (c *console) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		c.help(ctx)
	case "catalog":
		return c.cmdCatalog(ctx, args)
	case "show":
		return c.cmdShow(ctx, args)
	case "fav":
		return c.cmdFav(ctx, args)
	case "favs":
		c.cmdFavs(ctx)
	case "add":
		return c.cmdAdd(ctx, args)
	case "inc", "dec", "rm":
		return c.cmdQuantity(ctx, cmd, args)
	case "clear":
		return c.cart.Clear(ctx)
	case "cart":
		c.cmdCart()
	case "promo":
		return c.cmdPromo(ctx, args)
	case "unpromo":
		return c.cmdUnpromo(ctx, args)
	case "promos":
		c.cmdPromos()
	case "delivery":
		return c.cmdDelivery(args)
	case "payment":
		return c.cmdPayment(args)
	case "checkout":
		return c.cmdCheckout(ctx)
	case "theme":
		return c.cmdTheme(ctx, args)

	case "orders":
		return c.admin(ctx, func() error { return c.cmdOrders(ctx, args) })
	case "order":
		return c.admin(ctx, func() error { return c.cmdOrder(ctx, args) })
	case "status":
		return c.admin(ctx, func() error { return c.cmdStatus(ctx, args) })
	case "notes":
		return c.admin(ctx, func() error { return c.cmdNotes(ctx, args) })
	case "delorder":
		return c.admin(ctx, func() error { return c.cmdDeleteOrder(ctx, args) })
	case "purge":
		return c.admin(ctx, func() error { return c.cmdPurge(ctx, args) })
	case "export":
		return c.admin(ctx, func() error { return c.cmdExport(ctx, args) })
	case "receipt":
		return c.admin(ctx, func() error { return c.cmdReceipt(ctx, args) })
	case "stats":
		return c.admin(ctx, func() error { return c.cmdStats(ctx) })
	case "lock":
		return c.sessions.DisableAdmin(ctx)

	default:
		// Unknown input doubles as the admin unlock prompt.
		unlocked, err := c.sessions.TryUnlock(ctx, cmd)
		if err != nil {
			return err
		}
		if unlocked {
			c.printf("admin mode enabled\n")
			return nil
		}
		c.printf("unknown command: %s\n", cmd)
	}
	return nil
}

func (c *console) admin(ctx context.Context, fn func() error) error {
	if !c.sessions.AdminMode(ctx) {
		c.printf("unknown command\n")
		return nil
	}
	return fn()
}

func (c *console) help(ctx context.Context) {
	c.printf(`catalog [page] [kind=..] [genre=..] [age=..] [status=..] [sort=..] [q=..]
show <id>        product details
fav <id> / favs  toggle and list favorites
add/inc/dec/rm <id>, clear, cart
promo <code> / unpromo <code> / promos
delivery [id], payment [id]
checkout         place the order
theme [light|dark|sakura]
exit
`)
	if c.sessions.AdminMode(ctx) {
		c.printf(`orders [page] [status=..] [range=today|week|month] [q=..]
order <id>, status <id> <new>, notes <id> <text>
delorder <id>, purge [days], export <file>, receipt <id>, stats, lock
`)
	}
}

func (c *console) cmdCatalog(ctx context.Context, args []string) error {
	page := 1
	var f catalogdomain.Filter
	for _, a := range args {
		if n, err := strconv.Atoi(a); err == nil {
			page = n
			continue
		}
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("bad argument %q", a)
		}
		switch key {
		case "kind":
			f.Kind = catalogdomain.Kind(val)
		case "genre":
			f.Genres = append(f.Genres, val)
		case "age":
			f.Ages = append(f.Ages, catalogdomain.AgeRating(val))
		case "status":
			f.Statuses = append(f.Statuses, catalogdomain.ReleaseStatus(val))
		case "sort":
			f.Sort = catalogdomain.SortOrder(val)
		case "q":
			f.Search = val
		case "min":
			f.PriceMin, _ = strconv.ParseInt(val, 10, 64)
		case "max":
			f.PriceMax, _ = strconv.ParseInt(val, 10, 64)
		default:
			return fmt.Errorf("bad argument %q", a)
		}
	}

	result, err := c.catalog.Browse(ctx, f, page, c.cfg.CatalogPerPage)
	if err != nil {
		return err
	}

	for _, p := range result.Products {
		mark := " "
		if !p.InStock {
			mark = "x"
		}
		c.printf("%3d %s %-40s %-16s %6d", p.ID, mark, p.Title, p.Author, p.Price)
		if p.Badge != "" {
			c.printf("  [%s]", p.Badge)
		}
		c.printf("\n")
	}
	c.printf("page %d/%d, %d products\n", result.PageNumber, result.TotalPages, result.Total)
	return nil
}

func (c *console) cmdShow(ctx context.Context, args []string) error {
	id, err := oneID(args)
	if err != nil {
		return err
	}
	p, err := c.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	c.printf("%s by %s\n", p.Title, p.Author)
	c.printf("  kind %s, genres %s, age %s, %s\n", p.Kind, strings.Join(p.Genres, "/"), p.Age, p.Status)
	c.printf("  price %d", p.Price)
	if p.OldPrice > 0 {
		c.printf(" (was %d)", p.OldPrice)
	}
	c.printf(", rating %.1f", p.Rating)
	if !p.InStock {
		c.printf(", out of stock")
	}
	c.printf("\n")
	return nil
}

func (c *console) cmdFav(ctx context.Context, args []string) error {
	id, err := oneID(args)
	if err != nil {
		return err
	}
	now, err := c.catalog.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}
	if now {
		c.printf("added to favorites\n")
	} else {
		c.printf("removed from favorites\n")
	}
	return nil
}

func (c *console) cmdFavs(ctx context.Context) {
	ids := c.catalog.Favorites(ctx)
	if len(ids) == 0 {
		c.printf("no favorites\n")
		return
	}
	for _, id := range ids {
		p, err := c.catalog.GetProduct(ctx, id)
		if err != nil {
			c.printf("%3d (unavailable)\n", id)
			continue
		}
		c.printf("%3d %s\n", p.ID, p.Title)
	}
}

func (c *console) cmdAdd(ctx context.Context, args []string) error {
	id, err := oneID(args)
	if err != nil {
		return err
	}
	p, err := c.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	line, err := c.cart.AddOrIncrement(ctx, cartdomain.ProductRef{
		ID:       p.ID,
		Name:     p.Title,
		Category: p.Category,
		Price:    p.Price,
		OldPrice: p.OldPrice,
	})
	if err != nil {
		return err
	}
	c.printf("%s x%d in cart\n", line.Name, line.Quantity)
	return nil
}

func (c *console) cmdQuantity(ctx context.Context, cmd string, args []string) error {
	id, err := oneID(args)
	if err != nil {
		return err
	}
	switch cmd {
	case "inc":
		return c.cart.Increment(ctx, id)
	case "dec":
		return c.cart.Decrement(ctx, id)
	default:
		return c.cart.Remove(ctx, id)
	}
}

func (c *console) cmdCart() {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		c.printf("cart is empty\n")
		return
	}
	for _, l := range lines {
		c.printf("%3d %-40s %d x %d = %d  (%s)\n", l.ProductID, l.Name, l.Quantity, l.Price, l.LineTotal(), l.Fandom)
	}
	t := c.cart.Totals()
	c.printf("items %d, subtotal %d, discount %d, shipping %d, total %d\n",
		t.Items, t.Subtotal, t.Discount, t.Shipping, t.Total)
	for _, p := range c.cart.AppliedPromos() {
		c.printf("promo %s: %s\n", p.Code, p.Description)
	}
}

func (c *console) cmdPromo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: promo <code>")
	}
	promo, err := c.cart.ApplyPromo(ctx, args[0])
	if err != nil {
		return err
	}
	c.printf("applied %s: %s\n", promo.Code, promo.Description)
	return nil
}

func (c *console) cmdUnpromo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unpromo <code>")
	}
	c.cart.RemovePromo(ctx, args[0])
	return nil
}

func (c *console) cmdPromos() {
	for _, p := range c.cart.AvailablePromos() {
		c.printf("%-10s %s\n", p.Code, p.Description)
	}
}

func (c *console) cmdDelivery(args []string) error {
	if len(args) == 0 {
		for _, d := range c.cart.DeliveryOptions() {
			c.printf("%s %-10s %-20s %4d  %s\n", selectedMark(d.Selected), d.ID, d.Name, d.Cost, d.Description)
		}
		return nil
	}
	return c.cart.SelectDelivery(args[0])
}

func (c *console) cmdPayment(args []string) error {
	if len(args) == 0 {
		for _, m := range c.cart.PaymentMethods() {
			c.printf("%s %-10s %s\n", selectedMark(m.Selected), m.ID, m.Name)
		}
		return nil
	}
	return c.cart.SelectPayment(args[0])
}

func (c *console) cmdCheckout(ctx context.Context) error {
	quote, err := c.checkout.Quote(ctx)
	if err != nil {
		return err
	}
	for _, l := range quote.Lines {
		c.printf("%-40s %d x %d = %d\n", l.Name, l.Quantity, l.UnitPrice, l.LineTotal)
	}
	c.printf("subtotal %d, discount %d, shipping %d (%s), total %d, pay by %s\n",
		quote.Subtotal, quote.Discount, quote.Shipping, quote.DeliveryMethod, quote.Total, quote.PaymentMethod)

	var cust checkoutdomain.CustomerInfo
	prompts := []struct {
		label string
		dst   *string
	}{
		{"first name", &cust.FirstName},
		{"last name", &cust.LastName},
		{"phone", &cust.Phone},
		{"email", &cust.Email},
		{"address", &cust.Address},
		{"comment", &cust.Comment},
	}
	for _, p := range prompts {
		c.printf("%s: ", p.label)
		v, ok := c.readLine(ctx)
		if !ok {
			return ctx.Err()
		}
		*p.dst = strings.TrimSpace(v)
	}
	c.printf("accept the terms? [y/N]: ")
	v, ok := c.readLine(ctx)
	if !ok {
		return ctx.Err()
	}
	cust.Agreement = strings.EqualFold(strings.TrimSpace(v), "y")

	placed, err := c.checkout.PlaceOrder(ctx, cust)
	var verr *validate.Error
	if errors.As(err, &verr) {
		c.printf("please fix: %s\n", strings.Join(verr.Fields, ", "))
		return nil
	}
	if err != nil {
		return err
	}
	c.printf("order %s placed, to pay %d\n", placed.Number, placed.Total)
	return nil
}

func (c *console) cmdTheme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.printf("theme: %s\n", c.sessions.Theme(ctx))
		return nil
	}
	return c.sessions.SetTheme(ctx, session.Theme(args[0]))
}

func (c *console) cmdOrders(ctx context.Context, args []string) error {
	page := 1
	var f orderdomain.QueryFilter
	for _, a := range args {
		if n, err := strconv.Atoi(a); err == nil {
			page = n
			continue
		}
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("bad argument %q", a)
		}
		switch key {
		case "status":
			f.Status = orderdomain.Status(val)
		case "range":
			f.Range = orderdomain.DateRange(val)
		case "q":
			f.Search = val
		default:
			return fmt.Errorf("bad argument %q", a)
		}
	}

	result, err := c.orders.QueryPage(ctx, f, page, c.cfg.OrdersPerPage)
	if err != nil {
		return err
	}
	for _, o := range result.Orders {
		c.printf("%s  %s  %-10s %6d  %s %s\n",
			o.Number, o.CreatedAt.Format("2006-01-02 15:04"), o.Status, o.Total,
			o.Customer.FirstName, o.Customer.LastName)
	}
	c.printf("page %d/%d, %d orders\n", result.PageNumber, result.TotalPages, result.Total)
	return nil
}

// findOrder accepts either the internal id or the customer-facing number.
func (c *console) findOrder(ctx context.Context, ref string) (orderdomain.Order, error) {
	o, err := c.orders.Get(ctx, ref)
	if !errors.Is(err, orderapp.ErrNotFound) {
		return o, err
	}
	all, qerr := c.orders.Query(ctx, orderdomain.QueryFilter{})
	if qerr != nil {
		return orderdomain.Order{}, qerr
	}
	for _, cand := range all {
		if cand.Number == ref {
			return cand, nil
		}
	}
	return orderdomain.Order{}, err
}

func (c *console) cmdOrder(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: order <id>")
	}
	o, err := c.findOrder(ctx, args[0])
	if err != nil {
		return err
	}
	c.printf("%s (%s) %s\n", o.Number, o.ID, o.Status)
	c.printf("%s %s, %s, %s\n", o.Customer.FirstName, o.Customer.LastName, o.Customer.Phone, o.Customer.Email)
	for _, it := range o.Items {
		c.printf("  %-40s %d x %d = %d\n", it.Name, it.Quantity, it.Price, it.LineTotal())
	}
	c.printf("subtotal %d, discount %d, shipping %d, total %d\n", o.Subtotal, o.Discount, o.Shipping, o.Total)
	if o.Notes != "" {
		c.printf("notes: %s\n", o.Notes)
	}
	for _, h := range o.History {
		c.printf("  %s %s", h.At.Format("2006-01-02 15:04"), h.Action)
		if h.From != "" || h.To != "" {
			c.printf(" %s -> %s", h.From, h.To)
		}
		c.printf(" by %s\n", h.By)
	}
	return nil
}

func (c *console) cmdStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: status <id> <new-status>")
	}
	target, err := c.findOrder(ctx, args[0])
	if err != nil {
		return err
	}
	o, err := c.orders.Transition(ctx, target.ID, orderdomain.Status(args[1]), orderapp.DefaultActor)
	if err != nil {
		return err
	}
	c.printf("%s is now %s\n", o.Number, o.Status)
	return nil
}

func (c *console) cmdNotes(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: notes <id> <text>")
	}
	target, err := c.findOrder(ctx, args[0])
	if err != nil {
		return err
	}
	_, err = c.orders.UpdateNotes(ctx, target.ID, strings.Join(args[1:], " "), orderapp.DefaultActor)
	return err
}

func (c *console) cmdDeleteOrder(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delorder <id>")
	}
	target, err := c.findOrder(ctx, args[0])
	if err != nil {
		return err
	}
	return c.orders.Delete(ctx, target.ID)
}

func (c *console) cmdPurge(ctx context.Context, args []string) error {
	days := c.cfg.PurgeAfterDays
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad day count %q", args[0])
		}
		days = n
	}
	n, err := c.orders.PurgeOld(ctx, days)
	if err != nil {
		return err
	}
	c.printf("purged %d orders\n", n)
	return nil
}

func (c *console) cmdExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: export <file>")
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := c.orders.Export(ctx, f)
	if err != nil {
		return err
	}
	c.printf("exported %d orders to %s\n", n, args[0])
	return nil
}

func (c *console) cmdReceipt(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: receipt <id>")
	}
	o, err := c.findOrder(ctx, args[0])
	if err != nil {
		return err
	}
	c.printf("%s\n", orderapp.RenderReceipt(o))
	return nil
}

func (c *console) cmdStats(ctx context.Context) error {
	counts, total, err := c.orders.Stats(ctx)
	if err != nil {
		return err
	}
	for _, st := range orderdomain.Statuses {
		c.printf("%-12s %d\n", st, counts[st])
	}
	c.printf("%-12s %d\n", "total", total)
	return nil
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func oneID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected a product id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad product id %q", args[0])
	}
	return id, nil
}

func selectedMark(sel bool) string {
	if sel {
		return "*"
	}
	return " "
}
