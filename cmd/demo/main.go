// Command demo seeds the configured store with a small sample restaurant:
// two dishes, two customers, an order each and their feedback.
package main

import (
	"context"
	"fmt"
	"os"

	"restaurantdb/pkg/backend"
	"restaurantdb/pkg/config"
	"restaurantdb/pkg/customer"
	"restaurantdb/pkg/docstore"
	"restaurantdb/pkg/feedback"
	"restaurantdb/pkg/logger"
	"restaurantdb/pkg/menu"
	"restaurantdb/pkg/order"
	"restaurantdb/pkg/otel"
	"restaurantdb/pkg/patch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), "restaurantdb-demo", otel.GetTraceID)
	defer log.Sync()

	ctx := context.Background()
	db, closeDB, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "open store", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	if _, err := run(ctx, db, log); err != nil {
		log.Error(ctx, "demo failed", "error", err)
		os.Exit(1)
	}
}

// result collects what run created.
type result struct {
	customers []customer.Customer
	orders    []order.Order
	feedback  []feedback.Feedback
}

func run(ctx context.Context, db docstore.Database, log *logger.Logger) (result, error) {
	var res result
	menus := menu.NewStore(db)
	customers := customer.NewStore(db)
	orders := order.NewStore(db)
	feedbacks := feedback.NewStore(db)

	abGosht := menu.MenuItem{Name: "Ab Gosht", Price: 200, Category: "Main Course", Ingredients: []string{"Pea", "Beans", "Meat"}}
	salad := menu.MenuItem{Name: "Salad", Price: 50, Category: "Dessert", Ingredients: []string{"Lettuce", "Carrot", "Dressing"}}
	for _, item := range []menu.MenuItem{abGosht, salad} {
		if err := menus.Add(ctx, item); err != nil {
			return res, err
		}
		log.Info(ctx, "menu item added", "name", item.Name, "price", item.Price)
	}

	ali, err := customers.Add(ctx, "Ali", "09123456789", "ali@gmail.com")
	if err != nil {
		return res, err
	}
	sara, err := customers.Add(ctx, "Sara", "02112345678", "sara@yahoo.com")
	if err != nil {
		return res, err
	}
	res.customers = []customer.Customer{ali, sara}
	for _, c := range res.customers {
		log.Info(ctx, "customer added", "customer_id", c.ID, "name", c.Name)
	}

	placements := []struct {
		customer customer.Customer
		items    []menu.MenuItem
		status   order.Status
	}{
		{customer: ali, items: []menu.MenuItem{abGosht, salad}, status: order.Ready},
		{customer: sara, items: []menu.MenuItem{salad}, status: order.Delivered},
	}
	for _, p := range placements {
		o, err := orders.Add(ctx, p.customer.ID, orderItems(p.items))
		if err != nil {
			return res, err
		}
		log.Info(ctx, "order placed", "order_id", o.ID, "customer_id", o.CustomerID, "items", len(o.Items))

		if _, err := orders.Update(ctx, o.ID, order.Update{Status: patch.Set(p.status)}); err != nil {
			return res, err
		}
		o.Status = p.status
		log.Info(ctx, "order status updated", "order_id", o.ID, "status", o.Status)
		res.orders = append(res.orders, o)
	}

	reviews := []struct {
		customer customer.Customer
		rating   float64
		comment  string
	}{
		{customer: ali, rating: 5, comment: "Great service"},
		{customer: sara, rating: 3, comment: "Bad food"},
	}
	for _, r := range reviews {
		f, err := feedbacks.Add(ctx, r.customer.ID, r.rating, r.comment)
		if err != nil {
			return res, err
		}
		log.Info(ctx, "feedback recorded", "feedback_id", f.ID, "customer_id", f.CustomerID, "rating", f.Rating)
		res.feedback = append(res.feedback, f)
	}

	return res, nil
}

func orderItems(items []menu.MenuItem) []order.Item {
	out := make([]order.Item, len(items))
	for i, it := range items {
		out[i] = order.Item(it)
	}
	return out
}
