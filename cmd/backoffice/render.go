package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/client"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// renderer prints views as aligned tables with locale number grouping
type renderer struct {
	w     io.Writer
	p     *message.Printer
	title cases.Caser
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{
		w:     w,
		p:     message.NewPrinter(language.English),
		title: cases.Title(language.English),
	}
}

func (r *renderer) money(d decimal.Decimal) string {
	return r.p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func (r *renderer) money64(f float64) string {
	return r.p.Sprintf("%.2f", f)
}

func (r *renderer) count(n int64) string {
	return r.p.Sprintf("%d", n)
}

func (r *renderer) heading(s string) {
	fmt.Fprintf(r.w, "\n%s\n", r.title.String(s))
}

func (r *renderer) table(header string, rows func(tw *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush()
}

// clear resets an ANSI terminal between refreshes
func (r *renderer) clear() {
	fmt.Fprint(r.w, "\033[H\033[2J")
}

func (r *renderer) session(s *client.Session) {
	role := "clerk"
	if s.IsAdmin {
		role = "administrator"
	}
	fmt.Fprintf(r.w, "%s (%s), id %s\n", s.Username, role, s.UserID)
	if !s.ExpiresAt.IsZero() {
		fmt.Fprintf(r.w, "Session valid until %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
	}
}

func (r *renderer) dashboard(v *client.View) {
	if !v.Filter.IsEmpty() {
		f := v.Filter
		fmt.Fprintf(r.w, "Filter: category=%q brand=%q product=%q seller=%q\n",
			f.CategoryID, f.BrandID, f.ProductID, f.SellerID)
	}
	t := v.Rollup.Totals
	r.heading("totals")
	r.table("Sells\tUnits\tRevenue\tProfit\t", func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			r.count(int64(t.Count)), r.count(int64(t.Quantity)), r.money(t.Revenue), r.money(t.Profit))
	})

	r.heading("per product")
	r.table("Product\tUnits\tRevenue\tProfit\tAvg sell\tAvg cost\tProfit/unit\t", func(tw *tabwriter.Writer) {
		for _, p := range v.Rollup.PerProduct {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				displayName(p.Name, p.ProductID), r.count(int64(p.Quantity)),
				r.money(p.Revenue), r.money(p.Profit),
				r.money(p.AverageSellPrice), r.money(p.AveragePurchasePrice), r.money(p.AverageProfitPerUnit))
		}
	})

	r.heading("per seller")
	r.table("Seller\tUnits\tRevenue\tProfit\t", func(tw *tabwriter.Writer) {
		for _, s := range v.Rollup.PerSeller {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
				displayName(s.Name, s.SellerID), r.count(int64(s.Quantity)), r.money(s.Revenue), r.money(s.Profit))
		}
	})
}

func (r *renderer) summary(categoryID string, s *client.CategorySummary) {
	fmt.Fprintf(r.w, "Category %s: %s products\n", categoryID, r.count(s.ProductCount))
	if s.MostPurchased != nil {
		fmt.Fprintf(r.w, "Most purchased: %s (%s)\n", s.MostPurchased.Name, r.count(int64(s.MostPurchased.Count)))
	}
	if s.MostSold != nil {
		fmt.Fprintf(r.w, "Most sold:      %s (%s)\n", s.MostSold.Name, r.count(int64(s.MostSold.Count)))
	}

	r.heading("ledger")
	r.table("Spent\tGained\tProfit\t", func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.money64(s.TotalSpent), r.money64(s.TotalGained), r.money64(s.Profit))
	})

	if len(s.TopBuyers) > 0 {
		r.heading("top buyers")
		r.table("User\tUnits bought\t", func(tw *tabwriter.Writer) {
			for _, b := range s.TopBuyers {
				fmt.Fprintf(tw, "%s\t%s\t\n", b.ID, r.count(b.TotalPurchased))
			}
		})
	}
	if len(s.TopSellers) > 0 {
		r.heading("top sellers")
		r.table("User\tUnits sold\t", func(tw *tabwriter.Writer) {
			for _, b := range s.TopSellers {
				fmt.Fprintf(tw, "%s\t%s\t\n", b.ID, r.count(b.TotalSold))
			}
		})
	}
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}
