package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/noah-isme/toko-till/internal/catalog"
	"github.com/noah-isme/toko-till/internal/common"
	"github.com/noah-isme/toko-till/internal/promotion"
	"github.com/noah-isme/toko-till/internal/voucher"
)

type tillTestContext struct {
	catalog *catalog.Catalog
	cart    *catalog.Cart
}

func (c *tillTestContext) reset() {
	c.catalog = catalog.New(catalog.Config{})
	c.cart = c.catalog.NewCart()
}

// Given steps

func (c *tillTestContext) theProductPricedAt(name, price string) error {
	return c.catalog.Register(name, price, promotion.None())
}

func (c *tillTestContext) theProductWithEveryNthFree(name, price string, n int) error {
	return c.catalog.Register(name, price, promotion.GetOneFree(n))
}

func (c *tillTestContext) theProductWithPackage(name, price string, percent, n int) error {
	return c.catalog.Register(name, price, promotion.Package(n, percent))
}

func (c *tillTestContext) theProductWithThreshold(name, price string, percent, n int) error {
	return c.catalog.Register(name, price, promotion.Threshold(n, percent))
}

func (c *tillTestContext) aProductWithLongName(length int, price string) error {
	return c.catalog.Register(strings.Repeat("A", length), price, promotion.None())
}

func (c *tillTestContext) thePercentCoupon(code string, percent int) error {
	return c.catalog.RegisterCoupon(code, voucher.PercentOff(percent))
}

func (c *tillTestContext) theAmountCoupon(code, amount string) error {
	return c.catalog.RegisterCoupon(code, voucher.AmountOff(amount))
}

// When steps

func (c *tillTestContext) iAddOne(name string) error {
	return c.cart.Add(name, catalog.DefaultQuantity)
}

func (c *tillTestContext) iAdd(qty int, name string) error {
	return c.cart.Add(name, qty)
}

func (c *tillTestContext) iUseTheCoupon(code string) error {
	return c.cart.Use(code)
}

// Then steps

func (c *tillTestContext) registeringFails(name, price, code string) error {
	return expectCode(c.catalog.Register(name, price, promotion.None()), code)
}

func (c *tillTestContext) registeringLongNameFails(length int, code string) error {
	return expectCode(c.catalog.Register(strings.Repeat("L", length), "1.00", promotion.None()), code)
}

func (c *tillTestContext) addingFails(qty int, name, code string) error {
	return expectCode(c.cart.Add(name, qty), code)
}

func (c *tillTestContext) usingFails(coupon, code string) error {
	return expectCode(c.cart.Use(coupon), code)
}

func (c *tillTestContext) theTotalIs(total string) error {
	if got := c.cart.Total().String(); got != total {
		return fmt.Errorf("expected total %s, got %s", total, got)
	}
	return nil
}

func (c *tillTestContext) theInvoiceIs(doc *godog.DocString) error {
	want := doc.Content + "\n"
	if got := c.cart.Invoice(); got != want {
		return fmt.Errorf("invoice mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

func expectCode(err error, code string) error {
	if err == nil {
		return errors.New("expected an error but the operation succeeded")
	}
	if got := common.ErrorCode(err); got != code {
		return fmt.Errorf("expected %s, got %s (%v)", code, got, err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &tillTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the product "([^"]*)" priced at "([^"]*)"$`, tc.theProductPricedAt)
	ctx.Step(`^the product "([^"]*)" priced at "([^"]*)" with every (\d+) free$`, tc.theProductWithEveryNthFree)
	ctx.Step(`^the product "([^"]*)" priced at "([^"]*)" with (\d+)% off every (\d+)$`, tc.theProductWithPackage)
	ctx.Step(`^the product "([^"]*)" priced at "([^"]*)" with (\d+)% off after (\d+)$`, tc.theProductWithThreshold)
	ctx.Step(`^a product with a (\d+) character name priced at "([^"]*)"$`, tc.aProductWithLongName)
	ctx.Step(`^the coupon "([^"]*)" for (\d+)% off$`, tc.thePercentCoupon)
	ctx.Step(`^the coupon "([^"]*)" for "([^"]*)" off$`, tc.theAmountCoupon)

	// When steps
	ctx.Step(`^I add "([^"]*)"$`, tc.iAddOne)
	ctx.Step(`^I add (\d+) of "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I use the coupon "([^"]*)"$`, tc.iUseTheCoupon)

	// Then steps
	ctx.Step(`^registering the product "([^"]*)" priced at "([^"]*)" fails with (\w+)$`, tc.registeringFails)
	ctx.Step(`^registering a product with a (\d+) character name fails with (\w+)$`, tc.registeringLongNameFails)
	ctx.Step(`^adding (-?\d+) of "([^"]*)" fails with (\w+)$`, tc.addingFails)
	ctx.Step(`^using the coupon "([^"]*)" fails with (\w+)$`, tc.usingFails)
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the invoice is:$`, tc.theInvoiceIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"pricing.feature"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
