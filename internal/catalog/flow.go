// Package catalog drives the public storefront entry: referral capture from
// the landing URL, country listing and product selection.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/andydyb/roamstop-v1/internal/api"
	"github.com/andydyb/roamstop-v1/internal/nav"
	"github.com/andydyb/roamstop-v1/internal/session"
)

type ProductAPI interface {
	CountryList(ctx context.Context) ([]string, error)
	ProductsByCountry(ctx context.Context, countryCode string) ([]api.ProductPackage, error)
	ProductDetails(ctx context.Context, productID int64) (*api.ProductPackage, error)
}

type Flow struct {
	api     ProductAPI
	session *session.Session
}

func NewFlow(productAPI ProductAPI, sess *session.Session) *Flow {
	return &Flow{api: productAPI, session: sess}
}

// CaptureReferral reads the referral id from a landing URL's query
// (?reseller_id= or ?ref=) and persists it. First-touch attribution: any
// later visit carrying a new id overwrites the stored one. Returns the
// captured id, or "" when the URL carried none.
func (f *Flow) CaptureReferral(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse landing url: %w", err)
	}

	query := u.Query()
	id := query.Get("reseller_id")
	if id == "" {
		id = query.Get("ref")
	}
	if id == "" {
		return "", nil
	}
	if err := f.session.SetResellerID(id); err != nil {
		return "", fmt.Errorf("store referral id: %w", err)
	}
	return id, nil
}

type Country struct {
	Code        string
	DisplayName string
}

// Countries lists the countries with active packages, codes resolved to
// display names where the region is known.
func (f *Flow) Countries(ctx context.Context) ([]Country, error) {
	codes, err := f.api.CountryList(ctx)
	if err != nil {
		return nil, err
	}

	countries := make([]Country, len(codes))
	for i, code := range codes {
		countries[i] = Country{Code: strings.ToUpper(code), DisplayName: CountryDisplayName(code)}
	}
	return countries, nil
}

// Products lists the active packages for a country.
func (f *Flow) Products(ctx context.Context, countryCode string) ([]api.ProductPackage, error) {
	return f.api.ProductsByCountry(ctx, countryCode)
}

// Select fetches a package and persists it as the current selection.
func (f *Flow) Select(ctx context.Context, productID int64) (*session.Selection, nav.Route, error) {
	product, err := f.api.ProductDetails(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", fmt.Errorf("product %d not found", productID)
	}
	return f.SelectPackage(product)
}

// SelectPackage persists an already-fetched package as the current
// selection, replacing any previous one, and routes to checkout. There is
// no cart: exactly one selected product at a time.
func (f *Flow) SelectPackage(product *api.ProductPackage) (*session.Selection, nav.Route, error) {
	sel := session.Selection{
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
	}
	if err := f.session.SetSelection(sel); err != nil {
		return nil, "", fmt.Errorf("store selection: %w", err)
	}
	return &sel, nav.Checkout, nil
}

// CountryDisplayName renders "France (FR)" for known region codes and falls
// back to the bare code otherwise.
func CountryDisplayName(code string) string {
	code = strings.ToUpper(code)
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := display.English.Regions().Name(region); name != "" {
		return fmt.Sprintf("%s (%s)", name, code)
	}
	return code
}
