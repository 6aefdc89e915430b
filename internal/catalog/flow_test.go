package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andydyb/roamstop-v1/internal/api"
	"github.com/andydyb/roamstop-v1/internal/catalog"
	"github.com/andydyb/roamstop-v1/internal/nav"
	"github.com/andydyb/roamstop-v1/internal/session"
)

type fakeProductAPI struct {
	countries []string
	products  map[string][]api.ProductPackage
	details   map[int64]*api.ProductPackage
}

func (f *fakeProductAPI) CountryList(context.Context) ([]string, error) {
	return f.countries, nil
}

func (f *fakeProductAPI) ProductsByCountry(_ context.Context, code string) ([]api.ProductPackage, error) {
	return f.products[code], nil
}

func (f *fakeProductAPI) ProductDetails(_ context.Context, id int64) (*api.ProductPackage, error) {
	return f.details[id], nil
}

func frProducts() []api.ProductPackage {
	return []api.ProductPackage{
		{ID: 10, Name: "France 5GB", CountryCode: "FR", Price: decimal.NewFromFloat(14.99), DurationDays: 15, IsActive: true},
		{ID: 11, Name: "France 20GB", CountryCode: "FR", Price: decimal.NewFromFloat(34.99), DurationDays: 30, IsActive: true},
	}
}

func TestCaptureReferralFromRefParam(t *testing.T) {
	sess := session.New(session.NewMemoryStore())
	flow := catalog.NewFlow(&fakeProductAPI{}, sess)

	ref, err := flow.CaptureReferral("https://shop.example.com/?ref=42")
	require.NoError(t, err)
	assert.Equal(t, "42", ref)

	stored, err := sess.ResellerID()
	require.NoError(t, err)
	assert.Equal(t, "42", stored)
}

func TestCaptureReferralFromResellerIDParam(t *testing.T) {
	sess := session.New(session.NewMemoryStore())
	flow := catalog.NewFlow(&fakeProductAPI{}, sess)

	_, err := flow.CaptureReferral("https://shop.example.com/?reseller_id=42")
	require.NoError(t, err)

	stored, err := sess.ResellerID()
	require.NoError(t, err)
	assert.Equal(t, "42", stored)
}

func TestCaptureReferralKeepsExistingWhenURLHasNone(t *testing.T) {
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.SetResellerID("7"))
	flow := catalog.NewFlow(&fakeProductAPI{}, sess)

	ref, err := flow.CaptureReferral("https://shop.example.com/")
	require.NoError(t, err)
	assert.Empty(t, ref)

	stored, err := sess.ResellerID()
	require.NoError(t, err)
	assert.Equal(t, "7", stored)
}

func TestLaterVisitOverwritesReferral(t *testing.T) {
	sess := session.New(session.NewMemoryStore())
	flow := catalog.NewFlow(&fakeProductAPI{}, sess)

	_, err := flow.CaptureReferral("https://shop.example.com/?ref=7")
	require.NoError(t, err)
	_, err = flow.CaptureReferral("https://shop.example.com/?ref=42")
	require.NoError(t, err)

	stored, err := sess.ResellerID()
	require.NoError(t, err)
	assert.Equal(t, "42", stored)
}

func TestSelectingSecondProductPersistsItAndRoutesToCheckout(t *testing.T) {
	products := frProducts()
	fake := &fakeProductAPI{
		products: map[string][]api.ProductPackage{"FR": products},
		details:  map[int64]*api.ProductPackage{10: &products[0], 11: &products[1]},
	}
	sess := session.New(session.NewMemoryStore())
	flow := catalog.NewFlow(fake, sess)

	listed, err := flow.Products(context.Background(), "FR")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	sel, route, err := flow.Select(context.Background(), listed[1].ID)
	require.NoError(t, err)
	assert.Equal(t, nav.Checkout, route)
	assert.Equal(t, int64(11), sel.ProductID)

	stored, err := sess.Selection()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(11), stored.ProductID)
	assert.Equal(t, "France 20GB", stored.ProductName)
	assert.True(t, stored.ProductPrice.Equal(decimal.NewFromFloat(34.99)))
}

func TestSelectUnknownProductFails(t *testing.T) {
	sess := session.New(session.NewMemoryStore())
	flow := catalog.NewFlow(&fakeProductAPI{}, sess)

	_, _, err := flow.Select(context.Background(), 999)
	assert.ErrorContains(t, err, "not found")
}

func TestCountryDisplayName(t *testing.T) {
	assert.Equal(t, "France (FR)", catalog.CountryDisplayName("fr"))
	assert.Equal(t, "X1", catalog.CountryDisplayName("x1"))
}
