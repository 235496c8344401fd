package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/internal/carts"
	"github.com/avinashrao/platterly-backend/pkg/db/models"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

type fakeVendorLoader struct {
	vendors map[uuid.UUID]*models.Vendor
	lookups int
}

func (f *fakeVendorLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Vendor, error) {
	f.lookups++
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vendor, nil
}

type fakeProductLoader struct {
	products map[uuid.UUID]*models.Product
	lookups  int
}

func (f *fakeProductLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	f.lookups++
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

type fakeCartStore struct {
	created     []*models.Cart
	deleteCalls int
	failCreate  error
}

func (f *fakeCartStore) DeleteByUserAndStatus(_ context.Context, userID uuid.UUID, status enums.CartStatus) error {
	f.deleteCalls++
	kept := f.created[:0]
	for _, c := range f.created {
		if c.UserID == userID && c.Status == status {
			continue
		}
		kept = append(kept, c)
	}
	f.created = kept
	return nil
}

func (f *fakeCartStore) Create(_ context.Context, cart *models.Cart) (*models.Cart, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	cart.ID = uuid.New()
	f.created = append(f.created, cart)
	return cart, nil
}

type checkoutFixture struct {
	svc      Service
	vendors  *fakeVendorLoader
	products *fakeProductLoader
	store    *fakeCartStore
	userID   uuid.UUID
}

func newFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	vendors := &fakeVendorLoader{vendors: map[uuid.UUID]*models.Vendor{}}
	products := &fakeProductLoader{products: map[uuid.UUID]*models.Product{}}
	store := &fakeCartStore{}
	svc, err := NewService(vendors, products, store, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return &checkoutFixture{
		svc:      svc,
		vendors:  vendors,
		products: products,
		store:    store,
		userID:   uuid.New(),
	}
}

func (f *checkoutFixture) addVendor(packaging, delivery, convenience int64) *models.Vendor {
	vendor := &models.Vendor{
		ID:                uuid.New(),
		Name:              "Test Kitchen",
		PackagingCharge:   decimal.NewFromInt(packaging),
		DeliveryCharge:    decimal.NewFromInt(delivery),
		ConvenienceCharge: decimal.NewFromInt(convenience),
	}
	f.vendors.vendors[vendor.ID] = vendor
	return vendor
}

func (f *checkoutFixture) addProduct(main int64, special *int64, packaging int64) *models.Product {
	product := &models.Product{
		ID:              uuid.New(),
		Name:            "Test Dish",
		MainPrice:       decimal.NewFromInt(main),
		PackagingCharge: decimal.NewFromInt(packaging),
	}
	if special != nil {
		value := decimal.NewFromInt(*special)
		product.SpecialPrice = &value
	}
	f.products.products[product.ID] = product
	return product
}

func int64Ptr(n int64) *int64 { return &n }

func requireAppError(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code())
	assert.Equal(t, message, appErr.Message())
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got)
}

func TestCheckoutSingleItemNoSpecial(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, nil, 0)

	result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
		Vendor:   vendor.ID.String(),
		Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(2)}},
	}}})
	require.NoError(t, err)
	require.Len(t, result, 1)

	cart := result[0]
	assertDecimal(t, 20, cart.Subtotal)
	assertDecimal(t, 0, cart.Discount)
	assert.Equal(t, 2, cart.TotalQuantity)
	require.Len(t, cart.Items, 1)
	assertDecimal(t, 20, cart.Items[0].ItemTotal)
	assert.Nil(t, cart.Items[0].SpecialPrice)
	assert.Equal(t, enums.CartStatusNew, cart.Status)
}

func TestCheckoutSpecialPriceDiscount(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, int64Ptr(8), 0)

	result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
		Vendor:   vendor.ID.String(),
		Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(3)}},
	}}})
	require.NoError(t, err)
	require.Len(t, result, 1)

	cart := result[0]
	assertDecimal(t, 30, cart.Subtotal)
	assertDecimal(t, 6, cart.Discount)
	require.Len(t, cart.Items, 1)
	assertDecimal(t, 24, cart.Items[0].ItemTotal)
	require.NotNil(t, cart.Items[0].SpecialPrice)
	assertDecimal(t, 8, *cart.Items[0].SpecialPrice)
}

func TestCheckoutZeroSpecialPriceFallsBackToMain(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, int64Ptr(0), 0)

	result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
		Vendor:   vendor.ID.String(),
		Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(2)}},
	}}})
	require.NoError(t, err)

	cart := result[0]
	assertDecimal(t, 20, cart.Subtotal)
	assertDecimal(t, 0, cart.Discount)
	assertDecimal(t, 20, cart.Items[0].ItemTotal)
	assert.Nil(t, cart.Items[0].SpecialPrice)
}

// A promotion priced at or above the list price is still the charged price
// but produces no discount. The two predicates intentionally differ.
func TestCheckoutSpecialAboveMainChargedWithoutDiscount(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, int64Ptr(12), 0)

	result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
		Vendor:   vendor.ID.String(),
		Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(2)}},
	}}})
	require.NoError(t, err)

	cart := result[0]
	assertDecimal(t, 20, cart.Subtotal)
	assertDecimal(t, 0, cart.Discount)
	assertDecimal(t, 24, cart.Items[0].ItemTotal)
	assertDecimal(t, 24, cart.TotalPayableAmount)
}

func TestCheckoutVendorCharges(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(2, 5, 1)
	product := f.addProduct(15, int64Ptr(12), 2)

	result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
		Vendor:   vendor.ID.String(),
		Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(2)}},
	}}})
	require.NoError(t, err)

	cart := result[0]
	assertDecimal(t, 30, cart.Subtotal)
	assertDecimal(t, 6, cart.Discount)
	// per-unit packaging 2 * qty 2 plus vendor packaging 2
	assertDecimal(t, 6, cart.PackagingCharge)
	assertDecimal(t, 5, cart.DeliveryCharge)
	assertDecimal(t, 1, cart.ConvenienceCharge)
	// 30 - 6 + 6 + 5 + 1
	assertDecimal(t, 36, cart.TotalPayableAmount)
}

func TestCheckoutRequiresUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Checkout(context.Background(), uuid.Nil, CheckoutRequest{Cart: []VendorBlock{{}}})
	requireAppError(t, err, pkgerrors.CodeUnauthorized, "Unauthorized")
	assert.Zero(t, f.store.deleteCalls)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{})
	requireAppError(t, err, pkgerrors.CodeValidation, "Cart must be a non-empty array")
	// Empty submissions must not purge pending carts.
	assert.Zero(t, f.store.deleteCalls)
}

func TestCheckoutBlockMissingVendorOrProducts(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)

	cases := []VendorBlock{
		{Vendor: "", Products: []ProductEntry{{ProductID: uuid.NewString(), Quantity: QuantityOf(1)}}},
		{Vendor: vendor.ID.String(), Products: nil},
	}
	for i, block := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			_, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{block}})
			requireAppError(t, err, pkgerrors.CodeValidation, "Each cart entry must include vendor and products")
		})
	}
	// Top-level validation passed, so the purge ran before the block failed.
	assert.Equal(t, 2, f.store.deleteCalls)
}

func TestCheckoutVendorNotFound(t *testing.T) {
	f := newFixture(t)
	missing := uuid.NewString()
	_, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
		Vendor:   missing,
		Products: []ProductEntry{{ProductID: uuid.NewString(), Quantity: QuantityOf(1)}},
	}}})
	requireAppError(t, err, pkgerrors.CodeNotFound, "Vendor not found: "+missing)
}

func TestCheckoutInvalidQuantityBeforeProductLookup(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, nil, 0)

	for _, raw := range []string{`0`, `-2`, `1.5`, `"abc"`, `null`} {
		t.Run(raw, func(t *testing.T) {
			var qty Quantity
			require.NoError(t, json.Unmarshal([]byte(raw), &qty))
			_, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
				Vendor:   vendor.ID.String(),
				Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: qty}},
			}}})
			requireAppError(t, err, pkgerrors.CodeValidation, "Invalid product or quantity")
		})
	}
	assert.Zero(t, f.products.lookups, "quantity must be vetted before the product lookup")
}

func TestCheckoutProductNotFound(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	missing := uuid.NewString()
	_, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
		Vendor:   vendor.ID.String(),
		Products: []ProductEntry{{ProductID: missing, Quantity: QuantityOf(1)}},
	}}})
	requireAppError(t, err, pkgerrors.CodeNotFound, "Product not found: "+missing)
}

func TestCheckoutProductAliasAndStringQuantity(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, nil, 0)

	var block VendorBlock
	payload := fmt.Sprintf(`{"vendor":%q,"products":[{"product":%q,"quantity":"3"}]}`,
		vendor.ID.String(), product.ID.String())
	require.NoError(t, json.Unmarshal([]byte(payload), &block))

	result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{block}})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 3, result[0].TotalQuantity)
	assertDecimal(t, 30, result[0].Subtotal)
}

func TestCheckoutPartialCommitOnMidLoopFailure(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, nil, 0)
	missingVendor := uuid.NewString()

	_, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{
		{Vendor: vendor.ID.String(), Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(1)}}},
		{Vendor: missingVendor, Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(1)}}},
	}})
	requireAppError(t, err, pkgerrors.CodeNotFound, "Vendor not found: "+missingVendor)

	// The first block committed before the second failed and is not rolled back.
	require.Len(t, f.store.created, 1)
	assert.Equal(t, vendor.ID, f.store.created[0].VendorID)
}

func TestCheckoutReplacesPendingCarts(t *testing.T) {
	f := newFixture(t)
	vendor := f.addVendor(0, 0, 0)
	product := f.addProduct(10, nil, 0)

	submit := func() []carts.CartDTO {
		result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{{
			Vendor:   vendor.ID.String(),
			Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(1)}},
		}}})
		require.NoError(t, err)
		return result
	}

	first := submit()
	second := submit()

	require.Len(t, f.store.created, 1)
	assert.Equal(t, second[0].ID, f.store.created[0].ID)
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestCheckoutMultiVendorOrderPreserved(t *testing.T) {
	f := newFixture(t)
	vendorA := f.addVendor(0, 0, 0)
	vendorB := f.addVendor(0, 0, 0)
	product := f.addProduct(10, nil, 0)

	result, err := f.svc.Checkout(context.Background(), f.userID, CheckoutRequest{Cart: []VendorBlock{
		{Vendor: vendorA.ID.String(), Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(1)}}},
		{Vendor: vendorB.ID.String(), Products: []ProductEntry{{ProductID: product.ID.String(), Quantity: QuantityOf(2)}}},
	}})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, vendorA.ID, result[0].VendorID)
	assert.Equal(t, vendorB.ID, result[1].VendorID)
	assert.Equal(t, 1, result[0].TotalQuantity)
	assert.Equal(t, 2, result[1].TotalQuantity)
}
