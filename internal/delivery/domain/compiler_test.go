package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
)

func TestComputeAmounts(t *testing.T) {
	cases := []struct {
		name         string
		netWeight    string
		customer     string
		supplier     string
		freight      string
		payer        FreightPayer
		model        purchasedomain.PricingModel
		wantCustomer string
		wantSupplier string
	}{
		{
			name:      "customer pays freight, price includes it",
			netWeight: "1000", customer: "10", supplier: "8.2", freight: "200",
			payer: FreightPayerCustomer, model: purchasedomain.PricingModelFreightIncluded,
			wantCustomer: "9800", wantSupplier: "8000",
		},
		{
			name:      "we pay freight",
			netWeight: "1000", customer: "10", supplier: "8.2", freight: "200",
			payer: FreightPayerMe, model: purchasedomain.PricingModelFreightIncluded,
			wantCustomer: "10000", wantSupplier: "8000",
		},
		{
			name:      "supplier pays freight, included price untouched",
			netWeight: "1000", customer: "10", supplier: "8.2", freight: "200",
			payer: FreightPayerSupplier, model: purchasedomain.PricingModelFreightIncluded,
			wantCustomer: "10000", wantSupplier: "8200",
		},
		{
			name:      "price excludes freight",
			netWeight: "1000", customer: "10", supplier: "8.2", freight: "200",
			payer: FreightPayerMe, model: purchasedomain.PricingModelFreightExcluded,
			wantCustomer: "10000", wantSupplier: "8200",
		},
		{
			name:      "no freight at all",
			netWeight: "500", customer: "12", supplier: "9", freight: "0",
			payer: FreightPayerCustomer, model: purchasedomain.PricingModelFreightExcluded,
			wantCustomer: "6000", wantSupplier: "4500",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeAmounts(
				decimal.RequireFromString(tc.netWeight),
				decimal.RequireFromString(tc.customer),
				decimal.RequireFromString(tc.supplier),
				decimal.RequireFromString(tc.freight),
				tc.payer,
				tc.model,
			)
			require.True(t, got.Customer.Equal(decimal.RequireFromString(tc.wantCustomer)),
				"customer = %s", got.Customer)
			require.True(t, got.Supplier.Equal(decimal.RequireFromString(tc.wantSupplier)),
				"supplier = %s", got.Supplier)
		})
	}
}
