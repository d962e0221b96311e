package domain

import (
	"github.com/shopspring/decimal"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
)

// Amounts is the outcome of compiling one delivery into its two postings.
type Amounts struct {
	// Customer owes netWeight × customerPrice, minus the freight when the
	// customer is the one paying it.
	Customer decimal.Decimal
	// Supplier is owed netWeight × supplierPrice, minus the freight when
	// the agreed price includes freight and the supplier is not already
	// paying it.
	Supplier decimal.Decimal
}

// ComputeAmounts derives the customer debit and supplier credit for a
// delivery from its pricing configuration.
//
//	customerAmount = netWeight × customerPrice − (freightCost if freightPayer == customer)
//	supplierAmount = netWeight × supplierPrice − (freightCost if pricingModel == nakliye_dahil && freightPayer != supplier)
func ComputeAmounts(
	netWeight decimal.Decimal,
	customerPrice decimal.Decimal,
	supplierPrice decimal.Decimal,
	freightCost decimal.Decimal,
	freightPayer FreightPayer,
	pricingModel purchasedomain.PricingModel,
) Amounts {
	customer := netWeight.Mul(customerPrice)
	if freightPayer == FreightPayerCustomer {
		customer = customer.Sub(freightCost)
	}

	supplier := netWeight.Mul(supplierPrice)
	if pricingModel == purchasedomain.PricingModelFreightIncluded && freightPayer != FreightPayerSupplier {
		supplier = supplier.Sub(freightCost)
	}

	return Amounts{Customer: customer, Supplier: supplier}
}
