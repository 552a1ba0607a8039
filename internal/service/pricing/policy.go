package pricing

import "hourly-quote/internal/domain"

// IsPurchasable decides whether the cart accepts the product at all.
// Hourly products with a configured rate stay purchasable so that
// programmatic cart insertion (the quote flow itself) keeps working;
// only a misconfigured hourly product is blocked outright. Steering
// shoppers through the form is RequiresQuoteForm's job; the two
// booleans are deliberately independent.
func IsPurchasable(meta domain.BillingMeta) bool {
	if !meta.IsHourly {
		return true
	}
	return meta.HourlyConfigured()
}

// RequiresQuoteForm tells the product page to hide the generic buy
// button and show "Request a Quote" instead.
func RequiresQuoteForm(meta domain.BillingMeta) bool {
	return meta.IsHourly
}
