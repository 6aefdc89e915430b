package nav

// Route is a destination in the storefront, mirroring the page paths flows
// move between.
type Route string

const (
	Catalog      Route = "/"
	Checkout     Route = "/checkout"
	OrderSuccess Route = "/order-success"
	Login        Route = "/reseller/login"
	Dashboard    Route = "/reseller/dashboard"
)
