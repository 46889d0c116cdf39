package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteRegister       = "/register"
	RouteForgotPassword = "/forgot-password"
	RouteUpdatePassword = "/update-password"
	RouteConfirm        = "/confirm"
	RouteSignIn         = "/signin"
	RouteSignOut        = "/signout"

	// Development helper: bounces to the client app's password update page
	RouteResetTest = "/reset-test"
)
