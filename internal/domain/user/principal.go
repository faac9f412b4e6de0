package user

// Principal identifies an authenticated admin on a request.
type Principal struct {
	Subject string
}
