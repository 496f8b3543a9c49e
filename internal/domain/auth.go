package domain

// Principal is the identity the request authorizer attaches to a request.
type Principal struct {
	Username string
	Role     Role
}

// FederatedIdentity is what a third-party identity assertion vouches for.
type FederatedIdentity struct {
	Subject string
	Email   string
	Name    string
}
