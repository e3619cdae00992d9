package utils

const (
	OrganizationName                      = "ApartmentManagement"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// UnknownUserName is shown when neither a user row nor a stored name
	// snapshot is available.
	UnknownUserName = "Unknown user"
)
