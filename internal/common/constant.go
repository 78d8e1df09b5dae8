package common

// AccessTokenHeaderName is the gRPC metadata key / HTTP header that carries
// the bearer token on mutating requests.
const AccessTokenHeaderName = "authorization"

// BearerPrefix is accepted, but not required, in front of the token.
const BearerPrefix = "Bearer "
