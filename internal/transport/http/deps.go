package http

import (
	"github.com/restom-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/restom-api/internal/infrastructure/jwt"
	"github.com/restom-api/internal/infrastructure/smtp"
	"github.com/restom-api/internal/pkg/hash"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	RegistrationRepo *dynamo.RegistrationRepo
	Mailer           smtp.Mailer
	Hasher           *hash.Bcrypt
	JWTProvider      *jwtinfra.Provider
}
