package middleware

import (
	"studio-notify/pkg/jwt"
	"studio-notify/pkg/log"
)

type Middleware struct {
	logger     log.Logger
	jwtManager *jwt.Manager
}

func New(logger log.Logger, jwtManager *jwt.Manager) Middleware {
	return Middleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}
