package ports

import "github.com/bft-labs/hostctl/pkg/log"

// Logger is the structured logging port.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field
