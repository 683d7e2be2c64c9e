package commands

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand represents one polling pass of the outbox relay.
// BatchSize caps how many pending records a single pass may deliver.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayOutboxCommand creates a command for one relay pass.
func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	cmd := RelayOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBatchSize(batchSize); err != nil {
		return RelayOutboxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of records processed in this pass.
func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c *RelayOutboxCommand) setBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("batchSize",
			fmt.Errorf("%d is not greater than 0", batchSize))
	}
	c.batchSize = batchSize
	return nil
}
