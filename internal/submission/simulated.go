package submission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/logobrief/internal/questionnaire"
)

// DefaultSimulatedDelay is how long SimulatedTransport takes to "submit".
const DefaultSimulatedDelay = 1500 * time.Millisecond

// SimulatedTransport stands in for a real backend. It waits Delay and then
// accepts every brief. This is the default transport when no intake endpoint
// is configured.
type SimulatedTransport struct {
	Delay time.Duration
}

// NewSimulatedTransport returns a transport with the default delay.
func NewSimulatedTransport() *SimulatedTransport {
	return &SimulatedTransport{Delay: DefaultSimulatedDelay}
}

// Name implements Transport.
func (s *SimulatedTransport) Name() string { return "simulated" }

// Submit waits for the configured delay and returns a receipt. It returns
// early with an error if ctx is cancelled first.
func (s *SimulatedTransport) Submit(ctx context.Context, _ questionnaire.Form) (*Receipt, error) {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, NewNetworkError("submission cancelled", ctx.Err())
	}

	return &Receipt{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
		Simulated:  true,
	}, nil
}
